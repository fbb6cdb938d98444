package schema

import (
	"time"
)

// TransferLinkStatus is the state of a transfer link
type TransferLinkStatus string

const (
	// TransferLinkStatusActive means the link is redeemable
	TransferLinkStatusActive TransferLinkStatus = "active"
	// TransferLinkStatusClaimed means a claimer redeemed the link
	TransferLinkStatusClaimed TransferLinkStatus = "claimed"
	// TransferLinkStatusExpired means the link passed its expiry unredeemed
	TransferLinkStatusExpired TransferLinkStatus = "expired"
	// TransferLinkStatusCancelled means the giver revoked the link
	TransferLinkStatusCancelled TransferLinkStatus = "cancelled"
)

// Terminal reports whether the status rejects further redemption.
func (s TransferLinkStatus) Terminal() bool {
	return s != TransferLinkStatusActive
}

// TransferLink represents the transfer_links table - time-boxed single-use
// capability tokens for handing a ticket to another wallet.
//
// Status is mutated exclusively by the escrow package, always through
// compare-and-swap updates conditioned on the current status. Rows are never
// deleted.
type TransferLink struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Token is the opaque capability token (hex of >= 16 random bytes)
	Token string `gorm:"column:token;not null;uniqueIndex;type:text"`
	// GiverAddress is the wallet that relinquished the ticket
	GiverAddress string `gorm:"column:giver_address;not null;type:text;index"`
	// TemplateID is the template a redemption mints a fresh copy of
	TemplateID int64 `gorm:"column:template_id;not null"`
	// TokenID is the giver's original on-chain token being handed over
	TokenID string `gorm:"column:token_id;not null;type:text"`
	// Status is the state machine position: active, claimed, expired, cancelled
	Status TransferLinkStatus `gorm:"column:status;not null;default:active;type:text"`
	// ClaimerAddress is the wallet that redeemed the link, for claimed rows
	ClaimerAddress *string `gorm:"column:claimer_address;type:text"`
	// ExpiresAt is the redemption deadline (creation + 7 days)
	ExpiresAt time.Time `gorm:"column:expires_at;not null;type:timestamptz"`
	// TxHash is the fresh-copy mint transaction reference, for claimed rows
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// CreatedAt is the timestamp when the link was issued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last status transition
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Template *TicketTemplate `gorm:"foreignKey:TemplateID"`
}

// TableName specifies the table name for the TransferLink model
func (TransferLink) TableName() string {
	return "transfer_links"
}
