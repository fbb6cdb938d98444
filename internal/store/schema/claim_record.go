package schema

import (
	"time"

	"github.com/citypass-labs/ticketd/internal/domain"
)

// ClaimRecord represents the claim_records table - the append-only ledger of
// exercised one-time claim rights.
//
// The UNIQUE (template_id, wallet_address) constraint is the load-bearing
// guarantee: concurrent claims for the same pair race on the constraint, not
// on application logic. Rows are never updated or deleted.
type ClaimRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TemplateID is the claimed ticket template
	TemplateID int64 `gorm:"column:template_id;not null;uniqueIndex:idx_claim_records_template_wallet,priority:1"`
	// WalletAddress is the claiming identity's wallet (checksummed)
	WalletAddress string `gorm:"column:wallet_address;not null;type:text;uniqueIndex:idx_claim_records_template_wallet,priority:2"`
	// Source is the acquisition channel (airdrop, line, purchase, manual)
	Source domain.Source `gorm:"column:source;not null;type:text"`
	// CreatedAt is the timestamp when the claim was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Template *TicketTemplate `gorm:"foreignKey:TemplateID"`
}

// TableName specifies the table name for the ClaimRecord model
func (ClaimRecord) TableName() string {
	return "claim_records"
}
