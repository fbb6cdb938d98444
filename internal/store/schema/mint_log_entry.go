package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MintStatus is the recorded outcome of a mint attempt
type MintStatus string

const (
	// MintStatusSuccess means the relayer accepted the mint job
	MintStatusSuccess MintStatus = "success"
	// MintStatusError means the mint attempt failed before acceptance
	MintStatusError MintStatus = "error"
)

// MintLogEntry represents the mint_log_entries table - the append-only record
// of every mint attempt and its outcome.
//
// A logical mint may leave zero, one, or (after staff retries of failures)
// multiple rows. Only status=success rows participate in purchase-path
// idempotency; error rows feed the staff retry view. Rows are never updated
// or deleted.
type MintLogEntry struct {
	// ID is an auto-incrementing sequence number
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// WalletAddress is the mint recipient
	WalletAddress string `gorm:"column:wallet_address;not null;type:text;index"`
	// ContractAddress is the NFT contract minted against
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// TokenID is the minted token ID as reported by the relayer, if any
	TokenID *string `gorm:"column:token_id;type:text"`
	// TemplateID is the source template for claim/transfer mints
	TemplateID *int64 `gorm:"column:template_id;index"`
	// OrderRef identifies the triggering order for purchase mints
	OrderRef *string `gorm:"column:order_ref;type:text;index:idx_mint_log_order_product,priority:1"`
	// ProductRef identifies the purchased product for purchase mints
	ProductRef *string `gorm:"column:product_ref;type:text;index:idx_mint_log_order_product,priority:2"`
	// Status is the attempt outcome: success or error
	Status MintStatus `gorm:"column:status;not null;type:text"`
	// TxHash is the relayer's transaction reference for success rows
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// ErrorMessage contains upstream error details for error rows; logged for
	// staff audit, never returned verbatim to end users
	ErrorMessage *string `gorm:"column:error_message;type:text"`
	// Metadata is the canonical metadata document submitted to the relayer
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is the timestamp of the attempt
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MintLogEntry model
func (MintLogEntry) TableName() string {
	return "mint_log_entries"
}
