package schema

import (
	"time"
)

// Wallet represents the wallets table - an email to wallet-address projection
// of the identity store, populated when a custodial wallet is provisioned for
// a buyer who checked out without connecting one.
type Wallet struct {
	// Email is the buyer email the wallet is keyed by (lowercased)
	Email string `gorm:"column:email;primaryKey;type:text"`
	// Address is the checksummed wallet address
	Address string `gorm:"column:address;not null;type:text"`
	// Provisioned marks custodial wallets created by the relayer, as opposed
	// to addresses the buyer connected themselves
	Provisioned bool `gorm:"column:provisioned;not null;default:false"`
	// CreatedAt is the timestamp when the row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Wallet model
func (Wallet) TableName() string {
	return "wallets"
}
