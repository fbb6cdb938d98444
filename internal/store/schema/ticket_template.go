package schema

import (
	"time"
)

// TicketType categorizes templates for presentation and reporting
type TicketType string

const (
	// TicketTypeAdmission is a venue admission ticket
	TicketTypeAdmission TicketType = "admission"
	// TicketTypeCoupon is a redeemable discount coupon
	TicketTypeCoupon TicketType = "coupon"
	// TicketTypeSouvenir is a commemorative collectible
	TicketTypeSouvenir TicketType = "souvenir"
)

// TicketTemplate represents the ticket_templates table - a reusable NFT ticket
// definition that can be claimed up to its supply cap.
//
// CurrentSupply is mutated only inside the atomic claim procedure
// (store.ClaimTicket); every other access is read-only.
type TicketTemplate struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name embedded in minted metadata
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the long-form description embedded in minted metadata
	Description string `gorm:"column:description;not null;type:text"`
	// ImageURL is the artwork location embedded in minted metadata
	ImageURL string `gorm:"column:image_url;not null;type:text"`
	// TicketType categorizes the template (admission, coupon, souvenir)
	TicketType TicketType `gorm:"column:ticket_type;not null;type:text"`
	// MaxSupply caps total claims; nil means unlimited
	MaxSupply *uint `gorm:"column:max_supply"`
	// CurrentSupply counts successful claims; never exceeds MaxSupply when set
	CurrentSupply uint `gorm:"column:current_supply;not null;default:0"`
	// IsTransferable mirrors into the "Transferable" metadata trait and gates
	// transfer link creation
	IsTransferable bool `gorm:"column:is_transferable;not null;default:true"`
	// ContractAddress is the NFT contract the mint engine mints against
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// ProductRef links the template to an e-commerce product for the purchase
	// webhook path; nil for airdrop-only templates
	ProductRef *string `gorm:"column:product_ref;type:text;uniqueIndex"`
	// CreatedAt is the timestamp when this template was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this template was last edited
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TicketTemplate model
func (TicketTemplate) TableName() string {
	return "ticket_templates"
}

// SoldOut reports whether the supply cap has been reached.
func (t *TicketTemplate) SoldOut() bool {
	return t.MaxSupply != nil && t.CurrentSupply >= *t.MaxSupply
}
