package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Source identifies the acquisition channel of a ticket. It is written to
// the claim ledger and embedded in the minted metadata as the "Source" trait.
type Source string

const (
	SourceAirdrop  Source = "airdrop"
	SourceLINE     Source = "line"
	SourcePurchase Source = "purchase"
	SourceManual   Source = "manual"
)

// TraitValue returns the human-readable trait value used in NFT metadata.
func (s Source) TraitValue() string {
	switch s {
	case SourceAirdrop:
		return "Airdrop"
	case SourceLINE:
		return "LINE"
	case SourcePurchase:
		return "Purchase"
	case SourceManual:
		return "Manual Distribution"
	}
	return string(s)
}

// IsValidSource checks if a source channel is valid
func IsValidSource(s Source) bool {
	return s == SourceAirdrop || s == SourceLINE || s == SourcePurchase || s == SourceManual
}

// ClaimableSource reports whether a source may be used on the interactive
// claim endpoint. Purchase claims only ever enter through the order webhook.
func ClaimableSource(s Source) bool {
	return s == SourceAirdrop || s == SourceLINE || s == SourceManual
}

// OrderLineItem is a single purchased product within an order-paid event.
type OrderLineItem struct {
	ProductRef string `json:"product_ref"` // e-commerce product identifier
	Quantity   int    `json:"quantity"`
}

// OrderPaidEvent is the normalized order-paid event published to the queue
// by the webhook receiver and consumed by the purchase bridge. The source
// delivers the triggering webhook at-least-once; redelivery of the same
// OrderRef must never double-mint (guarded by the mint log).
type OrderPaidEvent struct {
	EventID       string          `json:"event_id"` // ULID, assigned at receipt
	OrderRef      string          `json:"order_ref"`
	BuyerEmail    string          `json:"buyer_email"`
	WalletAddress string          `json:"wallet_address,omitempty"` // optional, explicit recipient
	LineItems     []OrderLineItem `json:"line_items"`
	PaidAt        time.Time       `json:"paid_at"`
}

// Valid checks the minimal shape required to process an order event.
func (e *OrderPaidEvent) Valid() bool {
	if e.OrderRef == "" || len(e.LineItems) == 0 {
		return false
	}
	if e.BuyerEmail == "" && e.WalletAddress == "" {
		return false
	}
	for _, item := range e.LineItems {
		if item.ProductRef == "" || item.Quantity <= 0 {
			return false
		}
	}
	return true
}

// IsValidAddress checks if a string is a valid EVM wallet address
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// NormalizeAddress normalizes a wallet address to its checksummed form so
// that ledger uniqueness is not defeated by case variations.
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") && common.IsHexAddress(address) {
		return common.HexToAddress(address).String()
	}
	return address
}
