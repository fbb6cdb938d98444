package dto

import (
	"fmt"
	"time"

	apierrors "github.com/citypass-labs/ticketd/internal/api/shared/errors"
	"github.com/citypass-labs/ticketd/internal/domain"
)

// MAX_LINE_ITEMS_PER_ORDER caps the line items accepted on a single order event
const MAX_LINE_ITEMS_PER_ORDER = 50

// ClaimTicketRequest represents the request body for claiming a ticket
type ClaimTicketRequest struct {
	// Source is the acquisition channel; defaults to manual when omitted.
	// Purchase claims only ever enter through the order webhook.
	Source string `json:"source,omitempty"`
}

// Validate validates the request body
func (r *ClaimTicketRequest) Validate() error {
	if r.Source == "" {
		return nil
	}
	if !domain.ClaimableSource(domain.Source(r.Source)) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid source: %s", r.Source))
	}
	return nil
}

// SourceOrDefault returns the requested source, defaulting to manual
func (r *ClaimTicketRequest) SourceOrDefault() domain.Source {
	if r.Source == "" {
		return domain.SourceManual
	}
	return domain.Source(r.Source)
}

// CreateTransferRequest represents the request body for creating a transfer link
type CreateTransferRequest struct {
	TemplateID int64  `json:"template_id"`
	TokenID    string `json:"token_id"`
}

// Validate validates the request body
func (r *CreateTransferRequest) Validate() error {
	if r.TemplateID <= 0 {
		return apierrors.NewValidationError("template_id is required")
	}
	if r.TokenID == "" {
		return apierrors.NewValidationError("token_id is required")
	}
	return nil
}

// RedeemTransferRequest represents the request body for redeeming a transfer link
type RedeemTransferRequest struct {
	Token string `json:"token"`
}

// Validate validates the request body
func (r *RedeemTransferRequest) Validate() error {
	if r.Token == "" {
		return apierrors.NewValidationError("token is required")
	}
	return nil
}

// CancelTransferRequest represents the request body for cancelling a transfer link
type CancelTransferRequest struct {
	Token string `json:"token"`
}

// Validate validates the request body
func (r *CancelTransferRequest) Validate() error {
	if r.Token == "" {
		return apierrors.NewValidationError("token is required")
	}
	return nil
}

// OrderPaidWebhookRequest represents the order-paid event delivered by the
// e-commerce collaborator. The event ID is assigned at receipt, not taken
// from the payload.
type OrderPaidWebhookRequest struct {
	OrderRef      string                 `json:"order_ref"`
	BuyerEmail    string                 `json:"buyer_email"`
	WalletAddress string                 `json:"wallet_address,omitempty"`
	LineItems     []domain.OrderLineItem `json:"line_items"`
	PaidAt        time.Time              `json:"paid_at"`
}

// Validate validates the request body
func (r *OrderPaidWebhookRequest) Validate() error {
	if r.OrderRef == "" {
		return apierrors.NewValidationError("order_ref is required")
	}
	if r.BuyerEmail == "" && r.WalletAddress == "" {
		return apierrors.NewValidationError("one of buyer_email or wallet_address is required")
	}
	if r.WalletAddress != "" && !domain.IsValidAddress(r.WalletAddress) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid wallet address: %s", r.WalletAddress))
	}
	if len(r.LineItems) == 0 {
		return apierrors.NewValidationError("line_items is required")
	}
	if len(r.LineItems) > MAX_LINE_ITEMS_PER_ORDER {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d line items allowed", MAX_LINE_ITEMS_PER_ORDER))
	}
	for _, item := range r.LineItems {
		if item.ProductRef == "" {
			return apierrors.NewValidationError("line item product_ref is required")
		}
		if item.Quantity <= 0 {
			return apierrors.NewValidationError(fmt.Sprintf("invalid quantity for product %s", item.ProductRef))
		}
	}
	return nil
}

// Event converts the request into the normalized queue event
func (r *OrderPaidWebhookRequest) Event(eventID string) *domain.OrderPaidEvent {
	return &domain.OrderPaidEvent{
		EventID:       eventID,
		OrderRef:      r.OrderRef,
		BuyerEmail:    r.BuyerEmail,
		WalletAddress: r.WalletAddress,
		LineItems:     r.LineItems,
		PaidAt:        r.PaidAt,
	}
}
