package dto

import (
	"time"

	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// TicketTemplateResponse is the public view of a ticket template
type TicketTemplateResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
	TicketType     string  `json:"ticket_type"`
	MaxSupply      *uint   `json:"max_supply,omitempty"`
	CurrentSupply  uint    `json:"current_supply"`
	IsTransferable bool    `json:"is_transferable"`
	SoldOut        bool    `json:"sold_out"`
	ProductRef     *string `json:"product_ref,omitempty"`
}

// NewTicketTemplateResponse maps a template row to its public view
func NewTicketTemplateResponse(t *schema.TicketTemplate) *TicketTemplateResponse {
	return &TicketTemplateResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		ImageURL:       t.ImageURL,
		TicketType:     string(t.TicketType),
		MaxSupply:      t.MaxSupply,
		CurrentSupply:  t.CurrentSupply,
		IsTransferable: t.IsTransferable,
		SoldOut:        t.SoldOut(),
		ProductRef:     t.ProductRef,
	}
}

// ClaimTicketResponse is returned on a successful interactive claim
type ClaimTicketResponse struct {
	OK     bool   `json:"ok"`
	TxHash string `json:"tx_hash,omitempty"`
}

// TransferLinkResponse is returned when a transfer link is created
type TransferLinkResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedeemTransferResponse is returned on a successful link redemption
type RedeemTransferResponse struct {
	OK      bool   `json:"ok"`
	TokenID string `json:"token_id"`
}

// WebhookAcceptedResponse acknowledges an order event queued for processing
type WebhookAcceptedResponse struct {
	OK      bool   `json:"ok"`
	EventID string `json:"event_id"`
}

// MintLogEntryResponse is the staff/audit view of a mint log row. Error
// details are included: this surface is staff-facing.
type MintLogEntryResponse struct {
	ID              int64     `json:"id"`
	WalletAddress   string    `json:"wallet_address"`
	ContractAddress string    `json:"contract_address"`
	TokenID         *string   `json:"token_id,omitempty"`
	TemplateID      *int64    `json:"template_id,omitempty"`
	OrderRef        *string   `json:"order_ref,omitempty"`
	ProductRef      *string   `json:"product_ref,omitempty"`
	Status          string    `json:"status"`
	TxHash          *string   `json:"tx_hash,omitempty"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewMintLogEntryResponse maps a mint log row to its audit view
func NewMintLogEntryResponse(e *schema.MintLogEntry) *MintLogEntryResponse {
	return &MintLogEntryResponse{
		ID:              e.ID,
		WalletAddress:   e.WalletAddress,
		ContractAddress: e.ContractAddress,
		TokenID:         e.TokenID,
		TemplateID:      e.TemplateID,
		OrderRef:        e.OrderRef,
		ProductRef:      e.ProductRef,
		Status:          string(e.Status),
		TxHash:          e.TxHash,
		ErrorMessage:    e.ErrorMessage,
		CreatedAt:       e.CreatedAt,
	}
}

// MintLogListResponse wraps a list of mint log rows
type MintLogListResponse struct {
	Entries []*MintLogEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}

// NewMintLogListResponse maps mint log rows to the list view
func NewMintLogListResponse(entries []schema.MintLogEntry) *MintLogListResponse {
	out := make([]*MintLogEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewMintLogEntryResponse(&entries[i]))
	}
	return &MintLogListResponse{Entries: out, Total: len(out)}
}

// TicketTemplateListResponse wraps a list of templates
type TicketTemplateListResponse struct {
	Templates []*TicketTemplateResponse `json:"templates"`
	Total     int                       `json:"total"`
}

// NewTicketTemplateListResponse maps template rows to the list view
func NewTicketTemplateListResponse(templates []schema.TicketTemplate) *TicketTemplateListResponse {
	out := make([]*TicketTemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, NewTicketTemplateResponse(&templates[i]))
	}
	return &TicketTemplateListResponse{Templates: out, Total: len(out)}
}
