package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// ClaimTicketInput carries the parameters of an atomic claim.
type ClaimTicketInput struct {
	TemplateID    int64
	WalletAddress string
	Source        domain.Source
}

// CreateMintLogInput carries the fields of a mint log append.
type CreateMintLogInput struct {
	WalletAddress   string
	ContractAddress string
	TokenID         *string
	TemplateID      *int64
	OrderRef        *string
	ProductRef      *string
	Status          schema.MintStatus
	TxHash          *string
	ErrorMessage    *string
	Metadata        datatypes.JSON
}

// CreateTransferLinkInput carries the fields of a new transfer link.
type CreateTransferLinkInput struct {
	Token        string
	GiverAddress string
	TemplateID   int64
	TokenID      string
	ExpiresAt    time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetTemplate retrieves a ticket template by ID
	GetTemplate(ctx context.Context, id int64) (*schema.TicketTemplate, error)
	// GetTemplateByProductRef retrieves the template mapped to a shop product
	GetTemplateByProductRef(ctx context.Context, productRef string) (*schema.TicketTemplate, error)
	// ListTemplates retrieves all ticket templates ordered by ID
	ListTemplates(ctx context.Context) ([]schema.TicketTemplate, error)
	// CreateTemplate inserts a new ticket template
	CreateTemplate(ctx context.Context, template *schema.TicketTemplate) error

	// ClaimTicket atomically records a claim against a template: it locks the
	// template row, rejects duplicates and exhausted supply, increments the
	// supply counter and inserts the claim record in one transaction.
	// Returns domain.ErrTemplateNotFound, domain.ErrAlreadyClaimed or
	// domain.ErrOutOfStock on the corresponding precondition failure.
	ClaimTicket(ctx context.Context, input ClaimTicketInput) (*schema.ClaimRecord, error)
	// HasClaim checks whether a wallet already holds a claim on a template
	HasClaim(ctx context.Context, templateID int64, walletAddress string) (bool, error)
	// GetClaim retrieves the claim a wallet holds on a template, or nil
	GetClaim(ctx context.Context, templateID int64, walletAddress string) (*schema.ClaimRecord, error)
	// ListClaimsByWallet retrieves all claims held by a wallet
	ListClaimsByWallet(ctx context.Context, walletAddress string) ([]schema.ClaimRecord, error)

	// AppendMintLog appends an immutable mint attempt record
	AppendMintLog(ctx context.Context, input CreateMintLogInput) (*schema.MintLogEntry, error)
	// HasSuccessfulMintForOrder checks whether a success row exists for the
	// (order, product) pair, the webhook idempotency predicate
	HasSuccessfulMintForOrder(ctx context.Context, orderRef, productRef string) (bool, error)
	// GetMintLogByID retrieves a single mint log entry
	GetMintLogByID(ctx context.Context, id int64) (*schema.MintLogEntry, error)
	// ListFailedMints retrieves error entries newest first, for the retry surface
	ListFailedMints(ctx context.Context, limit int) ([]schema.MintLogEntry, error)
	// ListMintsByWallet retrieves mint log entries for a wallet newest first
	ListMintsByWallet(ctx context.Context, walletAddress string, limit int) ([]schema.MintLogEntry, error)

	// CreateTransferLink inserts a new active transfer link
	CreateTransferLink(ctx context.Context, input CreateTransferLinkInput) (*schema.TransferLink, error)
	// GetTransferLinkByToken retrieves a transfer link by its capability token
	GetTransferLinkByToken(ctx context.Context, token string) (*schema.TransferLink, error)
	// MarkTransferLinkClaimed transitions an active link to claimed, recording
	// the claimer and mint transaction. Returns domain.ErrLinkFinalized when
	// the link already left the active state.
	MarkTransferLinkClaimed(ctx context.Context, token, claimerAddress, txHash string) error
	// MarkTransferLinkExpired transitions an active link to expired
	MarkTransferLinkExpired(ctx context.Context, token string) error
	// MarkTransferLinkCancelled transitions an active link to cancelled
	MarkTransferLinkCancelled(ctx context.Context, token string) error
	// ListExpiredActiveLinks returns up to limit active links whose deadline
	// passed, oldest first
	ListExpiredActiveLinks(ctx context.Context, deadline time.Time, limit int) ([]schema.TransferLink, error)

	// UpsertWallet inserts an email to address mapping, keeping the existing
	// row when the email is already mapped
	UpsertWallet(ctx context.Context, wallet *schema.Wallet) error
	// GetWalletByEmail retrieves the wallet mapped to a buyer email
	GetWalletByEmail(ctx context.Context, email string) (*schema.Wallet, error)
}
