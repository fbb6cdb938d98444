package claims

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/metadata"
	"github.com/citypass-labs/ticketd/internal/minter"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// Outcome is the result of a claim: the persisted claim record and the mint
// log entry describing what happened on-chain.
type Outcome struct {
	Claim   *schema.ClaimRecord
	MintLog *schema.MintLogEntry
}

// Service coordinates the claim ledger and the mint engine.
//
//go:generate mockgen -source=service.go -destination=../mocks/claims_service.go -package=mocks -mock_names=Service=MockClaimsService
type Service interface {
	// Claim reserves a ticket for the wallet and mints it. The reservation is
	// durable even when the mint fails: the claim record stands and the
	// failure is logged for retry, so the caller gets the claim back together
	// with a mint error.
	Claim(ctx context.Context, templateID int64, walletAddress string, source domain.Source) (*Outcome, error)
	// MintForClaim mints a ticket for an already-reserved claim without
	// touching the ledger. Used by the purchase pipeline, which records its
	// own claim first, and by mint retries.
	MintForClaim(ctx context.Context, template *schema.TicketTemplate, walletAddress string, source domain.Source, orderRef, productRef *string) (*schema.MintLogEntry, error)
	// RetryMint re-submits the mint of a failed log entry. It never creates a
	// claim or increments supply; the original reservation already did.
	RetryMint(ctx context.Context, mintLogID int64) (*schema.MintLogEntry, error)
}

type service struct {
	store   store.Store
	engine  minter.MintEngine
	builder metadata.Builder
}

// NewService creates a claims service
func NewService(st store.Store, engine minter.MintEngine, builder metadata.Builder) Service {
	return &service{
		store:   st,
		engine:  engine,
		builder: builder,
	}
}

// Claim reserves a ticket and mints it
func (s *service) Claim(ctx context.Context, templateID int64, walletAddress string, source domain.Source) (*Outcome, error) {
	if !domain.IsValidAddress(walletAddress) {
		return nil, fmt.Errorf("invalid wallet address %q", walletAddress)
	}
	normalized := domain.NormalizeAddress(walletAddress)

	template, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	record, err := s.store.ClaimTicket(ctx, store.ClaimTicketInput{
		TemplateID:    templateID,
		WalletAddress: normalized,
		Source:        source,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ticket claimed",
		zap.Int64("template_id", templateID),
		zap.String("wallet", normalized),
		zap.String("source", string(source)))

	entry, mintErr := s.MintForClaim(ctx, template, normalized, source, nil, nil)
	if mintErr != nil {
		// The claim stays on the books. Re-claiming would double-spend the
		// supply counter; the failed mint is retried from the log instead.
		logger.ErrorCtx(ctx, fmt.Errorf("mint failed after claim: %w", mintErr),
			zap.Int64("template_id", templateID),
			zap.String("wallet", normalized))
		return &Outcome{Claim: record, MintLog: entry}, mintErr
	}

	return &Outcome{Claim: record, MintLog: entry}, nil
}

// MintForClaim mints a ticket for a reserved claim and appends the outcome to
// the mint log
func (s *service) MintForClaim(ctx context.Context, template *schema.TicketTemplate, walletAddress string, source domain.Source, orderRef, productRef *string) (*schema.MintLogEntry, error) {
	md := s.builder.Build(template, source)
	canonical, err := s.builder.Canonicalize(md)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata: %w", err)
	}

	handle, mintErr := s.engine.Mint(ctx, minter.MintRequest{
		To:              walletAddress,
		ContractAddress: template.ContractAddress,
		Metadata:        string(canonical),
	})

	input := store.CreateMintLogInput{
		WalletAddress:   walletAddress,
		ContractAddress: template.ContractAddress,
		TemplateID:      &template.ID,
		OrderRef:        orderRef,
		ProductRef:      productRef,
		Metadata:        datatypes.JSON(canonical),
	}
	if mintErr != nil {
		msg := mintErr.Error()
		input.Status = schema.MintStatusError
		input.ErrorMessage = &msg
	} else {
		input.Status = schema.MintStatusSuccess
		input.TokenID = &handle.TokenID
		input.TxHash = &handle.TxHash
	}

	entry, err := s.store.AppendMintLog(ctx, input)
	if err != nil {
		// The log append itself failed; surface the storage error since the
		// mint outcome is now unrecorded.
		return nil, fmt.Errorf("failed to append mint log: %w", err)
	}

	return entry, mintErr
}

// RetryMint re-submits a failed mint from its log entry
func (s *service) RetryMint(ctx context.Context, mintLogID int64) (*schema.MintLogEntry, error) {
	failed, err := s.store.GetMintLogByID(ctx, mintLogID)
	if err != nil {
		return nil, err
	}
	if failed == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrMintLogNotFound, mintLogID)
	}
	if failed.Status != schema.MintStatusError {
		return nil, fmt.Errorf("%w: id %d has status %s", domain.ErrMintNotRetryable, mintLogID, failed.Status)
	}

	handle, mintErr := s.engine.Mint(ctx, minter.MintRequest{
		To:              failed.WalletAddress,
		ContractAddress: failed.ContractAddress,
		Metadata:        metadataString(failed.Metadata),
	})

	input := store.CreateMintLogInput{
		WalletAddress:   failed.WalletAddress,
		ContractAddress: failed.ContractAddress,
		TemplateID:      failed.TemplateID,
		OrderRef:        failed.OrderRef,
		ProductRef:      failed.ProductRef,
		Metadata:        failed.Metadata,
	}
	if mintErr != nil {
		msg := mintErr.Error()
		input.Status = schema.MintStatusError
		input.ErrorMessage = &msg
	} else {
		input.Status = schema.MintStatusSuccess
		input.TokenID = &handle.TokenID
		input.TxHash = &handle.TxHash
	}

	entry, err := s.store.AppendMintLog(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to append mint log: %w", err)
	}

	return entry, mintErr
}

func metadataString(raw datatypes.JSON) string {
	if len(raw) == 0 {
		return ""
	}
	// Metadata was stored canonicalized; pass it through unchanged.
	var check json.RawMessage
	if err := json.Unmarshal(raw, &check); err != nil {
		return ""
	}
	return string(raw)
}
