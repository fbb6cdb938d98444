package escrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

const (
	// TokenBytes is the entropy backing a transfer link token
	TokenBytes = 16
	// LinkTTL is how long a transfer link stays redeemable
	LinkTTL = 7 * 24 * time.Hour
)

// RedeemResult is the outcome of a successful redemption.
type RedeemResult struct {
	TokenID string
	TxHash  string
}

// Service is the transfer escrow: time-boxed single-use links that hand a
// ticket to another wallet by minting a fresh copy to the claimer.
//
//go:generate mockgen -source=service.go -destination=../mocks/escrow_service.go -package=mocks -mock_names=Service=MockEscrowService
type Service interface {
	// CreateLink issues a transfer link for a ticket the giver holds
	CreateLink(ctx context.Context, giverAddress string, templateID int64, tokenID string) (*schema.TransferLink, error)
	// Redeem hands the ticket to the claimer: mints a fresh copy and
	// finalizes the link as claimed
	Redeem(ctx context.Context, token, claimerAddress string) (*RedeemResult, error)
	// Cancel revokes an active link. Only the giver may cancel.
	Cancel(ctx context.Context, token, callerAddress string) error
}

type service struct {
	store  store.Store
	claims claims.Service
	tokens adapter.TokenSource
	clock  adapter.Clock
}

// NewService creates a transfer escrow service
func NewService(st store.Store, cl claims.Service, tokens adapter.TokenSource, clock adapter.Clock) Service {
	return &service{
		store:  st,
		claims: cl,
		tokens: tokens,
		clock:  clock,
	}
}

// CreateLink issues a transfer link for a ticket the giver holds
func (s *service) CreateLink(ctx context.Context, giverAddress string, templateID int64, tokenID string) (*schema.TransferLink, error) {
	if !domain.IsValidAddress(giverAddress) {
		return nil, fmt.Errorf("invalid giver address %q", giverAddress)
	}
	giver := domain.NormalizeAddress(giverAddress)

	template, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsTransferable {
		return nil, fmt.Errorf("%w: template %d", domain.ErrNotTransferable, templateID)
	}

	claim, err := s.store.GetClaim(ctx, templateID, giver)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, domain.ErrLinkNotOwned
	}

	token, err := s.tokens.Token(TokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate link token: %w", err)
	}

	link, err := s.store.CreateTransferLink(ctx, store.CreateTransferLinkInput{
		Token:        token,
		GiverAddress: giver,
		TemplateID:   templateID,
		TokenID:      tokenID,
		ExpiresAt:    s.clock.Now().Add(LinkTTL),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "transfer link created",
		zap.Int64("template_id", templateID),
		zap.String("giver", giver))

	return link, nil
}

// Redeem hands the ticket to the claimer
func (s *service) Redeem(ctx context.Context, token, claimerAddress string) (*RedeemResult, error) {
	if !domain.IsValidAddress(claimerAddress) {
		return nil, fmt.Errorf("invalid claimer address %q", claimerAddress)
	}
	claimer := domain.NormalizeAddress(claimerAddress)

	link, err := s.store.GetTransferLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	switch link.Status {
	case schema.TransferLinkStatusActive:
		// fall through to precondition checks
	case schema.TransferLinkStatusExpired:
		return nil, domain.ErrLinkExpired
	default:
		return nil, domain.ErrLinkFinalized
	}

	if s.clock.Now().After(link.ExpiresAt) {
		// Lazy expiry: write the terminal state back so subsequent reads see
		// EXPIRED directly. A concurrent finalization losing the CAS is fine.
		if err := s.store.MarkTransferLinkExpired(ctx, token); err != nil && !errors.Is(err, domain.ErrLinkFinalized) {
			logger.WarnCtx(ctx, "failed to write back expired transfer link",
				zap.String("token", token), zap.Error(err))
		}
		return nil, domain.ErrLinkExpired
	}

	if claimer == link.GiverAddress {
		return nil, domain.ErrSelfClaim
	}

	template, err := s.store.GetTemplate(ctx, link.TemplateID)
	if err != nil {
		return nil, err
	}

	// Carry the giver's acquisition source forward into the fresh copy
	source := domain.SourceManual
	if claim, err := s.store.GetClaim(ctx, link.TemplateID, link.GiverAddress); err == nil && claim != nil {
		source = claim.Source
	}

	// Mint before finalizing. A failed mint leaves the link ACTIVE and
	// redeemable again: no durable side effect has happened yet.
	entry, err := s.claims.MintForClaim(ctx, template, claimer, source, nil, nil)
	if err != nil {
		return nil, err
	}

	txHash := ""
	if entry != nil && entry.TxHash != nil {
		txHash = *entry.TxHash
	}

	if err := s.store.MarkTransferLinkClaimed(ctx, token, claimer, txHash); err != nil {
		// The NFT exists but the link still shows ACTIVE. This cannot be
		// rolled back; flag it for manual reconciliation.
		logger.ErrorCtx(ctx, fmt.Errorf("%w: minted tx %s for link token %s: %v",
			domain.ErrLinkReconciliation, txHash, token, err),
			zap.String("claimer", claimer),
			zap.Int64("template_id", link.TemplateID))
		return nil, domain.ErrLinkReconciliation
	}

	logger.InfoCtx(ctx, "transfer link redeemed",
		zap.Int64("template_id", link.TemplateID),
		zap.String("claimer", claimer),
		zap.String("tx_hash", txHash))

	return &RedeemResult{TokenID: link.TokenID, TxHash: txHash}, nil
}

// Cancel revokes an active link
func (s *service) Cancel(ctx context.Context, token, callerAddress string) error {
	caller := domain.NormalizeAddress(callerAddress)

	link, err := s.store.GetTransferLinkByToken(ctx, token)
	if err != nil {
		return err
	}
	if link.GiverAddress != caller {
		return domain.ErrLinkNotOwned
	}
	if link.Status != schema.TransferLinkStatusActive {
		return domain.ErrLinkFinalized
	}

	return s.store.MarkTransferLinkCancelled(ctx, token)
}
