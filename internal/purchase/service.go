package purchase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/claims"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/minter"
	"github.com/citypass-labs/ticketd/internal/store"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// Service fulfils paid orders: it maps products to templates, resolves the
// recipient wallet and mints, guarded against webhook redelivery.
type Service interface {
	// ShouldMint reports whether the (order, product) pair still needs a
	// mint. A prior success mint-log row means the redelivered event is a
	// no-op, not an error.
	ShouldMint(ctx context.Context, orderRef, productRef string) (bool, error)
	// ResolveWallet resolves the recipient wallet for an order event:
	// explicit wallet on the event, else identity-store lookup by buyer
	// email, else a freshly provisioned custodial wallet persisted by email.
	ResolveWallet(ctx context.Context, event *domain.OrderPaidEvent) (string, error)
	// FulfillLine fulfils one order line for the resolved wallet: reserve the
	// claim if it does not exist yet and mint, recording the order reference
	// in the mint log.
	FulfillLine(ctx context.Context, orderRef string, item domain.OrderLineItem, walletAddress string) error
}

type service struct {
	store  store.Store
	claims claims.Service
	engine minter.MintEngine
}

// NewService creates a purchase fulfilment service
func NewService(st store.Store, cl claims.Service, engine minter.MintEngine) Service {
	return &service{
		store:  st,
		claims: cl,
		engine: engine,
	}
}

// ShouldMint reports whether the (order, product) pair still needs a mint
func (s *service) ShouldMint(ctx context.Context, orderRef, productRef string) (bool, error) {
	done, err := s.store.HasSuccessfulMintForOrder(ctx, orderRef, productRef)
	if err != nil {
		return false, err
	}
	return !done, nil
}

// ResolveWallet resolves the recipient wallet for an order event
func (s *service) ResolveWallet(ctx context.Context, event *domain.OrderPaidEvent) (string, error) {
	// Tier 1: the buyer connected a wallet at checkout
	if event.WalletAddress != "" {
		if !domain.IsValidAddress(event.WalletAddress) {
			return "", fmt.Errorf("invalid wallet address %q on order %s", event.WalletAddress, event.OrderRef)
		}
		return domain.NormalizeAddress(event.WalletAddress), nil
	}

	// Tier 2: a wallet is already mapped to the buyer email
	wallet, err := s.store.GetWalletByEmail(ctx, event.BuyerEmail)
	if err != nil {
		return "", err
	}
	if wallet != nil {
		return wallet.Address, nil
	}

	// Tier 3: provision a custodial wallet. Concurrent line items of the
	// same order may race here; the upsert ignores conflicts and the
	// re-read returns whichever row won.
	provisioned, err := s.engine.CreateWallet(ctx, event.BuyerEmail)
	if err != nil {
		return "", err
	}

	err = s.store.UpsertWallet(ctx, &schema.Wallet{
		Email:       event.BuyerEmail,
		Address:     provisioned.Address,
		Provisioned: true,
	})
	if err != nil {
		return "", err
	}

	wallet, err = s.store.GetWalletByEmail(ctx, event.BuyerEmail)
	if err != nil {
		return "", err
	}
	if wallet == nil {
		return "", fmt.Errorf("wallet for %s missing after provisioning", event.BuyerEmail)
	}

	logger.InfoCtx(ctx, "custodial wallet resolved",
		zap.String("order_ref", event.OrderRef),
		zap.String("wallet", wallet.Address))

	return wallet.Address, nil
}

// FulfillLine fulfils one order line for the resolved wallet
func (s *service) FulfillLine(ctx context.Context, orderRef string, item domain.OrderLineItem, walletAddress string) error {
	needed, err := s.ShouldMint(ctx, orderRef, item.ProductRef)
	if err != nil {
		return err
	}
	if !needed {
		logger.InfoCtx(ctx, "order line already fulfilled, skipping",
			zap.String("order_ref", orderRef),
			zap.String("product_ref", item.ProductRef))
		return nil
	}

	template, err := s.store.GetTemplateByProductRef(ctx, item.ProductRef)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			// Not every shop product is a ticket
			logger.WarnCtx(ctx, "order line has no ticket template, skipping",
				zap.String("order_ref", orderRef),
				zap.String("product_ref", item.ProductRef))
			return nil
		}
		return err
	}

	_, err = s.store.ClaimTicket(ctx, store.ClaimTicketInput{
		TemplateID:    template.ID,
		WalletAddress: walletAddress,
		Source:        domain.SourcePurchase,
	})
	if err != nil {
		// An existing claim with no success mint-log row means an earlier
		// delivery reserved the ticket but the mint never landed. Mint
		// without re-running the claim procedure.
		if !errors.Is(err, domain.ErrAlreadyClaimed) {
			return err
		}
		logger.InfoCtx(ctx, "claim already reserved, re-minting",
			zap.String("order_ref", orderRef),
			zap.Int64("template_id", template.ID))
	}

	productRef := item.ProductRef
	_, err = s.claims.MintForClaim(ctx, template, walletAddress, domain.SourcePurchase, &orderRef, &productRef)
	return err
}
