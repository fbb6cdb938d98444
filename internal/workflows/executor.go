package workflows

import (
	"context"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/purchase"
)

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// ResolveOrderWallet resolves the recipient wallet for an order event
	// (explicit wallet, email lookup, or custodial provisioning)
	ResolveOrderWallet(ctx context.Context, event *domain.OrderPaidEvent) (string, error)

	// FulfillOrderLine fulfils one order line for the resolved wallet. Safe
	// to retry: the mint-log idempotency guard turns redelivery into a no-op.
	FulfillOrderLine(ctx context.Context, orderRef string, item domain.OrderLineItem, walletAddress string) error
}

// executor is the concrete implementation of Executor
type executor struct {
	purchase purchase.Service
}

// NewExecutor creates a new executor instance
func NewExecutor(purchaseSvc purchase.Service) Executor {
	return &executor{
		purchase: purchaseSvc,
	}
}

// ResolveOrderWallet resolves the recipient wallet for an order event
func (e *executor) ResolveOrderWallet(ctx context.Context, event *domain.OrderPaidEvent) (string, error) {
	return e.purchase.ResolveWallet(ctx, event)
}

// FulfillOrderLine fulfils one order line for the resolved wallet
func (e *executor) FulfillOrderLine(ctx context.Context, orderRef string, item domain.OrderLineItem, walletAddress string) error {
	return e.purchase.FulfillLine(ctx, orderRef, item, walletAddress)
}
