package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
)

// ProcessPurchaseOrder fulfils a paid order. The workflow is keyed by the
// event's order reference, so a redelivered webhook that reaches Temporal
// mostly dedupes at the workflow-ID level; line-level fulfilment is further
// guarded by the mint log, making every activity safe to retry.
func (w *workerCore) ProcessPurchaseOrder(ctx workflow.Context, event *domain.OrderPaidEvent) error {
	logger.InfoWf(ctx, "Starting purchase order fulfilment",
		zap.String("event_id", event.EventID),
		zap.String("order_ref", event.OrderRef),
		zap.Int("line_items", len(event.LineItems)))

	if !event.Valid() {
		// Malformed events are dropped, not retried; retrying cannot fix them
		logger.WarnWf(ctx, "Dropping malformed order event",
			zap.String("event_id", event.EventID),
			zap.String("order_ref", event.OrderRef))
		return nil
	}

	resolveOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 5,
			InitialInterval: 5 * time.Second,
			BackoffCoefficient: 2,
		},
	}
	resolveCtx := workflow.WithActivityOptions(ctx, resolveOptions)

	var walletAddress string
	err := workflow.ExecuteActivity(resolveCtx, w.executor.ResolveOrderWallet, event).Get(resolveCtx, &walletAddress)
	if err != nil {
		return fmt.Errorf("failed to resolve wallet for order %s: %w", event.OrderRef, err)
	}

	logger.InfoWf(ctx, "Recipient wallet resolved",
		zap.String("order_ref", event.OrderRef),
		zap.String("wallet", walletAddress))

	fulfillOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 5,
			InitialInterval: 10 * time.Second,
			BackoffCoefficient: 2,
		},
	}
	fulfillCtx := workflow.WithActivityOptions(ctx, fulfillOptions)

	// Lines are fulfilled sequentially. Each line is independently
	// idempotent, so a partial failure retries only the failed tail.
	var failed int
	for _, item := range event.LineItems {
		err := workflow.ExecuteActivity(fulfillCtx, w.executor.FulfillOrderLine, event.OrderRef, item, walletAddress).
			Get(fulfillCtx, nil)
		if err != nil {
			// Keep going: one sold-out or failing line must not block the
			// buyer's other tickets. The mint log records the failure.
			logger.ErrorWf(ctx, fmt.Errorf("failed to fulfil order line: %w", err),
				zap.String("order_ref", event.OrderRef),
				zap.String("product_ref", item.ProductRef))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("order %s: %d of %d lines failed", event.OrderRef, failed, len(event.LineItems))
	}

	logger.InfoWf(ctx, "Purchase order fulfilled",
		zap.String("order_ref", event.OrderRef),
		zap.Int("line_items", len(event.LineItems)))

	return nil
}
