package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/citypass-labs/ticketd/internal/domain"
)

// TaskQueue is the Temporal task queue purchase workflows run on
const TaskQueue = "ticketd-purchases"

// WorkerCore defines the interface for processing purchase orders
type WorkerCore interface {
	// ProcessPurchaseOrder fulfils every line of a paid order: resolve the
	// recipient wallet once, then claim-and-mint per line item
	ProcessPurchaseOrder(ctx workflow.Context, event *domain.OrderPaidEvent) error
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor) WorkerCore {
	return &workerCore{
		executor: executor,
	}
}
