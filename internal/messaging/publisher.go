package messaging

import (
	"context"

	"github.com/citypass-labs/ticketd/internal/domain"
)

// SubjectOrderPaid is the subject order-paid events are published on
const SubjectOrderPaid = "orders.paid"

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishOrderPaid publishes an order-paid event to the message broker.
	// The broker provides at-least-once delivery to the purchase bridge; the
	// mint-log idempotency guard is the correctness backstop.
	PublishOrderPaid(ctx context.Context, event *domain.OrderPaidEvent) error
	// Close closes the connection
	Close()
}
