package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/messaging"
	"github.com/citypass-labs/ticketd/internal/providers/temporal"
	"github.com/citypass-labs/ticketd/internal/workflows"
)

// Config holds the configuration for the order bridge
type Config struct {
	URL               string
	StreamName        string
	ConsumerName      string
	MaxReconnects     int
	ReconnectWait     time.Duration
	ConnectionName    string
	AckWaitTimeout    time.Duration
	MaxDeliver        int
	TemporalTaskQueue string
}

// Bridge defines the interface for the order bridge
type Bridge interface {
	// Run starts the order bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc           adapter.NatsConn
	js           adapter.JetStream
	orchestrator temporal.TemporalOrchestrator
	json         adapter.JSON
	config       Config
}

// NewBridge creates a new order bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	orchestrator temporal.TemporalOrchestrator,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	b := &bridge{
		nc:           nc,
		js:           js,
		orchestrator: orchestrator,
		json:         jsonAdapter,
		config:       cfg,
	}

	return b, nil
}

// Run starts the order bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting order bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	// Create or get consumer
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: messaging.SubjectOrderPaid,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming order events")

	// Process messages
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down order bridge")
			return ctx.Err()
		case msg := <-msgChan:
			// Spawn goroutine to handle message asynchronously
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	// Get metadata for logging
	metadata, _ := msg.Metadata()

	// Parse event
	var event domain.OrderPaidEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal order event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	var deliveryCount uint64
	if metadata != nil {
		deliveryCount = metadata.NumDelivered
	}
	logger.Info("Received order event",
		zap.String("eventID", event.EventID),
		zap.String("orderRef", event.OrderRef),
		zap.Int("lineItems", len(event.LineItems)),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	// Forward to the purchase worker
	if err := b.forwardToWorker(ctx, &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to forward order event to worker"))
		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	// ACK message after successful processing
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// forwardToWorker starts the purchase workflow for the order. The workflow ID
// is keyed by the order reference so a redelivered event reuses the prior
// run unless it failed.
func (b *bridge) forwardToWorker(ctx context.Context, event *domain.OrderPaidEvent) error {
	w := workflows.NewWorkerCore(nil)

	opt := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("purchase-order-%s", event.OrderRef),
		TaskQueue:             b.config.TemporalTaskQueue,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowRunTimeout:    30 * time.Minute,
	}
	_, err := b.orchestrator.ExecuteWorkflow(ctx, opt, w.ProcessPurchaseOrder, event)
	if err != nil {
		return fmt.Errorf("failed to execute workflow: %w", err)
	}

	logger.Info("Order event forwarded to worker",
		zap.String("orderRef", event.OrderRef),
		zap.String("eventID", event.EventID),
	)

	return nil
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
