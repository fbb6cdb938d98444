package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(fmt.Errorf("disconnected from NATS: %w", err))
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

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
	}, nil
}

// PublishOrderPaid publishes an order-paid event to NATS JetStream
func (p *publisher) PublishOrderPaid(ctx context.Context, event *domain.OrderPaidEvent) error {
	logger.Debug("Publishing order-paid event",
		zap.String("event_id", event.EventID),
		zap.String("order_ref", event.OrderRef))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// MsgId dedupes redelivered webhooks inside the broker's dedup window;
	// the mint log guards everything beyond it. Keyed on the order reference:
	// a redelivery is assigned a fresh EventID at receipt, the order
	// reference is the one identity stable across deliveries.
	_, err = p.js.Publish(ctx, messaging.SubjectOrderPaid, data, natsMsgID(orderPaidMsgID(event))...)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// orderPaidMsgID derives the broker dedup key for an order-paid event
func orderPaidMsgID(event *domain.OrderPaidEvent) string {
	return event.OrderRef
}

func natsMsgID(id string) []natsjs.PublishOpt {
	if id == "" {
		return nil
	}
	return []natsjs.PublishOpt{natsjs.WithMsgID(id)}
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
