package activity

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const Topic = "payroll.dashboard.activity.v1"

// Event is a small record of a successful mutation, published for
// external consumers (reporting, backup tooling).
type Event struct {
	EventType  string    `json:"event_type"`
	Identity   string    `json:"identity"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Month      string    `json:"month,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock
type Publisher interface {
	// Publish is fire-and-forget: failures are logged, never propagated,
	// so a broker outage cannot break a mutation.
	Publish(ctx context.Context, event Event)
}

type kafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, logger *zap.Logger) Publisher {
	return &kafkaPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        Topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireOne,
			Async:        true,
		},
		logger: logger.Named("activity"),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal activity event failed", zap.Error(err))
		return
	}

	msg := kafkago.Message{
		Key:   []byte(event.Identity),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("publish activity event failed",
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) {}
