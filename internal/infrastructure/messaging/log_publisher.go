package messaging

import (
	"context"
	"log/slog"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// LogPublisher records domain events to the structured log. It is the
// default publisher when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("domain event",
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"aggregate_type", event.AggregateType(),
		"occurred_at", event.OccurredAt())
	return nil
}
