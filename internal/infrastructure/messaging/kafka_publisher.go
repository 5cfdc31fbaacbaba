// Package messaging provides the event publisher implementations: a
// Kafka publisher for deployments with brokers and a log publisher for
// local demo runs.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/kafka"
)

const defaultTopic = "loanops.events"

// KafkaPublisher serializes domain events as JSON and publishes them to
// a single workflow topic, keyed by aggregate ID so one session's events
// stay ordered.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	if topic == "" {
		topic = defaultTopic
	}
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID()),
		Value: payload,
		Headers: map[string]string{
			"event_type":     event.EventType(),
			"aggregate_type": event.AggregateType(),
		},
	}
	if err := p.producer.Publish(ctx, p.topic, msg); err != nil {
		return err
	}

	p.logger.Debug("published event",
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"topic", p.topic)
	return nil
}
