package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/infrastructure/messaging"
	"github.com/jobguard/jobguard/pkg/events"
	pkgkafka "github.com/jobguard/jobguard/pkg/kafka"
)

var _ port.EventPublisher = (*Publisher)(nil)

// MessageProducer is satisfied by *pkgkafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka in one batch.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		env, err := messaging.Encode(evt)
		if err != nil {
			return err
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", env.Type),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(env.Payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:     env.Key,
			Value:   env.Payload,
			Headers: env.Headers,
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
