package messaging

import (
	"context"
	"log/slog"

	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/pkg/events"
)

var _ port.EventPublisher = (*LogPublisher)(nil)

// LogPublisher implements port.EventPublisher by logging each event.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs domain events at info level with their payload at debug.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		env, err := Encode(evt)
		if err != nil {
			return err
		}

		p.logger.InfoContext(ctx, "publishing event",
			slog.String("event_type", env.Type),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.Int("payload_size", len(env.Payload)),
		)
		p.logger.DebugContext(ctx, "event payload",
			slog.String("event_type", env.Type),
			slog.String("payload", string(env.Payload)),
		)
	}
	return nil
}
