// Package nats publishes domain events to NATS core subjects.
package nats

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	natsgo "github.com/nats-io/nats.go"

	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/infrastructure/messaging"
	"github.com/jobguard/jobguard/pkg/events"
)

var _ port.EventPublisher = (*Publisher)(nil)

// Conn is the part of *natsgo.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *natsgo.Msg) error
	FlushWithContext(ctx context.Context) error
}

// Publisher implements port.EventPublisher on NATS. Each event goes to
// "<prefix>.<event type without the jobguard. namespace>".
type Publisher struct {
	conn   Conn
	prefix string
	logger *slog.Logger
}

// Connect dials the server with reconnects enabled.
func Connect(url string, logger *slog.Logger) (*natsgo.Conn, error) {
	conn, err := natsgo.Connect(url,
		natsgo.Name("jobguard"),
		natsgo.MaxReconnects(-1),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		natsgo.ReconnectHandler(func(c *natsgo.Conn) {
			logger.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats: connect %s: %w", url, err)
	}
	return conn, nil
}

// NewPublisher creates a new NATS event publisher.
func NewPublisher(conn Conn, prefix string, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, prefix: prefix, logger: logger}
}

// Subject returns the subject an event type is published on.
func (p *Publisher) Subject(eventType string) string {
	return p.prefix + "." + strings.TrimPrefix(eventType, "jobguard.")
}

// Publish sends each event and flushes so that errors surface to the caller.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	for _, evt := range domainEvents {
		env, err := messaging.Encode(evt)
		if err != nil {
			return err
		}

		msg := natsgo.NewMsg(p.Subject(env.Type))
		msg.Data = env.Payload
		for k, v := range env.Headers {
			msg.Header.Set(k, v)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", env.Type),
			slog.String("subject", msg.Subject),
			slog.Int("payload_size", len(env.Payload)),
		)

		if err := p.conn.PublishMsg(msg); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", env.Type, err)
		}
	}

	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush nats connection: %w", err)
	}
	return nil
}
