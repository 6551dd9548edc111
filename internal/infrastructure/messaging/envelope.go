// Package messaging holds the broker-neutral event encoding and the
// log-only publisher used when no broker is configured.
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/jobguard/jobguard/pkg/events"
)

// Header names attached to every published event.
const (
	HeaderEventType     = "event_type"
	HeaderEventID       = "event_id"
	HeaderAggregateType = "aggregate_type"
)

// Envelope is one encoded event ready for a broker.
type Envelope struct {
	Type    string
	Key     []byte
	Payload []byte
	Headers map[string]string
}

// Encode marshals a domain event. The key is the aggregate ID so that events
// of one assessment stay ordered on partitioned brokers.
func Encode(evt events.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
	}
	return Envelope{
		Type:    evt.EventType(),
		Key:     []byte(evt.AggregateID().String()),
		Payload: payload,
		Headers: map[string]string{
			HeaderEventType:     evt.EventType(),
			HeaderEventID:       evt.EventID().String(),
			HeaderAggregateType: evt.AggregateType(),
		},
	}, nil
}
