package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postingFlagged struct {
	BaseEvent
	RiskScore int `json:"risk_score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := NewBaseEvent("posting.flagged", aggregateID, "PostingAssessment")
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "posting.flagged", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "PostingAssessment", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
	var _ DomainEvent = postingFlagged{}
}

func TestEmbeddedBaseEventSerialisesFlat(t *testing.T) {
	evt := postingFlagged{
		BaseEvent: NewBaseEvent("posting.flagged", uuid.New(), "PostingAssessment"),
		RiskScore: 91,
	}

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "posting.flagged", parsed["event_type"])
	assert.Equal(t, evt.EventID().String(), parsed["event_id"])
	assert.EqualValues(t, 91, parsed["risk_score"])
}

func TestEventCollectorRecord(t *testing.T) {
	collector := &EventCollector{}
	aggregateID := uuid.New()

	collector.Record(NewBaseEvent("Event1", aggregateID, "Aggregate"))
	collector.Record(NewBaseEvent("Event2", aggregateID, "Aggregate"))

	events := collector.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Event1", events[0].EventType())
	assert.Equal(t, "Event2", events[1].EventType())
	assert.Len(t, collector.Events(), 2, "Events() must not clear")
}

func TestEventCollectorClearEvents(t *testing.T) {
	collector := &EventCollector{}
	collector.Record(NewBaseEvent("Event1", uuid.New(), "Aggregate"))
	collector.Record(NewBaseEvent("Event2", uuid.New(), "Aggregate"))

	cleared := collector.ClearEvents()

	assert.Len(t, cleared, 2)
	assert.Empty(t, collector.Events())
	assert.Nil(t, collector.ClearEvents())
}
