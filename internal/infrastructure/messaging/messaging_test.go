package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/domain/event"
)

func TestEncode(t *testing.T) {
	id := uuid.New()
	evt := event.NewHighRiskDetected(id, "Quick Cash", "https://scam.example/job", 82, []string{"Upfront payment requested"})

	env, err := Encode(evt)
	require.NoError(t, err)

	assert.Equal(t, event.EventTypeHighRiskDetected, env.Type)
	assert.Equal(t, []byte(id.String()), env.Key)
	assert.Equal(t, event.AggregateTypeAssessment, env.Headers[HeaderAggregateType])
	assert.Equal(t, evt.EventID().String(), env.Headers[HeaderEventID])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(env.Payload, &decoded))
	assert.Equal(t, event.EventTypeHighRiskDetected, decoded["event_type"])
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := NewLogPublisher(logger)

	evt := event.NewScamReported(uuid.New(), "https://scam.example/job", "Quick Cash", "Anonymous", "medium", []string{"URL: scam.example/job"}, nil)
	require.NoError(t, pub.Publish(context.Background(), evt))

	out := buf.String()
	assert.Contains(t, out, `"msg":"publishing event"`)
	assert.Contains(t, out, event.EventTypeScamReported)
	assert.Contains(t, out, `"msg":"event payload"`)
}
