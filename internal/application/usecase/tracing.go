package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const tracerName = "github.com/jobguard/jobguard/internal/application/usecase"

func tracer() trace.Tracer { return otel.Tracer(tracerName) }

// tracedSource opens a child span around each category evaluation.
type tracedSource struct {
	next service.SignalSource
}

// TraceSources wraps each source so its evaluation shows up as a span
// beneath the assessment span.
func TraceSources(sources ...service.SignalSource) []service.SignalSource {
	out := make([]service.SignalSource, 0, len(sources))
	for _, s := range sources {
		out = append(out, &tracedSource{next: s})
	}
	return out
}

func (t *tracedSource) Category() valueobject.Category { return t.next.Category() }

func (t *tracedSource) Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error) {
	ctx, span := tracer().Start(ctx, "signal."+t.next.Category().String())
	defer span.End()

	result, err := t.next.Evaluate(ctx, posting)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	span.SetAttributes(
		attribute.Int("signal.score", result.Score),
		attribute.Bool("signal.active", result.Active),
		attribute.Int("signal.flags", len(result.Flags)),
	)
	return result, nil
}
