package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/service"
)

// Metrics holds the instruments the use cases record to. A nil *Metrics
// records nothing.
type Metrics struct {
	assessments metric.Int64Counter
	degraded    metric.Int64Counter
	duration    metric.Float64Histogram
	reports     metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	assessments, err := meter.Int64Counter("jobguard_assessments_total",
		metric.WithDescription("Finished posting assessments by risk level."))
	if err != nil {
		return nil, fmt.Errorf("failed to create assessments counter: %w", err)
	}
	degraded, err := meter.Int64Counter("jobguard_signal_degraded_total",
		metric.WithDescription("Signal categories that were unavailable or timed out."))
	if err != nil {
		return nil, fmt.Errorf("failed to create degraded counter: %w", err)
	}
	duration, err := meter.Float64Histogram("jobguard_signal_duration_seconds",
		metric.WithDescription("Time spent evaluating one signal category."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	reports, err := meter.Int64Counter("jobguard_blacklist_reports_total",
		metric.WithDescription("Scam reports written to the blacklist."))
	if err != nil {
		return nil, fmt.Errorf("failed to create reports counter: %w", err)
	}
	return &Metrics{
		assessments: assessments,
		degraded:    degraded,
		duration:    duration,
		reports:     reports,
	}, nil
}

func (m *Metrics) recordEvaluation(ctx context.Context, ev service.Evaluation) {
	if m == nil {
		return
	}
	m.assessments.Add(ctx, 1, metric.WithAttributes(attribute.String("risk_level", ev.Risk.RiskLevel.String())))
	for name, s := range ev.Signals {
		category := metric.WithAttributes(attribute.String("category", name))
		switch s.Reason {
		case model.ReasonUnavailable, model.ReasonTimeout:
			m.degraded.Add(ctx, 1, category)
		}
		if s.Elapsed > 0 {
			m.duration.Record(ctx, s.Elapsed.Seconds(), category)
		}
	}
}

func (m *Metrics) recordReport(ctx context.Context) {
	if m == nil {
		return
	}
	m.reports.Add(ctx, 1)
}
