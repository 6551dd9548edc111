package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// Evaluation is the aggregate plus the raw per-category results.
type Evaluation struct {
	Risk    model.RiskAssessment
	Signals map[string]model.SignalResult
}

// Engine runs every SignalSource concurrently and aggregates whatever
// finished before the context ended. Sources that fail, panic or miss the
// deadline are inactive in the result.
type Engine struct {
	sources    []SignalSource
	aggregator *Aggregator
	logger     *slog.Logger
}

// NewEngine creates an Engine over the given sources.
func NewEngine(aggregator *Aggregator, logger *slog.Logger, sources ...SignalSource) *Engine {
	return &Engine{
		sources:    sources,
		aggregator: aggregator,
		logger:     logger,
	}
}

type sourceOutcome struct {
	result model.SignalResult
	err    error
}

// Evaluate blocks until every source has answered or ctx is done.
func (e *Engine) Evaluate(ctx context.Context, posting model.Posting) Evaluation {
	// Buffered so late sources never block after the collector gives up.
	outcomes := make(chan sourceOutcome, len(e.sources))
	for _, src := range e.sources {
		go func(src SignalSource) {
			outcomes <- runSource(ctx, src, posting)
		}(src)
	}

	signals := make(map[string]model.SignalResult, len(e.sources))
	pending := len(e.sources)
collect:
	for pending > 0 {
		select {
		case o := <-outcomes:
			pending--
			signals[o.result.Category.String()] = e.settle(o)
		case <-ctx.Done():
			break collect
		}
	}

	for _, src := range e.sources {
		if _, ok := signals[src.Category().String()]; !ok {
			e.logger.Warn("signal source did not finish in time", "category", src.Category().String())
			signals[src.Category().String()] = model.InactiveSignal(src.Category(), model.ReasonTimeout)
		}
	}

	results := make([]model.SignalResult, 0, len(signals))
	for _, s := range signals {
		results = append(results, s)
	}
	return Evaluation{
		Risk:    e.aggregator.Aggregate(results...),
		Signals: signals,
	}
}

func runSource(ctx context.Context, src SignalSource, posting model.Posting) (out sourceOutcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = sourceOutcome{err: fmt.Errorf("signal source panicked: %v", r)}
		}
		out.result.Category = src.Category()
		out.result.Elapsed = time.Since(start)
	}()

	result, err := src.Evaluate(ctx, posting)
	return sourceOutcome{result: result, err: err}
}

func (e *Engine) settle(o sourceOutcome) model.SignalResult {
	category := o.result.Category
	if o.err == nil {
		return o.result
	}

	reason := model.ReasonUnavailable
	switch {
	case errors.Is(o.err, ErrNotApplicable):
		reason = model.ReasonNotApplicable
	case errors.Is(o.err, context.DeadlineExceeded), errors.Is(o.err, context.Canceled):
		reason = model.ReasonTimeout
	case errors.Is(o.err, port.ErrNotConfigured):
		e.logger.Debug("signal source not configured", "category", category.String())
	default:
		e.logger.Warn("signal source degraded", "category", category.String(), "error", o.err)
	}

	inactive := model.InactiveSignal(category, reason)
	inactive.Elapsed = o.result.Elapsed
	return inactive
}

// Company returns the company verification if that category ran.
func (ev Evaluation) Company() *model.CompanyVerification {
	if v, ok := ev.details(valueobject.CategoryCompany).(model.CompanyVerification); ok {
		return &v
	}
	return nil
}

// URLAnalysis returns the URL analysis if that category ran.
func (ev Evaluation) URLAnalysis() *model.URLAnalysis {
	if v, ok := ev.details(valueobject.CategoryURL).(model.URLAnalysis); ok {
		return &v
	}
	return nil
}

// Blacklist returns the blacklist check, matched or not, if the lookup ran.
func (ev Evaluation) Blacklist() *model.BlacklistCheck {
	if v, ok := ev.details(valueobject.CategoryBlacklist).(model.BlacklistCheck); ok {
		return &v
	}
	return nil
}

// Prediction returns the classifier output if that category ran.
func (ev Evaluation) Prediction() *model.Prediction {
	if v, ok := ev.details(valueobject.CategoryClassifier).(model.Prediction); ok {
		return &v
	}
	return nil
}

func (ev Evaluation) details(c valueobject.Category) any {
	s, ok := ev.Signals[c.String()]
	if !ok {
		return nil
	}
	return s.Details
}
