package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/service"
)

const (
	trendWindow    = 7 * 24 * time.Hour
	computeTimeout = 10 * time.Second
)

// GetAnalytics is the use case for the dashboard aggregate. Results are
// cached for ttl and concurrent misses share one computation.
type GetAnalytics struct {
	history   port.HistoryRepository
	feedback  port.FeedbackRepository
	reports   port.ReportRepository
	blacklist *service.BlacklistRegistry
	ttl       time.Duration
	now       func() time.Time

	group    singleflight.Group
	mu       sync.RWMutex
	cached   *model.Analytics
	cachedAt time.Time
}

// NewGetAnalytics creates a new GetAnalytics use case.
func NewGetAnalytics(
	history port.HistoryRepository,
	feedback port.FeedbackRepository,
	reports port.ReportRepository,
	blacklist *service.BlacklistRegistry,
	ttl time.Duration,
) *GetAnalytics {
	return &GetAnalytics{
		history:   history,
		feedback:  feedback,
		reports:   reports,
		blacklist: blacklist,
		ttl:       ttl,
		now:       time.Now,
	}
}

// WithClock overrides the clock. Used in tests.
func (uc *GetAnalytics) WithClock(now func() time.Time) *GetAnalytics {
	uc.now = now
	return uc
}

// Execute returns the cached analytics or recomputes them.
func (uc *GetAnalytics) Execute(ctx context.Context) (dto.AnalyticsResponse, error) {
	if a, ok := uc.fresh(); ok {
		return dto.AnalyticsResponse{Analytics: a, Cached: true}, nil
	}

	// The shared computation outlives any one caller, so it runs detached
	// from the caller that started it and under its own deadline.
	ch := uc.group.DoChan("analytics", func() (any, error) {
		if a, ok := uc.fresh(); ok {
			return a, nil
		}
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), computeTimeout)
		defer cancel()
		a, err := uc.compute(computeCtx)
		if err != nil {
			return nil, err
		}
		uc.mu.Lock()
		uc.cached = &a
		uc.cachedAt = uc.now()
		uc.mu.Unlock()
		return a, nil
	})

	select {
	case <-ctx.Done():
		return dto.AnalyticsResponse{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return dto.AnalyticsResponse{}, res.Err
		}
		return dto.AnalyticsResponse{Analytics: res.Val.(model.Analytics)}, nil
	}
}

func (uc *GetAnalytics) fresh() (model.Analytics, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.cached == nil || uc.now().Sub(uc.cachedAt) >= uc.ttl {
		return model.Analytics{}, false
	}
	return *uc.cached, true
}

func (uc *GetAnalytics) compute(ctx context.Context) (model.Analytics, error) {
	now := uc.now().UTC()

	summary, err := uc.history.Summary(ctx, now.Add(-trendWindow))
	if err != nil {
		return model.Analytics{}, fmt.Errorf("failed to summarise history: %w", err)
	}
	fb, err := uc.feedback.Stats(ctx)
	if err != nil {
		return model.Analytics{}, fmt.Errorf("failed to load feedback stats: %w", err)
	}
	reports, err := uc.reports.Count(ctx)
	if err != nil {
		return model.Analytics{}, fmt.Errorf("failed to count reports: %w", err)
	}
	stats, err := uc.blacklist.Stats(ctx)
	if err != nil {
		return model.Analytics{}, err
	}

	return model.Analytics{
		Predictions:      summary,
		Feedback:         fb,
		FeedbackAccuracy: accuracy(fb),
		ReportsTotal:     reports,
		Blacklist:        stats,
		GeneratedAt:      now,
	}, nil
}

// accuracy is the share of correct feedback in percent, to one decimal.
func accuracy(fb model.FeedbackStats) float64 {
	if fb.Total <= 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(int64(fb.Correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(fb.Total))).
		Round(1).
		Float64()
	return pct
}
