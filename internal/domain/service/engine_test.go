package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
	"github.com/jobguard/jobguard/pkg/observability"
	"github.com/jobguard/jobguard/pkg/testutil"
)

type stubSource struct {
	category valueobject.Category
	result   model.SignalResult
	err      error
	block    bool
	panics   bool
}

func (s *stubSource) Category() valueobject.Category { return s.category }

func (s *stubSource) Evaluate(ctx context.Context, _ model.Posting) (model.SignalResult, error) {
	if s.panics {
		panic("index out of range")
	}
	if s.block {
		<-ctx.Done()
		return model.SignalResult{}, ctx.Err()
	}
	return s.result, s.err
}

type engineDeps struct {
	classifier port.Classifier
	blacklist  *fakeBlacklistRepo
}

func newEngine(deps engineDeps) *service.Engine {
	reg := registry.Default()
	logger := observability.NopLogger()
	if deps.blacklist == nil {
		deps.blacklist = newFakeBlacklistRepo()
	}
	return service.NewEngine(service.NewAggregator(), logger,
		service.NewTextSource(service.NewTextAnalyzer(reg)),
		service.NewCompanySource(service.NewCompanyVerifier(reg, nil, nil, nil, time.Second, logger)),
		service.NewURLSource(service.NewURLAnalyzer(reg, nil)),
		service.NewBlacklistSource(service.NewBlacklistRegistry(deps.blacklist, reg)),
		service.NewClassifierSource(service.NewClassifierAdapter(deps.classifier, nil, time.Second, logger)),
	)
}

func toPosting(t *testing.T, p testutil.Posting) model.Posting {
	t.Helper()
	posting, err := model.NewPosting(p.Title, p.Description, p.Company, p.URL)
	require.NoError(t, err)
	return posting
}

func TestEngine_ScamPosting(t *testing.T) {
	engine := newEngine(engineDeps{})

	ev := engine.Evaluate(context.Background(), toPosting(t, testutil.ScamPosting()))

	assert.Equal(t, 73, ev.Risk.OverallScore)
	assert.Equal(t, valueobject.RiskLevelCritical, ev.Risk.RiskLevel)
	assert.False(t, ev.Risk.IsBlacklisted)
	assert.Equal(t, []string{"text_analysis", "company_verification"}, ev.Risk.ActiveCategories())

	assert.Equal(t, model.ReasonNotApplicable, ev.Risk.Breakdown["url_security"].Status)
	assert.Equal(t, model.ReasonNoMatch, ev.Risk.Breakdown["blacklist_check"].Status)
	assert.Equal(t, model.ReasonUnavailable, ev.Risk.Breakdown["ai_prediction"].Status)

	assert.Contains(t, ev.Risk.Flags, "Company verification failed: Quick Cash Inc")
	assert.Contains(t, ev.Risk.Flags, "Moves communication to chat apps: telegram")

	require.NotNil(t, ev.Company())
	assert.Equal(t, 40, ev.Company().RiskScore)
	require.NotNil(t, ev.Blacklist())
	assert.False(t, ev.Blacklist().IsBlacklisted)
	assert.Nil(t, ev.URLAnalysis())
	assert.Nil(t, ev.Prediction())
}

func TestEngine_LegitPosting(t *testing.T) {
	engine := newEngine(engineDeps{
		classifier: &mockClassifier{label: model.LabelLegitimate, probability: 0.96},
	})

	ev := engine.Evaluate(context.Background(), toPosting(t, testutil.LegitPosting()))

	assert.Equal(t, 0, ev.Risk.OverallScore)
	assert.Equal(t, valueobject.RiskLevelLow, ev.Risk.RiskLevel)
	assert.Empty(t, ev.Risk.Flags)
	assert.Contains(t, ev.Risk.PositiveSignals, "Verified company: Google")
	assert.Contains(t, ev.Risk.PositiveSignals, "Posted on trusted job platform")
	assert.Contains(t, ev.Risk.PositiveSignals, "AI model predicts legitimate")
	assert.Equal(t, "Lower risk detected", ev.Risk.Recommendations[0])

	require.NotNil(t, ev.Company())
	assert.True(t, ev.Company().Verified)
	require.NotNil(t, ev.URLAnalysis())
	assert.True(t, ev.URLAnalysis().Trusted)
	require.NotNil(t, ev.Prediction())
	assert.InDelta(t, 96.0, ev.Prediction().Confidence, 1e-9)
}

func TestEngine_BlacklistedPosting(t *testing.T) {
	repo := newFakeBlacklistRepo()
	reg := service.NewBlacklistRegistry(repo, registry.Default())
	for range 3 {
		_, err := reg.Add(context.Background(), service.BlacklistReport{Company: "Google"})
		require.NoError(t, err)
	}
	engine := newEngine(engineDeps{
		classifier: &mockClassifier{label: model.LabelLegitimate, probability: 0.96},
		blacklist:  repo,
	})

	ev := engine.Evaluate(context.Background(), toPosting(t, testutil.LegitPosting()))

	assert.True(t, ev.Risk.IsBlacklisted)
	assert.Equal(t, 85, ev.Risk.OverallScore)
	assert.Equal(t, "Multiple scam reports exist for this job/company. Avoid!", ev.Risk.Flags[0])
	assert.Equal(t, valueobject.RiskLevelHigh, ev.Blacklist().Severity)
}

func TestEngine_DegradedSources(t *testing.T) {
	repo := newFakeBlacklistRepo()
	repo.matchErr = errors.New("database is locked")
	engine := newEngine(engineDeps{
		classifier: &mockClassifier{err: errors.New("model file missing")},
		blacklist:  repo,
	})

	ev := engine.Evaluate(context.Background(), toPosting(t, testutil.ScamPosting()))

	assert.Equal(t, model.ReasonUnavailable, ev.Risk.Breakdown["blacklist_check"].Status)
	assert.Equal(t, model.ReasonUnavailable, ev.Risk.Breakdown["ai_prediction"].Status)
	assert.Equal(t, 73, ev.Risk.OverallScore, "the remaining categories still produce a score")
}

func TestEngine_SlowSourceTimesOut(t *testing.T) {
	engine := service.NewEngine(service.NewAggregator(), observability.NopLogger(),
		&stubSource{category: valueobject.CategoryText, result: scored(valueobject.CategoryText, 20)},
		&stubSource{category: valueobject.CategoryURL, block: true},
	)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	ev := engine.Evaluate(ctx, model.Posting{Description: "anything"})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 20, ev.Risk.OverallScore)
	assert.Equal(t, model.ReasonTimeout, ev.Risk.Breakdown["url_security"].Status)
}

func TestEngine_PanickingSourceIsUnavailable(t *testing.T) {
	engine := service.NewEngine(service.NewAggregator(), observability.NopLogger(),
		&stubSource{category: valueobject.CategoryText, result: scored(valueobject.CategoryText, 60)},
		&stubSource{category: valueobject.CategoryCompany, panics: true},
		&stubSource{category: valueobject.CategoryURL, err: service.ErrNotApplicable},
		&stubSource{category: valueobject.CategoryClassifier, err: port.ErrNotConfigured},
	)

	ev := engine.Evaluate(context.Background(), model.Posting{Description: "anything"})

	assert.Equal(t, 60, ev.Risk.OverallScore)
	assert.Equal(t, model.ReasonUnavailable, ev.Risk.Breakdown["company_verification"].Status)
	assert.Equal(t, model.ReasonNotApplicable, ev.Risk.Breakdown["url_security"].Status)
	assert.Equal(t, model.ReasonUnavailable, ev.Risk.Breakdown["ai_prediction"].Status)
	assert.Len(t, ev.Signals, 4)
}
