package service

import (
	"context"
	"errors"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// ErrNotApplicable is returned by a source whose input is absent from the posting.
var ErrNotApplicable = errors.New("signal not applicable to posting")

const (
	classifierFraudScore = 70
	blacklistScore       = 100
)

// SignalSource produces one category's SignalResult for a posting.
type SignalSource interface {
	Category() valueobject.Category
	Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error)
}

var (
	_ SignalSource = (*TextSource)(nil)
	_ SignalSource = (*CompanySource)(nil)
	_ SignalSource = (*URLSource)(nil)
	_ SignalSource = (*BlacklistSource)(nil)
	_ SignalSource = (*ClassifierSource)(nil)
)

// TextSource adapts the TextAnalyzer.
type TextSource struct{ analyzer *TextAnalyzer }

func NewTextSource(a *TextAnalyzer) *TextSource { return &TextSource{analyzer: a} }

func (s *TextSource) Category() valueobject.Category { return valueobject.CategoryText }

func (s *TextSource) Evaluate(_ context.Context, posting model.Posting) (model.SignalResult, error) {
	return s.analyzer.Analyze(posting.Text()), nil
}

// CompanySource adapts the CompanyVerifier. Only a failed verification
// reaches the combined flag list.
type CompanySource struct{ verifier *CompanyVerifier }

func NewCompanySource(v *CompanyVerifier) *CompanySource { return &CompanySource{verifier: v} }

func (s *CompanySource) Category() valueobject.Category { return valueobject.CategoryCompany }

func (s *CompanySource) Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error) {
	if !posting.HasCompany() {
		return model.SignalResult{}, ErrNotApplicable
	}
	v := s.verifier.Verify(ctx, posting.Company)

	result := model.NewSignalResult(valueobject.CategoryCompany)
	result.Details = v
	if v.Verified {
		result.Positive = append(result.Positive, "Verified company: "+posting.Company)
		return result, nil
	}
	result.Score = v.RiskScore
	if v.RiskLevel.Equal(valueobject.RiskLevelHigh) {
		result.Flags = append(result.Flags, model.Flag{
			Message:  "Company verification failed: " + posting.Company,
			Severity: valueobject.RiskLevelHigh,
		})
	}
	return result, nil
}

// URLSource adapts the URLAnalyzer.
type URLSource struct{ analyzer *URLAnalyzer }

func NewURLSource(a *URLAnalyzer) *URLSource { return &URLSource{analyzer: a} }

func (s *URLSource) Category() valueobject.Category { return valueobject.CategoryURL }

func (s *URLSource) Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error) {
	if !posting.HasURL() {
		return model.SignalResult{}, ErrNotApplicable
	}
	analysis, err := s.analyzer.Analyze(ctx, posting.URL)
	if err != nil {
		return model.SignalResult{}, err
	}

	result := model.NewSignalResult(valueobject.CategoryURL)
	result.Score = analysis.RiskScore
	result.Flags = append(result.Flags, analysis.Flags...)
	result.Details = analysis
	if analysis.Trusted {
		result.Positive = append(result.Positive, "Posted on trusted job platform")
	}
	return result, nil
}

// BlacklistSource adapts the BlacklistRegistry. The category is active only
// when something matched; a clean lookup is not evidence of legitimacy.
type BlacklistSource struct{ registry *BlacklistRegistry }

func NewBlacklistSource(r *BlacklistRegistry) *BlacklistSource { return &BlacklistSource{registry: r} }

func (s *BlacklistSource) Category() valueobject.Category { return valueobject.CategoryBlacklist }

func (s *BlacklistSource) Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error) {
	if !posting.HasURL() && !posting.HasCompany() {
		return model.SignalResult{}, ErrNotApplicable
	}
	check, err := s.registry.Check(ctx, posting.URL, posting.Company)
	if err != nil {
		return model.SignalResult{}, err
	}
	if !check.IsBlacklisted {
		result := model.InactiveSignal(valueobject.CategoryBlacklist, model.ReasonNoMatch)
		result.Details = check
		return result, nil
	}

	result := model.NewSignalResult(valueobject.CategoryBlacklist)
	result.Penalize(blacklistScore, check.Severity, check.Recommendation)
	result.Details = check
	return result, nil
}

// ClassifierSource adapts the ClassifierAdapter.
type ClassifierSource struct{ adapter *ClassifierAdapter }

func NewClassifierSource(a *ClassifierAdapter) *ClassifierSource {
	return &ClassifierSource{adapter: a}
}

func (s *ClassifierSource) Category() valueobject.Category { return valueobject.CategoryClassifier }

func (s *ClassifierSource) Evaluate(ctx context.Context, posting model.Posting) (model.SignalResult, error) {
	pred, err := s.adapter.PredictAndExplain(ctx, posting.Text())
	if err != nil {
		return model.SignalResult{}, err
	}

	result := model.NewSignalResult(valueobject.CategoryClassifier)
	result.Details = pred
	if pred.IsLegitimate() {
		result.Positive = append(result.Positive, "AI model predicts legitimate")
	} else {
		result.Score = classifierFraudScore
	}
	return result, nil
}
