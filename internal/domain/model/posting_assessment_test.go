package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/domain/event"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

func criticalRisk() model.RiskAssessment {
	return model.RiskAssessment{
		OverallScore: 73,
		RiskLevel:    valueobject.RiskLevelCritical,
		Breakdown: map[string]model.CategoryBreakdown{
			"text_analysis":        {SubScore: 100, Active: true, Status: model.StatusActive},
			"company_verification": {SubScore: 40, Active: true, Status: model.StatusActive},
			"ai_prediction":        {Status: model.ReasonUnavailable},
		},
		Flags: []string{"Moves communication to chat apps: telegram"},
	}
}

func TestNewPostingAssessment_Critical(t *testing.T) {
	posting := model.Posting{Title: "Earn $5000/week", Company: "Quick Cash Inc"}
	pred := &model.Prediction{Label: model.LabelFraudulent, Confidence: 91.2}

	a := model.NewPostingAssessment(model.SourceText, posting, criticalRisk(), model.AssessmentParts{Prediction: pred})

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Equal(t, valueobject.VerdictCriticalRisk, a.Verdict())
	assert.InDelta(t, 91.2, a.Confidence(), 1e-9)
	assert.True(t, a.ShouldAutoReport(85))
	assert.False(t, a.ShouldAutoReport(95))

	evts := a.DomainEvents()
	require.Len(t, evts, 2)
	completed, ok := evts[0].(event.AssessmentCompleted)
	require.True(t, ok)
	assert.Equal(t, event.EventTypeAssessmentCompleted, completed.EventType())
	assert.Equal(t, a.ID(), completed.AggregateID())
	assert.Equal(t, "critical_risk", completed.Verdict)
	assert.Equal(t, []string{"text_analysis", "company_verification"}, completed.ActiveCategories)

	highRisk, ok := evts[1].(event.HighRiskDetected)
	require.True(t, ok)
	assert.Equal(t, 73, highRisk.OverallScore)
	assert.Equal(t, []string{"Moves communication to chat apps: telegram"}, highRisk.Flags)

	assert.Empty(t, a.DomainEvents(), "events are drained")
}

func TestNewPostingAssessment_VerdictFromClassifier(t *testing.T) {
	risk := model.RiskAssessment{OverallScore: 12, RiskLevel: valueobject.RiskLevelLow}

	legit := model.NewPostingAssessment(model.SourceURL, model.Posting{Title: "SRE"}, risk,
		model.AssessmentParts{Prediction: &model.Prediction{Label: model.LabelLegitimate, Confidence: 97}})
	assert.Equal(t, valueobject.VerdictReal, legit.Verdict())
	assert.False(t, legit.ShouldAutoReport(85), "only critical assessments are auto-reported")
	assert.Len(t, legit.DomainEvents(), 1)

	unknown := model.NewPostingAssessment(model.SourceText, model.Posting{Title: "SRE"}, risk, model.AssessmentParts{})
	assert.Equal(t, valueobject.VerdictUnknown, unknown.Verdict())
	assert.Zero(t, unknown.Confidence())
}

func TestNewPostingAssessment_BlacklistWins(t *testing.T) {
	risk := criticalRisk()
	risk.OverallScore = 85
	risk.IsBlacklisted = true

	a := model.NewPostingAssessment(model.SourceText, model.Posting{Company: "Quick Cash Inc"}, risk,
		model.AssessmentParts{Prediction: &model.Prediction{Label: model.LabelLegitimate, Confidence: 99}})

	assert.Equal(t, valueobject.VerdictBlacklisted, a.Verdict())
}

func TestPostingAssessment_HistoryRecord(t *testing.T) {
	posting := model.Posting{Title: "Earn $5000/week", Company: "Quick Cash Inc", URL: "quick-cash.xyz"}
	a := model.NewPostingAssessment(model.SourceURL, posting, criticalRisk(),
		model.AssessmentParts{Prediction: &model.Prediction{Label: model.LabelFraudulent, Confidence: 88}})

	rec := a.HistoryRecord()

	assert.Equal(t, a.ID(), rec.ID)
	assert.Equal(t, model.SourceURL, rec.Source)
	assert.Equal(t, "quick-cash.xyz", rec.URL)
	assert.Equal(t, "critical_risk", rec.Verdict)
	assert.Equal(t, "critical", rec.RiskLevel)
	assert.Equal(t, 73, rec.RiskScore)
	assert.Equal(t, a.AssessedAt(), rec.CreatedAt)
}
