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
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/pkg/observability"
)

func newAdapter(c port.Classifier, s port.Summarizer) *service.ClassifierAdapter {
	return service.NewClassifierAdapter(c, s, time.Second, observability.NopLogger())
}

func TestClassifierAdapter_NotConfigured(t *testing.T) {
	_, err := newAdapter(nil, nil).PredictAndExplain(context.Background(), "anything")
	assert.ErrorIs(t, err, port.ErrNotConfigured)
}

func TestClassifierAdapter_ClassifierFailure(t *testing.T) {
	_, err := newAdapter(&mockClassifier{err: errors.New("model missing")}, nil).
		PredictAndExplain(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to classify text")
}

func TestClassifierAdapter_FraudulentKeepsSupportingTokens(t *testing.T) {
	classifier := &mockClassifier{
		label:       model.LabelFraudulent,
		probability: 0.87654,
		contributions: []model.TokenContribution{
			{Token: "telegram", Weight: -0.51},
			{Token: "team", Weight: 0.30},
			{Token: "fee", Weight: -0.22},
		},
	}

	pred, err := newAdapter(classifier, nil).PredictAndExplain(context.Background(), "pay the fee on telegram")
	require.NoError(t, err)

	assert.Equal(t, model.LabelFraudulent, pred.Label)
	assert.InDelta(t, 87.65, pred.Confidence, 1e-9)
	assert.Equal(t, []model.TokenContribution{
		{Token: "telegram", Weight: -0.51},
		{Token: "fee", Weight: -0.22},
	}, pred.Contributions)
	assert.Equal(t, "Flagged due to terms: 'telegram', 'fee'.", pred.Summary)
	assert.Equal(t, model.BrainModeLocal, pred.BrainMode)
}

func TestClassifierAdapter_CapsContributions(t *testing.T) {
	contributions := make([]model.TokenContribution, 0, 8)
	for _, tok := range []string{"benefits", "team", "insurance", "401k", "equity", "dental", "vision", "pto"} {
		contributions = append(contributions, model.TokenContribution{Token: tok, Weight: 0.1})
	}
	classifier := &mockClassifier{label: model.LabelLegitimate, probability: 0.9, contributions: contributions}

	pred, err := newAdapter(classifier, nil).PredictAndExplain(context.Background(), "text")
	require.NoError(t, err)

	assert.Len(t, pred.Contributions, 5)
	assert.Equal(t, "Verified by hallmarks: 'benefits', 'team', 'insurance', '401k', 'equity'.", pred.Summary)
}

func TestClassifierAdapter_NoContributions(t *testing.T) {
	pred, err := newAdapter(&mockClassifier{label: model.LabelLegitimate, probability: 0.5}, nil).
		PredictAndExplain(context.Background(), "text")
	require.NoError(t, err)

	assert.Empty(t, pred.Contributions)
	assert.Equal(t, "Analysis conducted via global pattern recognition.", pred.Summary)
}

func TestClassifierAdapter_Summarizer(t *testing.T) {
	classifier := &mockClassifier{label: model.LabelLegitimate, probability: 0.91}

	t.Run("summary replaces the template", func(t *testing.T) {
		pred, err := newAdapter(classifier, &mockSummarizer{summary: "  Reads like a real engineering role.\n"}).
			PredictAndExplain(context.Background(), "text")
		require.NoError(t, err)

		assert.Equal(t, "Reads like a real engineering role.", pred.Summary)
		assert.Equal(t, model.BrainModeGemini, pred.BrainMode)
	})

	t.Run("summarizer failure falls back to the template", func(t *testing.T) {
		pred, err := newAdapter(classifier, &mockSummarizer{err: errors.New("quota exceeded")}).
			PredictAndExplain(context.Background(), "text")
		require.NoError(t, err)

		assert.Equal(t, "Analysis conducted via global pattern recognition.", pred.Summary)
		assert.Equal(t, model.BrainModeLocal, pred.BrainMode)
	})

	t.Run("blank summary falls back to the template", func(t *testing.T) {
		pred, err := newAdapter(classifier, &mockSummarizer{summary: "   "}).
			PredictAndExplain(context.Background(), "text")
		require.NoError(t, err)

		assert.Equal(t, model.BrainModeLocal, pred.BrainMode)
	})
}
