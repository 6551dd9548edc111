package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

const topContributions = 5

// ClassifierAdapter wraps the text classifier and its explainers into a
// single prediction with a prose summary.
type ClassifierAdapter struct {
	classifier port.Classifier
	summarizer port.Summarizer
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClassifierAdapter creates a ClassifierAdapter. summarizer may be a
// "not configured" adapter, in which case summaries are templated.
func NewClassifierAdapter(
	classifier port.Classifier,
	summarizer port.Summarizer,
	timeout time.Duration,
	logger *slog.Logger,
) *ClassifierAdapter {
	return &ClassifierAdapter{
		classifier: classifier,
		summarizer: summarizer,
		timeout:    timeout,
		logger:     logger,
	}
}

// PredictAndExplain fails only when the classifier itself cannot answer.
func (a *ClassifierAdapter) PredictAndExplain(ctx context.Context, text string) (model.Prediction, error) {
	if a.classifier == nil {
		return model.Prediction{}, port.ErrNotConfigured
	}
	label, probability, err := a.classifier.PredictLabel(ctx, text)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("failed to classify text: %w", err)
	}

	pred := model.Prediction{
		Label:         label,
		Confidence:    math.Round(probability*10000) / 100,
		Contributions: make([]model.TokenContribution, 0, topContributions),
		BrainMode:     model.BrainModeLocal,
	}

	contributions, err := a.classifier.TokenContributions(ctx, text, 0)
	if err != nil {
		a.logger.Warn("token contributions unavailable", "error", err)
	}
	for _, c := range contributions {
		if len(pred.Contributions) == topContributions {
			break
		}
		if (label == model.LabelLegitimate && c.Weight > 0) || (label == model.LabelFraudulent && c.Weight < 0) {
			pred.Contributions = append(pred.Contributions, c)
		}
	}

	pred.Summary = templateSummary(label, pred.Contributions)
	if a.summarizer != nil {
		if summary := a.summarize(ctx, text, pred); summary != "" {
			pred.Summary = summary
			pred.BrainMode = model.BrainModeGemini
		}
	}
	return pred, nil
}

func (a *ClassifierAdapter) summarize(ctx context.Context, text string, pred model.Prediction) string {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	summary, err := a.summarizer.Summarize(ctx, port.SummaryRequest{
		Text:          text,
		Label:         pred.Label,
		Confidence:    pred.Confidence,
		Contributions: pred.Contributions,
	})
	if err != nil {
		if !errors.Is(err, port.ErrNotConfigured) {
			a.logger.Warn("summarizer failed, using template", "error", err)
		}
		return ""
	}
	return strings.TrimSpace(summary)
}

func templateSummary(label int, contributions []model.TokenContribution) string {
	if len(contributions) == 0 {
		return "Analysis conducted via global pattern recognition."
	}
	quoted := make([]string, 0, len(contributions))
	for _, c := range contributions {
		quoted = append(quoted, "'"+c.Token+"'")
	}
	joined := strings.Join(quoted, ", ")
	if label == model.LabelFraudulent {
		return "Flagged due to terms: " + joined + "."
	}
	return "Verified by hallmarks: " + joined + "."
}
