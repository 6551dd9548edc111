package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

// SubmitFeedback is the use case for recording whether a verdict was right.
type SubmitFeedback struct {
	feedback port.FeedbackRepository
	history  port.HistoryRepository
	logger   *slog.Logger
}

// NewSubmitFeedback creates a new SubmitFeedback use case.
func NewSubmitFeedback(feedback port.FeedbackRepository, history port.HistoryRepository, logger *slog.Logger) *SubmitFeedback {
	return &SubmitFeedback{feedback: feedback, history: history, logger: logger}
}

// Execute stores the feedback. When an assessment ID is given it must exist,
// and its title fills in a blank one.
func (uc *SubmitFeedback) Execute(ctx context.Context, req dto.SubmitFeedbackRequest) (dto.SubmitFeedbackResponse, error) {
	title := strings.TrimSpace(req.Title)
	if req.AssessmentID == nil && title == "" {
		return dto.SubmitFeedbackResponse{}, fmt.Errorf("%w: an assessment id or title is required", ErrInvalidInput)
	}

	if req.AssessmentID != nil {
		record, err := uc.history.FindByID(ctx, *req.AssessmentID)
		if err != nil {
			return dto.SubmitFeedbackResponse{}, fmt.Errorf("failed to find assessment: %w", err)
		}
		if record == nil {
			return dto.SubmitFeedbackResponse{}, fmt.Errorf("%w: assessment %s", ErrNotFound, *req.AssessmentID)
		}
		if title == "" {
			title = record.Title
		}
	}

	fb := model.Feedback{
		AssessmentID: req.AssessmentID,
		Title:        title,
		Correct:      req.Correct,
		ActualResult: strings.TrimSpace(req.ActualResult),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.feedback.Save(ctx, fb); err != nil {
		return dto.SubmitFeedbackResponse{}, fmt.Errorf("failed to save feedback: %w", err)
	}
	if !fb.Correct && fb.ActualResult != "" {
		uc.logger.Info("user correction recorded", "title", fb.Title, "actual_result", fb.ActualResult)
	}

	return dto.SubmitFeedbackResponse{Message: "Feedback received. Thank you for helping improve our AI!"}, nil
}
