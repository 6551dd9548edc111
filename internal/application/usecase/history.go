package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/port"
)

const maxHistoryLimit = 100

// GetAssessment is the use case for retrieving a stored assessment summary.
type GetAssessment struct {
	history port.HistoryRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(history port.HistoryRepository) *GetAssessment {
	return &GetAssessment{history: history}
}

// Execute retrieves an assessment summary by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.HistoryItem, error) {
	record, err := uc.history.FindByID(ctx, req.ID)
	if err != nil {
		return dto.HistoryItem{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if record == nil {
		return dto.HistoryItem{}, fmt.Errorf("%w: assessment %s", ErrNotFound, req.ID)
	}
	return dto.FromHistoryRecord(*record), nil
}

// ListAssessments is the use case for the history listing.
type ListAssessments struct {
	history port.HistoryRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(history port.HistoryRepository) *ListAssessments {
	return &ListAssessments{history: history}
}

// Execute returns the newest summaries first, at most 100.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	records, err := uc.history.List(ctx, limit)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}
	resp := dto.ListAssessmentsResponse{History: make([]dto.HistoryItem, 0, len(records))}
	for _, r := range records {
		resp.History = append(resp.History, dto.FromHistoryRecord(r))
	}
	return resp, nil
}

// ClearHistory is the use case for wiping assessment history.
type ClearHistory struct {
	history port.HistoryRepository
}

// NewClearHistory creates a new ClearHistory use case.
func NewClearHistory(history port.HistoryRepository) *ClearHistory {
	return &ClearHistory{history: history}
}

// Execute deletes every stored summary.
func (uc *ClearHistory) Execute(ctx context.Context) (dto.ClearHistoryResponse, error) {
	deleted, err := uc.history.Clear(ctx)
	if err != nil {
		return dto.ClearHistoryResponse{}, fmt.Errorf("failed to clear history: %w", err)
	}
	return dto.ClearHistoryResponse{
		Message: "All prediction history cleared successfully.",
		Deleted: deleted,
	}, nil
}

// PruneHistory is the use case for the history retention job.
type PruneHistory struct {
	history   port.HistoryRepository
	retention time.Duration
	now       func() time.Time
}

// NewPruneHistory creates a new PruneHistory use case.
func NewPruneHistory(history port.HistoryRepository, retention time.Duration) *PruneHistory {
	return &PruneHistory{history: history, retention: retention, now: time.Now}
}

// WithClock overrides the clock. Used in tests.
func (uc *PruneHistory) WithClock(now func() time.Time) *PruneHistory {
	uc.now = now
	return uc
}

// Execute deletes summaries older than the retention period.
func (uc *PruneHistory) Execute(ctx context.Context) (dto.PruneHistoryResponse, error) {
	if uc.retention <= 0 {
		return dto.PruneHistoryResponse{}, fmt.Errorf("%w: retention must be positive, got %s", ErrInvalidInput, uc.retention)
	}
	cutoff := uc.now().UTC().Add(-uc.retention)
	deleted, err := uc.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		return dto.PruneHistoryResponse{}, fmt.Errorf("failed to prune history: %w", err)
	}
	return dto.PruneHistoryResponse{Cutoff: cutoff, Deleted: deleted}, nil
}
