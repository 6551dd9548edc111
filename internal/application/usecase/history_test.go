package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/internal/domain/model"
)

func sampleRecord(id uuid.UUID) model.HistoryRecord {
	return model.HistoryRecord{
		ID:         id,
		Source:     model.SourceText,
		Title:      "Data Entry Clerk",
		Company:    "Quick Cash Inc",
		Verdict:    "critical_risk",
		Confidence: 91.5,
		RiskScore:  78,
		RiskLevel:  "critical",
		CreatedAt:  time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestGetAssessment_Execute(t *testing.T) {
	t.Run("returns the stored summary", func(t *testing.T) {
		id := uuid.New()
		repo := &mockHistoryRepository{findByIDFunc: func(_ context.Context, got uuid.UUID) (*model.HistoryRecord, error) {
			r := sampleRecord(got)
			return &r, nil
		}}

		item, err := usecase.NewGetAssessment(repo).Execute(context.Background(), dto.GetAssessmentRequest{ID: id})
		require.NoError(t, err)

		assert.Equal(t, id, item.ID)
		assert.Equal(t, "Critical Risk - Likely Fake", item.Result)
		assert.NotNil(t, item.Flags)
	})

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := usecase.NewGetAssessment(&mockHistoryRepository{}).
			Execute(context.Background(), dto.GetAssessmentRequest{ID: uuid.New()})
		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		repo := &mockHistoryRepository{findByIDFunc: func(context.Context, uuid.UUID) (*model.HistoryRecord, error) {
			return nil, errors.New("connection refused")
		}}

		_, err := usecase.NewGetAssessment(repo).Execute(context.Background(), dto.GetAssessmentRequest{ID: uuid.New()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to find assessment")
	})
}

func TestListAssessments_Execute(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{"default", 0, 100},
		{"negative", -5, 100},
		{"within range", 25, 25},
		{"capped", 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			repo := &mockHistoryRepository{listFunc: func(_ context.Context, limit int) ([]model.HistoryRecord, error) {
				gotLimit = limit
				return []model.HistoryRecord{sampleRecord(uuid.New())}, nil
			}}

			resp, err := usecase.NewListAssessments(repo).Execute(context.Background(), dto.ListAssessmentsRequest{Limit: tt.requested})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, gotLimit)
			assert.Len(t, resp.History, 1)
		})
	}
}

func TestClearHistory_Execute(t *testing.T) {
	repo := &mockHistoryRepository{clearFunc: func(context.Context) (int64, error) { return 12, nil }}

	resp, err := usecase.NewClearHistory(repo).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), resp.Deleted)
	assert.NotEmpty(t, resp.Message)
}

func TestPruneHistory_Execute(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("deletes records older than the retention", func(t *testing.T) {
		var gotCutoff time.Time
		repo := &mockHistoryRepository{deleteBeforeFunc: func(_ context.Context, cutoff time.Time) (int64, error) {
			gotCutoff = cutoff
			return 3, nil
		}}

		resp, err := usecase.NewPruneHistory(repo, 90*24*time.Hour).
			WithClock(func() time.Time { return now }).
			Execute(context.Background())
		require.NoError(t, err)

		expected := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, gotCutoff)
		assert.Equal(t, expected, resp.Cutoff)
		assert.Equal(t, int64(3), resp.Deleted)
	})

	t.Run("non-positive retention is rejected", func(t *testing.T) {
		_, err := usecase.NewPruneHistory(&mockHistoryRepository{}, 0).Execute(context.Background())
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})
}
