package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var (
	_ port.FeedbackRepository = (*FeedbackRepository)(nil)
	_ port.ReportRepository   = (*ReportRepository)(nil)
)

// FeedbackRepository implements port.FeedbackRepository using PostgreSQL.
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository creates a new PostgreSQL-backed feedback repository.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Save stores one piece of feedback.
func (r *FeedbackRepository) Save(ctx context.Context, feedback model.Feedback) error {
	createdAt := feedback.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO feedback (assessment_id, title, correct, actual_result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, feedback.AssessmentID, feedback.Title, feedback.Correct, feedback.ActualResult, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	return nil
}

// Stats counts all feedback and the share marked correct.
func (r *FeedbackRepository) Stats(ctx context.Context) (model.FeedbackStats, error) {
	var stats model.FeedbackStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE correct)
		FROM feedback
	`).Scan(&stats.Total, &stats.Correct)
	if err != nil {
		return model.FeedbackStats{}, fmt.Errorf("failed to query feedback stats: %w", err)
	}
	return stats, nil
}

// ReportRepository implements port.ReportRepository using PostgreSQL.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Save stores one user report.
func (r *ReportRepository) Save(ctx context.Context, report model.UserReport) error {
	createdAt := report.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_reports (url, company, details, reporter, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, report.URL, report.Company, report.Details, report.Reporter, report.Status, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save user report: %w", err)
	}

	return nil
}

// Count returns the number of stored reports.
func (r *ReportRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count user reports: %w", err)
	}
	return n, nil
}
