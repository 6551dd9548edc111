package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var (
	_ port.FeedbackRepository = (*FeedbackRepository)(nil)
	_ port.ReportRepository   = (*ReportRepository)(nil)
)

// FeedbackRepository implements port.FeedbackRepository on SQLite.
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new SQLite-backed feedback repository.
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Save stores one piece of feedback.
func (r *FeedbackRepository) Save(ctx context.Context, feedback model.Feedback) error {
	var assessmentID sql.NullString
	if feedback.AssessmentID != nil {
		assessmentID = sql.NullString{String: feedback.AssessmentID.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (assessment_id, title, correct, actual_result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, assessmentID, feedback.Title, feedback.Correct, feedback.ActualResult, toMillis(feedback.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// Stats counts all feedback and the share marked correct.
func (r *FeedbackRepository) Stats(ctx context.Context) (model.FeedbackStats, error) {
	var stats model.FeedbackStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)
		FROM feedback
	`).Scan(&stats.Total, &stats.Correct)
	if err != nil {
		return model.FeedbackStats{}, fmt.Errorf("failed to query feedback stats: %w", err)
	}
	return stats, nil
}

// ReportRepository implements port.ReportRepository on SQLite.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new SQLite-backed report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save stores one user report.
func (r *ReportRepository) Save(ctx context.Context, report model.UserReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_reports (url, company, details, reporter, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.URL, report.Company, report.Details, report.Reporter, report.Status, toMillis(report.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save user report: %w", err)
	}
	return nil
}

// Count returns the number of stored reports.
func (r *ReportRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count user reports: %w", err)
	}
	return n, nil
}
