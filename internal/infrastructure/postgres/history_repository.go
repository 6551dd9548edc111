package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	pkgpostgres "github.com/jobguard/jobguard/pkg/postgres"
)

var _ port.HistoryRepository = (*HistoryRepository)(nil)

const historyColumns = `id, source, title, company, url, verdict, confidence, risk_score, risk_level, flags, created_at`

// HistoryRepository implements port.HistoryRepository using PostgreSQL.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new PostgreSQL-backed history repository.
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Save persists an assessment summary. Saving the same ID twice is a no-op.
func (r *HistoryRepository) Save(ctx context.Context, record model.HistoryRecord) error {
	flags := record.Flags
	if flags == nil {
		flags = []string{}
	}

	query := `
		INSERT INTO assessment_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Source,
		record.Title,
		record.Company,
		record.URL,
		record.Verdict,
		record.Confidence,
		record.RiskScore,
		record.RiskLevel,
		flags,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save history record: %w", err)
	}

	return nil
}

// FindByID retrieves a record by ID.
func (r *HistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM assessment_history WHERE id = $1`

	record, err := scanHistory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan history record: %w", err)
	}

	return &record, nil
}

// List returns the newest records first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	query := `
		SELECT ` + historyColumns + `
		FROM assessment_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := make([]model.HistoryRecord, 0)
	for rows.Next() {
		record, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return records, nil
}

// Clear deletes every record.
func (r *HistoryRepository) Clear(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assessment_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteBefore removes records created before the cutoff.
func (r *HistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assessment_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Summary aggregates verdicts and levels over all records and builds the
// daily fake/real trend from trendSince onwards.
// Both queries share one repeatable-read snapshot so the totals and the trend agree.
func (r *HistoryRepository) Summary(ctx context.Context, trendSince time.Time) (model.HistorySummary, error) {
	var summary model.HistorySummary
	err := pkgpostgres.WithTransaction(ctx, r.pool,
		pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly},
		func(tx pgx.Tx) error {
			var err error
			summary, err = summarize(ctx, tx, trendSince)
			return err
		})
	if err != nil {
		return model.NewHistorySummary(), err
	}
	return summary, nil
}

func summarize(ctx context.Context, q pkgpostgres.Querier, trendSince time.Time) (model.HistorySummary, error) {
	summary := model.NewHistorySummary()

	rows, err := q.Query(ctx, `
		SELECT verdict, risk_level, COUNT(*)
		FROM assessment_history
		GROUP BY verdict, risk_level
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to query history summary: %w", err)
	}
	for rows.Next() {
		var (
			verdict, level string
			n              int
		)
		if err := rows.Scan(&verdict, &level, &n); err != nil {
			rows.Close()
			return summary, fmt.Errorf("failed to scan history summary: %w", err)
		}
		summary.Total += n
		summary.ByVerdict[verdict] += n
		summary.ByRiskLevel[level] += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("failed to iterate history summary: %w", err)
	}

	trendRows, err := q.Query(ctx, `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*) FILTER (WHERE verdict IN ('fake', 'critical_risk', 'blacklisted')),
			COUNT(*) FILTER (WHERE verdict = 'real')
		FROM assessment_history
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, trendSince)
	if err != nil {
		return summary, fmt.Errorf("failed to query history trend: %w", err)
	}
	defer trendRows.Close()

	for trendRows.Next() {
		var p model.TrendPoint
		if err := trendRows.Scan(&p.Date, &p.Fake, &p.Real); err != nil {
			return summary, fmt.Errorf("failed to scan history trend: %w", err)
		}
		summary.Trend = append(summary.Trend, p)
	}
	if err := trendRows.Err(); err != nil {
		return summary, fmt.Errorf("failed to iterate history trend: %w", err)
	}

	return summary, nil
}

func scanHistory(row pgx.Row) (model.HistoryRecord, error) {
	var record model.HistoryRecord
	err := row.Scan(
		&record.ID,
		&record.Source,
		&record.Title,
		&record.Company,
		&record.URL,
		&record.Verdict,
		&record.Confidence,
		&record.RiskScore,
		&record.RiskLevel,
		&record.Flags,
		&record.CreatedAt,
	)
	if record.Flags == nil {
		record.Flags = []string{}
	}
	return record, err
}
