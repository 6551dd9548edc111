package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var _ port.HistoryRepository = (*HistoryRepository)(nil)

const historyColumns = `id, source, title, company, url, verdict, confidence, risk_score, risk_level, flags, created_at`

// HistoryRepository implements port.HistoryRepository on SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save persists an assessment summary. Saving the same ID twice is a no-op.
func (r *HistoryRepository) Save(ctx context.Context, record model.HistoryRecord) error {
	flags := record.Flags
	if flags == nil {
		flags = []string{}
	}
	encoded, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assessment_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`,
		record.ID.String(),
		record.Source,
		record.Title,
		record.Company,
		record.URL,
		record.Verdict,
		record.Confidence,
		record.RiskScore,
		record.RiskLevel,
		string(encoded),
		toMillis(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save history record: %w", err)
	}
	return nil
}

// FindByID retrieves a record by ID.
func (r *HistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HistoryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM assessment_history WHERE id = ?`, id.String())

	record, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan history record: %w", err)
	}
	return &record, nil
}

// List returns the newest records first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM assessment_history
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessment_history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBefore removes records created before the cutoff.
func (r *HistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assessment_history WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}

// Summary aggregates verdicts and levels over all records and builds the
// daily fake/real trend from trendSince onwards.
func (r *HistoryRepository) Summary(ctx context.Context, trendSince time.Time) (model.HistorySummary, error) {
	summary := model.NewHistorySummary()

	if err := r.countByVerdict(ctx, &summary); err != nil {
		return summary, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			strftime('%Y-%m-%d', created_at / 1000, 'unixepoch') AS day,
			SUM(CASE WHEN verdict IN ('fake', 'critical_risk', 'blacklisted') THEN 1 ELSE 0 END),
			SUM(CASE WHEN verdict = 'real' THEN 1 ELSE 0 END)
		FROM assessment_history
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day
	`, trendSince.UnixMilli())
	if err != nil {
		return summary, fmt.Errorf("failed to query history trend: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.TrendPoint
		if err := rows.Scan(&p.Date, &p.Fake, &p.Real); err != nil {
			return summary, fmt.Errorf("failed to scan history trend: %w", err)
		}
		summary.Trend = append(summary.Trend, p)
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("failed to iterate history trend: %w", err)
	}
	return summary, nil
}

func (r *HistoryRepository) countByVerdict(ctx context.Context, summary *model.HistorySummary) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT verdict, risk_level, COUNT(*)
		FROM assessment_history
		GROUP BY verdict, risk_level
	`)
	if err != nil {
		return fmt.Errorf("failed to query history summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			verdict, level string
			n              int
		)
		if err := rows.Scan(&verdict, &level, &n); err != nil {
			return fmt.Errorf("failed to scan history summary: %w", err)
		}
		summary.Total += n
		summary.ByVerdict[verdict] += n
		summary.ByRiskLevel[level] += n
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate history summary: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(row scanner) (model.HistoryRecord, error) {
	var (
		record    model.HistoryRecord
		id, flags string
		createdAt int64
	)
	if err := row.Scan(
		&id,
		&record.Source,
		&record.Title,
		&record.Company,
		&record.URL,
		&record.Verdict,
		&record.Confidence,
		&record.RiskScore,
		&record.RiskLevel,
		&flags,
		&createdAt,
	); err != nil {
		return record, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return record, fmt.Errorf("failed to parse history id: %w", err)
	}
	record.ID = parsed
	record.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(flags), &record.Flags); err != nil {
		return record, fmt.Errorf("failed to decode flags: %w", err)
	}
	if record.Flags == nil {
		record.Flags = []string{}
	}
	return record, nil
}
