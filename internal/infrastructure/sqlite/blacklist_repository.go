package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

var _ port.BlacklistRepository = (*BlacklistRepository)(nil)

const blacklistColumns = `kind, key, name, domain, report_count, severity, details, first_reported, last_reported`

// BlacklistRepository implements port.BlacklistRepository on SQLite.
type BlacklistRepository struct {
	db *sql.DB
}

// NewBlacklistRepository creates a new SQLite-backed blacklist repository.
func NewBlacklistRepository(db *sql.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Upsert inserts or merges the entry inside one transaction.
func (r *BlacklistRepository) Upsert(ctx context.Context, entry model.BlacklistEntry) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM blacklist_entries WHERE kind = ? AND key = ?`,
		string(entry.Kind), entry.Key,
	).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to look up blacklist entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blacklist_entries (`+blacklistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, key) DO UPDATE SET
			report_count = blacklist_entries.report_count + 1,
			severity = MAX(blacklist_entries.severity, excluded.severity),
			details = excluded.details,
			last_reported = excluded.last_reported
	`,
		string(entry.Kind),
		entry.Key,
		entry.Name,
		entry.Domain,
		max(entry.ReportCount, 1),
		entry.Severity.Rank(),
		entry.Details,
		toMillis(entry.FirstReported),
		toMillis(entry.LastReported),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert blacklist entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return exists == 0, nil
}

// Match returns URL entries equal to the URL or containing the domain, the
// domain entry itself, and company entries matching by key or raw name.
func (r *BlacklistRepository) Match(ctx context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error) {
	query := `
		SELECT ` + blacklistColumns + `
		FROM blacklist_entries
		WHERE (kind = 'url' AND ((? <> '' AND key = ?) OR (? <> '' AND instr(key, ?) > 0)))
		   OR (kind = 'domain' AND ? <> '' AND key = ?)
		   OR (kind = 'company' AND ((? <> '' AND key = ?) OR (? <> '' AND instr(lower(name), lower(?)) > 0)))
		ORDER BY last_reported DESC
	`

	rows, err := r.db.QueryContext(ctx, query,
		q.URL, q.URL, q.Domain, q.Domain,
		q.Domain, q.Domain,
		q.Company, q.Company, q.CompanyRaw, q.CompanyRaw,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	return collectEntries(rows)
}

// Stats summarises the registry. Total reports counts URL reports only.
func (r *BlacklistRepository) Stats(ctx context.Context) (model.BlacklistStats, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'url' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'domain' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'company' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'url' THEN report_count ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN severity = ? THEN 1 ELSE 0 END), 0)
		FROM blacklist_entries
	`

	var stats model.BlacklistStats
	err := r.db.QueryRowContext(ctx, query, valueobject.RiskLevelCritical.Rank()).Scan(
		&stats.TotalURLs,
		&stats.TotalDomains,
		&stats.TotalCompanies,
		&stats.TotalReports,
		&stats.CriticalCount,
	)
	if err != nil {
		return model.BlacklistStats{}, fmt.Errorf("failed to query blacklist stats: %w", err)
	}
	return stats, nil
}

// Recent returns the newest entries of one kind.
func (r *BlacklistRepository) Recent(ctx context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+blacklistColumns+`
		FROM blacklist_entries
		WHERE kind = ?
		ORDER BY last_reported DESC
		LIMIT ?
	`, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent blacklist entries: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]model.BlacklistEntry, error) {
	defer rows.Close()

	entries := make([]model.BlacklistEntry, 0)
	for rows.Next() {
		var (
			e             model.BlacklistEntry
			kind          string
			severity      int
			first, latest int64
		)
		if err := rows.Scan(
			&kind, &e.Key, &e.Name, &e.Domain, &e.ReportCount,
			&severity, &e.Details, &first, &latest,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		parsed, err := model.ParseEntryKind(kind)
		if err != nil {
			return nil, err
		}
		e.Kind = parsed
		e.Severity = valueobject.RiskLevelFromRank(severity)
		e.FirstReported = fromMillis(first)
		e.LastReported = fromMillis(latest)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blacklist entries: %w", err)
	}
	return entries, nil
}
