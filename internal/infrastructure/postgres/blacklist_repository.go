package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

var _ port.BlacklistRepository = (*BlacklistRepository)(nil)

const blacklistColumns = `kind, key, name, domain, report_count, severity, details, first_reported, last_reported`

// BlacklistRepository implements port.BlacklistRepository using PostgreSQL.
type BlacklistRepository struct {
	pool *pgxpool.Pool
}

// NewBlacklistRepository creates a new PostgreSQL-backed blacklist repository.
func NewBlacklistRepository(pool *pgxpool.Pool) *BlacklistRepository {
	return &BlacklistRepository{pool: pool}
}

// Upsert inserts the entry or merges a repeat report in one statement.
// xmax is zero only for rows created by this statement.
func (r *BlacklistRepository) Upsert(ctx context.Context, entry model.BlacklistEntry) (bool, error) {
	query := `
		INSERT INTO blacklist_entries (` + blacklistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (kind, key) DO UPDATE SET
			report_count = blacklist_entries.report_count + 1,
			severity = GREATEST(blacklist_entries.severity, EXCLUDED.severity),
			details = EXCLUDED.details,
			last_reported = EXCLUDED.last_reported
		RETURNING (xmax = 0)
	`

	var created bool
	err := r.pool.QueryRow(ctx, query,
		string(entry.Kind),
		entry.Key,
		entry.Name,
		entry.Domain,
		max(entry.ReportCount, 1),
		entry.Severity.Rank(),
		entry.Details,
		entry.FirstReported,
		entry.LastReported,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert blacklist entry: %w", err)
	}

	return created, nil
}

// Match returns URL entries equal to the URL or containing the domain, the
// domain entry itself, and company entries matching by key or raw name.
func (r *BlacklistRepository) Match(ctx context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error) {
	query := `
		SELECT ` + blacklistColumns + `
		FROM blacklist_entries
		WHERE (kind = 'url' AND (($1 <> '' AND key = $1) OR ($2 <> '' AND strpos(key, $2) > 0)))
		   OR (kind = 'domain' AND $2 <> '' AND key = $2)
		   OR (kind = 'company' AND (($3 <> '' AND key = $3) OR ($4 <> '' AND strpos(lower(name), lower($4)) > 0)))
		ORDER BY last_reported DESC
	`

	rows, err := r.pool.Query(ctx, query, q.URL, q.Domain, q.Company, q.CompanyRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	return r.collect(rows)
}

// Stats summarises the registry. Total reports counts URL reports only.
func (r *BlacklistRepository) Stats(ctx context.Context) (model.BlacklistStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'url'),
			COUNT(*) FILTER (WHERE kind = 'domain'),
			COUNT(*) FILTER (WHERE kind = 'company'),
			COALESCE(SUM(report_count) FILTER (WHERE kind = 'url'), 0),
			COUNT(*) FILTER (WHERE severity = $1)
		FROM blacklist_entries
	`

	var stats model.BlacklistStats
	err := r.pool.QueryRow(ctx, query, valueobject.RiskLevelCritical.Rank()).Scan(
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
	query := `
		SELECT ` + blacklistColumns + `
		FROM blacklist_entries
		WHERE kind = $1
		ORDER BY last_reported DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent blacklist entries: %w", err)
	}
	return r.collect(rows)
}

func (r *BlacklistRepository) collect(rows pgx.Rows) ([]model.BlacklistEntry, error) {
	defer rows.Close()

	entries := make([]model.BlacklistEntry, 0)
	for rows.Next() {
		var (
			e        model.BlacklistEntry
			kind     string
			severity int
		)
		if err := rows.Scan(
			&kind, &e.Key, &e.Name, &e.Domain, &e.ReportCount,
			&severity, &e.Details, &e.FirstReported, &e.LastReported,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		parsed, err := model.ParseEntryKind(kind)
		if err != nil {
			return nil, err
		}
		e.Kind = parsed
		e.Severity = valueobject.RiskLevelFromRank(severity)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blacklist entries: %w", err)
	}

	return entries, nil
}
