package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/pkg/events"
)

// BlacklistRepository defines the persistence port for blacklist entries.
type BlacklistRepository interface {
	// Upsert inserts the entry or, if its key exists, increments the report
	// count, raises severity to the greater of both and replaces details in a
	// single atomic step. It reports whether a new row was created.
	Upsert(ctx context.Context, entry model.BlacklistEntry) (created bool, err error)

	// Match returns every entry matching any non-empty field of the query.
	Match(ctx context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error)

	// Stats summarises the registry.
	Stats(ctx context.Context) (model.BlacklistStats, error)

	// Recent returns the most recently reported entries of one kind.
	Recent(ctx context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error)
}

// HistoryRepository defines the persistence port for assessment summaries.
type HistoryRepository interface {
	// Save persists a finished assessment summary.
	Save(ctx context.Context, record model.HistoryRecord) error

	// FindByID returns nil, nil when the record does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*model.HistoryRecord, error)

	// List returns the newest records first.
	List(ctx context.Context, limit int) ([]model.HistoryRecord, error)

	// Clear deletes every record and returns how many were removed.
	Clear(ctx context.Context) (int64, error)

	// DeleteBefore removes records older than the cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Summary aggregates verdict and level counts plus the daily trend since the given time.
	Summary(ctx context.Context, trendSince time.Time) (model.HistorySummary, error)
}

// FeedbackRepository defines the persistence port for user feedback.
type FeedbackRepository interface {
	Save(ctx context.Context, feedback model.Feedback) error
	Stats(ctx context.Context) (model.FeedbackStats, error)
}

// ReportRepository defines the persistence port for user scam reports.
type ReportRepository interface {
	Save(ctx context.Context, report model.UserReport) error
	Count(ctx context.Context) (int, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}
