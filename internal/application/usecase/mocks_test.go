package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
	"github.com/jobguard/jobguard/pkg/events"
)

// --- Mock implementations ---

type mockHistoryRepository struct {
	mu               sync.Mutex
	saved            []model.HistoryRecord
	saveFunc         func(ctx context.Context, record model.HistoryRecord) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*model.HistoryRecord, error)
	listFunc         func(ctx context.Context, limit int) ([]model.HistoryRecord, error)
	clearFunc        func(ctx context.Context) (int64, error)
	deleteBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
	summaryFunc      func(ctx context.Context, since time.Time) (model.HistorySummary, error)
	summaryCalls     int
}

var _ port.HistoryRepository = (*mockHistoryRepository)(nil)

func (m *mockHistoryRepository) Save(ctx context.Context, record model.HistoryRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.HistoryRecord, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockHistoryRepository) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockHistoryRepository) Clear(ctx context.Context) (int64, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return 0, nil
}

func (m *mockHistoryRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteBeforeFunc != nil {
		return m.deleteBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

func (m *mockHistoryRepository) Summary(ctx context.Context, since time.Time) (model.HistorySummary, error) {
	m.mu.Lock()
	m.summaryCalls++
	m.mu.Unlock()
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, since)
	}
	return model.HistorySummary{}, nil
}

type mockFeedbackRepository struct {
	saved     []model.Feedback
	saveFunc  func(ctx context.Context, fb model.Feedback) error
	statsFunc func(ctx context.Context) (model.FeedbackStats, error)
}

var _ port.FeedbackRepository = (*mockFeedbackRepository)(nil)

func (m *mockFeedbackRepository) Save(ctx context.Context, fb model.Feedback) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, fb)
	}
	m.saved = append(m.saved, fb)
	return nil
}

func (m *mockFeedbackRepository) Stats(ctx context.Context) (model.FeedbackStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return model.FeedbackStats{}, nil
}

type mockReportRepository struct {
	mu        sync.Mutex
	saved     []model.UserReport
	saveFunc  func(ctx context.Context, r model.UserReport) error
	countFunc func(ctx context.Context) (int, error)
}

var _ port.ReportRepository = (*mockReportRepository)(nil)

func (m *mockReportRepository) Save(ctx context.Context, r model.UserReport) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, r)
	return nil
}

func (m *mockReportRepository) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return len(m.saved), nil
}

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

var _ port.EventPublisher = (*mockEventPublisher)(nil)

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockBlacklistRepository struct {
	upserted   []model.BlacklistEntry
	upsertFunc func(ctx context.Context, e model.BlacklistEntry) (bool, error)
	matchFunc  func(ctx context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error)
	statsFunc  func(ctx context.Context) (model.BlacklistStats, error)
	recentFunc func(ctx context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error)
}

var _ port.BlacklistRepository = (*mockBlacklistRepository)(nil)

func (m *mockBlacklistRepository) Upsert(ctx context.Context, e model.BlacklistEntry) (bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, e)
	}
	m.upserted = append(m.upserted, e)
	return true, nil
}

func (m *mockBlacklistRepository) Match(ctx context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error) {
	if m.matchFunc != nil {
		return m.matchFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockBlacklistRepository) Stats(ctx context.Context) (model.BlacklistStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return model.BlacklistStats{}, nil
}

func (m *mockBlacklistRepository) Recent(ctx context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, kind, limit)
	}
	return nil, nil
}

type mockScraper struct {
	scrapeFunc func(ctx context.Context, url string) (model.Posting, error)
}

var _ port.Scraper = (*mockScraper)(nil)

func (m *mockScraper) Scrape(ctx context.Context, url string) (model.Posting, error) {
	return m.scrapeFunc(ctx, url)
}

// stubSource returns a canned result for one category.
type stubSource struct {
	category valueobject.Category
	result   model.SignalResult
	err      error
	block    bool
}

func (s *stubSource) Category() valueobject.Category { return s.category }

func (s *stubSource) Evaluate(ctx context.Context, _ model.Posting) (model.SignalResult, error) {
	if s.block {
		<-ctx.Done()
		return model.SignalResult{}, ctx.Err()
	}
	return s.result, s.err
}
