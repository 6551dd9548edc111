package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

var (
	_ port.HistoryRepository  = (*HistoryStore)(nil)
	_ port.FeedbackRepository = (*FeedbackStore)(nil)
	_ port.ReportRepository   = (*ReportStore)(nil)
)

// HistoryStore keeps assessment summaries in insertion order.
type HistoryStore struct {
	mu      sync.RWMutex
	records []model.HistoryRecord
	byID    map[uuid.UUID]int
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{byID: make(map[uuid.UUID]int)}
}

func (s *HistoryStore) Save(_ context.Context, record model.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[record.ID]; ok {
		return nil
	}
	record.Flags = slices.Clone(record.Flags)
	if record.Flags == nil {
		record.Flags = []string{}
	}
	s.byID[record.ID] = len(s.records)
	s.records = append(s.records, record)
	return nil
}

func (s *HistoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	record := s.records[i]
	return &record, nil
}

func (s *HistoryStore) List(_ context.Context, limit int) ([]model.HistoryRecord, error) {
	s.mu.RLock()
	out := slices.Clone(s.records)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []model.HistoryRecord{}
	}
	return out, nil
}

func (s *HistoryStore) Clear(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.records))
	s.records = nil
	s.byID = make(map[uuid.UUID]int)
	return n, nil
}

func (s *HistoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if !r.CreatedAt.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	removed := int64(len(s.records) - len(kept))
	s.records = kept
	s.byID = make(map[uuid.UUID]int, len(kept))
	for i, r := range kept {
		s.byID[r.ID] = i
	}
	return removed, nil
}

func (s *HistoryStore) Summary(_ context.Context, trendSince time.Time) (model.HistorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.SummarizeHistory(s.records, trendSince), nil
}

// FeedbackStore keeps feedback in memory.
type FeedbackStore struct {
	mu       sync.Mutex
	feedback []model.Feedback
}

// NewFeedbackStore creates an empty feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{}
}

func (s *FeedbackStore) Save(_ context.Context, feedback model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feedback.ID = int64(len(s.feedback) + 1)
	s.feedback = append(s.feedback, feedback)
	return nil
}

func (s *FeedbackStore) Stats(_ context.Context) (model.FeedbackStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.FeedbackStats{Total: len(s.feedback)}
	for _, f := range s.feedback {
		if f.Correct {
			stats.Correct++
		}
	}
	return stats, nil
}

// ReportStore keeps user reports in memory.
type ReportStore struct {
	mu      sync.Mutex
	reports []model.UserReport
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (s *ReportStore) Save(_ context.Context, report model.UserReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report.ID = int64(len(s.reports) + 1)
	s.reports = append(s.reports, report)
	return nil
}

func (s *ReportStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports), nil
}

// Reports returns a copy of every stored report.
func (s *ReportStore) Reports() []model.UserReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reports)
}
