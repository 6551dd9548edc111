package service_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

// --- Mock implementations ---

type mockResolver struct {
	hosts map[string]error
	err   error
}

func (m *mockResolver) Resolve(_ context.Context, host string) ([]string, error) {
	if err, ok := m.hosts[host]; ok {
		if err != nil {
			return nil, err
		}
		return []string{"192.0.2.10"}, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, port.ErrDomainNotFound
}

type mockDomainRegistry struct {
	registrations map[string]*model.DomainRegistration
	err           error
	calls         []string
}

func (m *mockDomainRegistry) Registration(_ context.Context, domain string) (*model.DomainRegistration, error) {
	m.calls = append(m.calls, domain)
	if m.err != nil {
		return nil, m.err
	}
	return m.registrations[domain], nil
}

type mockEnricher struct {
	lookupFunc func(ctx context.Context, name string) (*model.CompanyProfile, error)
}

func (m *mockEnricher) LookupCompany(ctx context.Context, name string) (*model.CompanyProfile, error) {
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, name)
	}
	return nil, port.ErrNotConfigured
}

type mockSearcher struct {
	website string
	err     error
}

func (m *mockSearcher) SearchWebsite(_ context.Context, _ string) (string, error) {
	return m.website, m.err
}

type mockClassifier struct {
	label         int
	probability   float64
	contributions []model.TokenContribution
	err           error
}

func (m *mockClassifier) PredictLabel(_ context.Context, _ string) (int, float64, error) {
	return m.label, m.probability, m.err
}

func (m *mockClassifier) TokenContributions(_ context.Context, _ string, _ int) ([]model.TokenContribution, error) {
	return m.contributions, nil
}

type mockSummarizer struct {
	summary string
	err     error
}

func (m *mockSummarizer) Summarize(_ context.Context, _ port.SummaryRequest) (string, error) {
	return m.summary, m.err
}

// fakeBlacklistRepo mirrors the storage semantics of the real stores.
type fakeBlacklistRepo struct {
	mu       sync.Mutex
	entries  map[model.EntryKind]map[string]*model.BlacklistEntry
	matchErr error
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{entries: map[model.EntryKind]map[string]*model.BlacklistEntry{
		model.EntryKindURL:     {},
		model.EntryKindDomain:  {},
		model.EntryKindCompany: {},
	}}
}

func (f *fakeBlacklistRepo) Upsert(_ context.Context, e model.BlacklistEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.entries[e.Kind][e.Key]; ok {
		existing.Merge(e.Severity, e.Details, e.LastReported)
		return false, nil
	}
	f.entries[e.Kind][e.Key] = &e
	return true, nil
}

func (f *fakeBlacklistRepo) Match(_ context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.BlacklistEntry
	for key, e := range f.entries[model.EntryKindURL] {
		if (q.URL != "" && key == q.URL) || (q.Domain != "" && strings.Contains(key, q.Domain)) {
			out = append(out, *e)
		}
	}
	if e, ok := f.entries[model.EntryKindDomain][q.Domain]; ok && q.Domain != "" {
		out = append(out, *e)
	}
	for key, e := range f.entries[model.EntryKindCompany] {
		if (q.Company != "" && key == q.Company) ||
			(q.CompanyRaw != "" && strings.Contains(strings.ToLower(e.Name), strings.ToLower(q.CompanyRaw))) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeBlacklistRepo) Stats(_ context.Context) (model.BlacklistStats, error) {
	return model.BlacklistStats{}, nil
}

func (f *fakeBlacklistRepo) Recent(_ context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.BlacklistEntry, 0, len(f.entries[kind]))
	for _, e := range f.entries[kind] {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(x, y model.BlacklistEntry) int {
		return y.LastReported.Compare(x.LastReported)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBlacklistRepo) get(kind model.EntryKind, key string) *model.BlacklistEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[kind][key]
}

func daysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}
