// Package memory provides in-process repositories for tests, demos and the CLI.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

var _ port.BlacklistRepository = (*BlacklistStore)(nil)

const defaultShards = 16

type shard struct {
	mu      sync.RWMutex
	entries map[string]*model.BlacklistEntry
}

// BlacklistStore keeps entries in murmur3-hashed shards so that reports for
// different identities do not contend on one lock.
type BlacklistStore struct {
	shards []*shard
}

// NewBlacklistStore creates a store with n shards; n <= 0 uses the default.
func NewBlacklistStore(n int) *BlacklistStore {
	if n <= 0 {
		n = defaultShards
	}
	s := &BlacklistStore{shards: make([]*shard, n)}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*model.BlacklistEntry)}
	}
	return s
}

func storeKey(kind model.EntryKind, key string) string {
	return string(kind) + "\x00" + key
}

func (s *BlacklistStore) shardFor(id string) *shard {
	return s.shards[murmur3.Sum32([]byte(id))%uint32(len(s.shards))]
}

// Upsert inserts the entry or merges a repeat report under the shard lock.
func (s *BlacklistStore) Upsert(_ context.Context, entry model.BlacklistEntry) (bool, error) {
	id := storeKey(entry.Kind, entry.Key)
	sh := s.shardFor(id)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if existing, ok := sh.entries[id]; ok {
		existing.Merge(entry.Severity, entry.Details, entry.LastReported)
		return false, nil
	}
	entry.ReportCount = max(entry.ReportCount, 1)
	sh.entries[id] = &entry
	return true, nil
}

// Match scans every shard. Exact lookups would be cheaper but substring
// matches on URLs and company names need the full scan anyway.
func (s *BlacklistStore) Match(_ context.Context, q model.BlacklistQuery) ([]model.BlacklistEntry, error) {
	raw := strings.ToLower(q.CompanyRaw)
	out := s.collect(func(e *model.BlacklistEntry) bool {
		switch e.Kind {
		case model.EntryKindURL:
			return (q.URL != "" && e.Key == q.URL) || (q.Domain != "" && strings.Contains(e.Key, q.Domain))
		case model.EntryKindDomain:
			return q.Domain != "" && e.Key == q.Domain
		case model.EntryKindCompany:
			return (q.Company != "" && e.Key == q.Company) || (raw != "" && strings.Contains(strings.ToLower(e.Name), raw))
		default:
			return false
		}
	})
	sortNewestFirst(out)
	return out, nil
}

// Stats summarises the registry. Total reports counts URL reports only.
func (s *BlacklistStore) Stats(_ context.Context) (model.BlacklistStats, error) {
	var stats model.BlacklistStats
	for _, e := range s.collect(func(*model.BlacklistEntry) bool { return true }) {
		switch e.Kind {
		case model.EntryKindURL:
			stats.TotalURLs++
			stats.TotalReports += e.ReportCount
		case model.EntryKindDomain:
			stats.TotalDomains++
		case model.EntryKindCompany:
			stats.TotalCompanies++
		}
		if e.Severity.Equal(valueobject.RiskLevelCritical) {
			stats.CriticalCount++
		}
	}
	return stats, nil
}

// Recent returns the newest entries of one kind.
func (s *BlacklistStore) Recent(_ context.Context, kind model.EntryKind, limit int) ([]model.BlacklistEntry, error) {
	out := s.collect(func(e *model.BlacklistEntry) bool { return e.Kind == kind })
	sortNewestFirst(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *BlacklistStore) collect(keep func(*model.BlacklistEntry) bool) []model.BlacklistEntry {
	out := make([]model.BlacklistEntry, 0)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, e := range sh.entries {
			if keep(e) {
				out = append(out, *e)
			}
		}
		sh.mu.RUnlock()
	}
	return out
}

func sortNewestFirst(entries []model.BlacklistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].LastReported.Equal(entries[j].LastReported) {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].LastReported.After(entries[j].LastReported)
	})
}
