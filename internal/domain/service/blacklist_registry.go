package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// ErrEmptyReport is returned when a report names no URL, domain or company.
var ErrEmptyReport = errors.New("a report needs a url, domain or company")

const (
	criticalReportThreshold = 5
	highReportThreshold     = 3
)

const (
	blacklistCritical = "CONFIRMED SCAM! This has been reported multiple times. DO NOT apply."
	blacklistHigh     = "Multiple scam reports exist for this job/company. Avoid!"
	blacklistMedium   = "This has been flagged as suspicious. Proceed with caution."
)

// BlacklistReport is one report to record.
type BlacklistReport struct {
	URL      string
	Domain   string
	Company  string
	Details  string
	Severity valueobject.RiskLevel
}

// BlacklistRegistry records reported URLs, domains and companies and checks
// postings against them. Concurrency safety of repeat reports is delegated
// to the repository's atomic upsert.
type BlacklistRegistry struct {
	repo     port.BlacklistRepository
	suffixes []string
	now      func() time.Time
}

// NewBlacklistRegistry creates a BlacklistRegistry.
func NewBlacklistRegistry(repo port.BlacklistRepository, reg *registry.Registry) *BlacklistRegistry {
	return &BlacklistRegistry{
		repo:     repo,
		suffixes: reg.CompanySuffixes(),
		now:      time.Now,
	}
}

// Add upserts each identity in the report. A URL also upserts its domain.
func (b *BlacklistRegistry) Add(ctx context.Context, r BlacklistReport) (model.BlacklistAddResult, error) {
	result := model.BlacklistAddResult{Added: make([]string, 0), Updated: make([]string, 0)}
	if strings.TrimSpace(r.URL) == "" && strings.TrimSpace(r.Domain) == "" && strings.TrimSpace(r.Company) == "" {
		return result, ErrEmptyReport
	}
	severity := r.Severity
	if severity.IsZero() {
		severity = valueobject.RiskLevelMedium
	}
	now := b.now().UTC()

	entries := make([]model.BlacklistEntry, 0, 4)
	domains := make([]string, 0, 2)
	if strings.TrimSpace(r.URL) != "" {
		key := NormalizeURL(r.URL)
		derived := ExtractDomain(r.URL)
		entries = append(entries, model.BlacklistEntry{Kind: model.EntryKindURL, Key: key, Domain: derived})
		if derived != "" {
			domains = append(domains, derived)
		}
	}
	if d := NormalizeHost(r.Domain); d != "" && !slices.Contains(domains, d) {
		domains = append(domains, d)
	}
	for _, d := range domains {
		entries = append(entries, model.BlacklistEntry{Kind: model.EntryKindDomain, Key: d})
	}
	if name := strings.TrimSpace(r.Company); name != "" {
		if key := normalizeCompany(name, b.suffixes); key != "" {
			entries = append(entries, model.BlacklistEntry{Kind: model.EntryKindCompany, Key: key, Name: name})
		}
	}

	for _, e := range entries {
		e.ReportCount = 1
		e.Severity = severity
		e.Details = r.Details
		e.FirstReported = now
		e.LastReported = now

		created, err := b.repo.Upsert(ctx, e)
		if err != nil {
			return result, fmt.Errorf("failed to blacklist %s %q: %w", e.Kind, e.Key, err)
		}
		label := entryLabel(e)
		if created {
			result.Added = append(result.Added, label)
		} else {
			result.Updated = append(result.Updated, label)
		}
	}
	return result, nil
}

// Check looks up a URL and/or company. URLs match exactly or by domain;
// companies match by normalised name or by raw substring.
func (b *BlacklistRegistry) Check(ctx context.Context, rawURL, company string) (model.BlacklistCheck, error) {
	result := model.BlacklistCheck{Matches: make([]model.BlacklistEntry, 0)}

	q := model.BlacklistQuery{}
	if strings.TrimSpace(rawURL) != "" {
		q.URL = NormalizeURL(rawURL)
		q.Domain = ExtractDomain(rawURL)
	}
	if name := strings.TrimSpace(company); name != "" {
		q.Company = normalizeCompany(name, b.suffixes)
		q.CompanyRaw = name
	}
	if q.IsEmpty() {
		return result, nil
	}

	matches, err := b.repo.Match(ctx, q)
	if err != nil {
		return result, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if len(matches) == 0 {
		return result, nil
	}

	result.IsBlacklisted = true
	result.Matches = matches
	var recorded valueobject.RiskLevel
	for _, m := range matches {
		result.TotalReports += max(m.ReportCount, 1)
		recorded = valueobject.MaxRiskLevel(recorded, m.Severity)
	}

	switch {
	case recorded.Equal(valueobject.RiskLevelCritical) || result.TotalReports >= criticalReportThreshold:
		result.Severity = valueobject.RiskLevelCritical
		result.Recommendation = blacklistCritical
	case recorded.Equal(valueobject.RiskLevelHigh) || result.TotalReports >= highReportThreshold:
		result.Severity = valueobject.RiskLevelHigh
		result.Recommendation = blacklistHigh
	default:
		result.Severity = valueobject.RiskLevelMedium
		result.Recommendation = blacklistMedium
	}
	return result, nil
}

// Stats summarises the registry.
func (b *BlacklistRegistry) Stats(ctx context.Context) (model.BlacklistStats, error) {
	stats, err := b.repo.Stats(ctx)
	if err != nil {
		return model.BlacklistStats{}, fmt.Errorf("failed to load blacklist stats: %w", err)
	}
	return stats, nil
}

// Recent returns up to limit entries, split evenly between URLs and
// companies and merged newest report first.
func (b *BlacklistRegistry) Recent(ctx context.Context, limit int) ([]model.BlacklistEntry, error) {
	half := limit / 2
	if half <= 0 {
		return []model.BlacklistEntry{}, nil
	}
	urls, err := b.repo.Recent(ctx, model.EntryKindURL, half)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent urls: %w", err)
	}
	companies, err := b.repo.Recent(ctx, model.EntryKindCompany, half)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent companies: %w", err)
	}
	entries := append(urls, companies...)
	slices.SortStableFunc(entries, func(x, y model.BlacklistEntry) int {
		return y.LastReported.Compare(x.LastReported)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func entryLabel(e model.BlacklistEntry) string {
	switch e.Kind {
	case model.EntryKindURL:
		return "URL: " + e.Key
	case model.EntryKindDomain:
		return "Domain: " + e.Key
	default:
		return "Company: " + e.Name
	}
}
