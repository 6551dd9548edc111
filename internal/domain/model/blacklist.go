package model

import (
	"fmt"
	"time"

	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// EntryKind is the identity variant of a blacklist entry.
type EntryKind string

const (
	EntryKindURL     EntryKind = "url"
	EntryKindDomain  EntryKind = "domain"
	EntryKindCompany EntryKind = "company"
)

// ParseEntryKind validates a kind string.
func ParseEntryKind(s string) (EntryKind, error) {
	switch k := EntryKind(s); k {
	case EntryKindURL, EntryKindDomain, EntryKindCompany:
		return k, nil
	default:
		return "", fmt.Errorf("invalid blacklist entry kind: %s", s)
	}
}

// BlacklistEntry is one reported URL, domain or company.
//
// Key is the normalised identity. For companies Name keeps the raw name as
// first reported; for URLs Domain holds the derived domain.
type BlacklistEntry struct {
	Kind          EntryKind             `json:"kind"`
	Key           string                `json:"key"`
	Name          string                `json:"name,omitempty"`
	Domain        string                `json:"domain,omitempty"`
	ReportCount   int                   `json:"report_count"`
	Severity      valueobject.RiskLevel `json:"severity"`
	Details       string                `json:"details,omitempty"`
	FirstReported time.Time             `json:"first_reported"`
	LastReported  time.Time             `json:"last_reported"`
}

// Merge applies a repeat report: count grows, severity never drops, details
// are replaced. Stores that cannot express this in one statement call it
// under their own lock.
func (e *BlacklistEntry) Merge(severity valueobject.RiskLevel, details string, at time.Time) {
	e.ReportCount++
	e.Severity = valueobject.MaxRiskLevel(e.Severity, severity)
	e.Details = details
	e.LastReported = at
}

// BlacklistQuery is the set of normalised keys to look up. Empty fields are skipped.
type BlacklistQuery struct {
	URL        string
	Domain     string
	Company    string
	CompanyRaw string
}

// IsEmpty reports whether there is nothing to look up.
func (q BlacklistQuery) IsEmpty() bool {
	return q.URL == "" && q.Domain == "" && q.Company == "" && q.CompanyRaw == ""
}

// BlacklistCheck is the outcome of a lookup.
type BlacklistCheck struct {
	IsBlacklisted  bool                  `json:"is_blacklisted"`
	Matches        []BlacklistEntry      `json:"matches"`
	Severity       valueobject.RiskLevel `json:"severity"`
	TotalReports   int                   `json:"total_reports"`
	Recommendation string                `json:"recommendation,omitempty"`
}

// BlacklistAddResult lists which identities were created and which were bumped.
type BlacklistAddResult struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
}

// BlacklistStats summarises the registry.
type BlacklistStats struct {
	TotalURLs      int `json:"total_urls"`
	TotalDomains   int `json:"total_domains"`
	TotalCompanies int `json:"total_companies"`
	TotalReports   int `json:"total_reports"`
	CriticalCount  int `json:"critical_count"`
}

// Report statuses.
const (
	ReportStatusPending      = "pending"
	ReportStatusAutoVerified = "auto-verified"
)

// UserReport is a scam report filed by a person or by the auto-detector.
type UserReport struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url,omitempty"`
	Company   string    `json:"company,omitempty"`
	Details   string    `json:"details,omitempty"`
	Reporter  string    `json:"reporter"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
