package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
)

// ReportScamRequest is the input DTO for the ReportScam use case.
type ReportScamRequest struct {
	URL      string `json:"url,omitempty"`
	Company  string `json:"company,omitempty"`
	Details  string `json:"details,omitempty"`
	Reporter string `json:"reporter,omitempty"`
	// Severity is honoured only when Privileged is set by the transport.
	Severity   string `json:"severity,omitempty"`
	Privileged bool   `json:"-"`
}

// ReportScamResponse is the output DTO for a filed report.
type ReportScamResponse struct {
	Message         string                   `json:"message"`
	BlacklistResult model.BlacklistAddResult `json:"blacklist_result"`
	ReportID        uuid.UUID                `json:"report_id"`
}

// CheckBlacklistRequest is the input DTO for a blacklist lookup.
type CheckBlacklistRequest struct {
	URL     string `json:"url,omitempty"`
	Company string `json:"company,omitempty"`
}

// BlacklistEntryResponse is one blacklist row as returned to callers.
type BlacklistEntryResponse struct {
	FirstReported time.Time `json:"first_reported"`
	LastReported  time.Time `json:"last_reported"`
	Kind          string    `json:"type"`
	Value         string    `json:"value"`
	Domain        string    `json:"domain,omitempty"`
	Severity      string    `json:"severity"`
	Details       string    `json:"details,omitempty"`
	ReportCount   int       `json:"report_count"`
}

// CheckBlacklistResponse is the output DTO for a blacklist lookup.
type CheckBlacklistResponse struct {
	Matches        []BlacklistEntryResponse `json:"matches"`
	Severity       string                   `json:"severity,omitempty"`
	Recommendation string                   `json:"recommendation,omitempty"`
	TotalReports   int                      `json:"total_reports"`
	IsBlacklisted  bool                     `json:"is_blacklisted"`
}

// BlacklistOverviewRequest is the input DTO for stats plus recent entries.
type BlacklistOverviewRequest struct {
	Limit int `json:"limit"`
}

// BlacklistOverviewResponse is the output DTO for the blacklist dashboard.
type BlacklistOverviewResponse struct {
	Recent []BlacklistEntryResponse `json:"recent"`
	Stats  model.BlacklistStats     `json:"stats"`
}

// FromBlacklistEntry maps a blacklist entry to the response DTO.
func FromBlacklistEntry(e model.BlacklistEntry) BlacklistEntryResponse {
	value := e.Key
	if e.Kind == model.EntryKindCompany && e.Name != "" {
		value = e.Name
	}
	return BlacklistEntryResponse{
		Kind:          string(e.Kind),
		Value:         value,
		Domain:        e.Domain,
		ReportCount:   e.ReportCount,
		Severity:      e.Severity.String(),
		Details:       e.Details,
		FirstReported: e.FirstReported,
		LastReported:  e.LastReported,
	}
}

// FromBlacklistEntries maps a slice of entries, never returning nil.
func FromBlacklistEntries(entries []model.BlacklistEntry) []BlacklistEntryResponse {
	out := make([]BlacklistEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromBlacklistEntry(e))
	}
	return out
}

// FromBlacklistCheck maps a check result to the response DTO.
func FromBlacklistCheck(c model.BlacklistCheck) CheckBlacklistResponse {
	return CheckBlacklistResponse{
		IsBlacklisted:  c.IsBlacklisted,
		Matches:        FromBlacklistEntries(c.Matches),
		Severity:       c.Severity.String(),
		TotalReports:   c.TotalReports,
		Recommendation: c.Recommendation,
	}
}
