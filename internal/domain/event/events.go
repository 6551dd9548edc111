package event

import (
	"github.com/google/uuid"

	"github.com/jobguard/jobguard/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted when a posting assessment finishes.
	EventTypeAssessmentCompleted = "jobguard.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment lands in the critical bucket.
	EventTypeHighRiskDetected = "jobguard.high_risk.detected"

	// EventTypeScamReported is emitted when a URL or company is reported.
	EventTypeScamReported = "jobguard.scam.reported"

	// AggregateTypeAssessment names the posting assessment aggregate.
	AggregateTypeAssessment = "posting_assessment"

	// AggregateTypeReport names a scam report.
	AggregateTypeReport = "scam_report"
)

// AssessmentCompleted is published for every finished assessment.
type AssessmentCompleted struct {
	events.BaseEvent
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	URL              string   `json:"url,omitempty"`
	OverallScore     int      `json:"overall_score"`
	RiskLevel        string   `json:"risk_level"`
	Verdict          string   `json:"verdict"`
	IsBlacklisted    bool     `json:"is_blacklisted"`
	ActiveCategories []string `json:"active_categories"`
}

// NewAssessmentCompleted builds the event for an assessment.
func NewAssessmentCompleted(
	assessmentID uuid.UUID,
	title, company, url string,
	score int,
	riskLevel, verdict string,
	blacklisted bool,
	active []string,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:        events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateTypeAssessment),
		Title:            title,
		Company:          company,
		URL:              url,
		OverallScore:     score,
		RiskLevel:        riskLevel,
		Verdict:          verdict,
		IsBlacklisted:    blacklisted,
		ActiveCategories: active,
	}
}

// HighRiskDetected is published when an assessment is critical, so that
// downstream moderation can pull the posting.
type HighRiskDetected struct {
	events.BaseEvent
	Company      string   `json:"company"`
	URL          string   `json:"url,omitempty"`
	OverallScore int      `json:"overall_score"`
	Flags        []string `json:"flags"`
}

// NewHighRiskDetected builds the event for a critical assessment.
func NewHighRiskDetected(assessmentID uuid.UUID, company, url string, score int, flags []string) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateTypeAssessment),
		Company:      company,
		URL:          url,
		OverallScore: score,
		Flags:        flags,
	}
}

// ScamReported is published after a report reaches the blacklist.
type ScamReported struct {
	events.BaseEvent
	URL      string   `json:"url,omitempty"`
	Company  string   `json:"company,omitempty"`
	Reporter string   `json:"reporter"`
	Severity string   `json:"severity"`
	Added    []string `json:"added"`
	Updated  []string `json:"updated"`
}

// NewScamReported builds the event for a report.
func NewScamReported(reportID uuid.UUID, url, company, reporter, severity string, added, updated []string) ScamReported {
	return ScamReported{
		BaseEvent: events.NewBaseEvent(EventTypeScamReported, reportID, AggregateTypeReport),
		URL:       url,
		Company:   company,
		Reporter:  reporter,
		Severity:  severity,
		Added:     added,
		Updated:   updated,
	}
}
