package model

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// HistoryRecord is the persisted summary of a finished assessment.
type HistoryRecord struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"type"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	URL        string    `json:"url,omitempty"`
	Verdict    string    `json:"result"`
	Confidence float64   `json:"confidence"`
	RiskScore  int       `json:"risk_score"`
	RiskLevel  string    `json:"risk_level"`
	Flags      []string  `json:"flags"`
	CreatedAt  time.Time `json:"timestamp"`
}

// Assessment sources.
const (
	SourceText = "text"
	SourceURL  = "url"
)

// Feedback is a user's judgement of a past assessment.
type Feedback struct {
	ID           int64      `json:"id"`
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
	Title        string     `json:"title"`
	Correct      bool       `json:"correct"`
	ActualResult string     `json:"actual_result,omitempty"`
	CreatedAt    time.Time  `json:"timestamp"`
}

// FeedbackStats counts feedback.
type FeedbackStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// TrendPoint is one day of the fake/real trend.
type TrendPoint struct {
	Date string `json:"date"`
	Fake int    `json:"fake"`
	Real int    `json:"real"`
}

// HistorySummary is the aggregate view of stored history.
type HistorySummary struct {
	Total       int            `json:"total"`
	ByVerdict   map[string]int `json:"breakdown"`
	ByRiskLevel map[string]int `json:"risk_distribution"`
	Trend       []TrendPoint   `json:"trend"`
}

// Analytics is the dashboard payload.
type Analytics struct {
	Predictions      HistorySummary `json:"predictions"`
	Feedback         FeedbackStats  `json:"feedback"`
	FeedbackAccuracy float64        `json:"feedback_accuracy"`
	ReportsTotal     int            `json:"reports_total"`
	Blacklist        BlacklistStats `json:"blacklist"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

// TrendDateLayout is the day key used in trend points.
const TrendDateLayout = "2006-01-02"

// NewHistorySummary returns an empty summary with its maps and trend allocated.
func NewHistorySummary() HistorySummary {
	return HistorySummary{
		ByVerdict:   make(map[string]int),
		ByRiskLevel: make(map[string]int),
		Trend:       make([]TrendPoint, 0),
	}
}

// SummarizeHistory aggregates records in memory. Stores that can group in
// SQL build the same shape themselves.
func SummarizeHistory(records []HistoryRecord, trendSince time.Time) HistorySummary {
	summary := NewHistorySummary()
	days := make(map[string]*TrendPoint)
	for _, r := range records {
		summary.Total++
		summary.ByVerdict[r.Verdict]++
		summary.ByRiskLevel[r.RiskLevel]++
		if r.CreatedAt.Before(trendSince) {
			continue
		}
		day := r.CreatedAt.UTC().Format(TrendDateLayout)
		p, ok := days[day]
		if !ok {
			p = &TrendPoint{Date: day}
			days[day] = p
		}
		verdict, err := valueobject.VerdictFromString(r.Verdict)
		switch {
		case err != nil:
		case verdict.IsFraudulent():
			p.Fake++
		case verdict == valueobject.VerdictReal:
			p.Real++
		}
	}
	for _, p := range days {
		summary.Trend = append(summary.Trend, *p)
	}
	sort.Slice(summary.Trend, func(i, j int) bool { return summary.Trend[i].Date < summary.Trend[j].Date })
	return summary
}
