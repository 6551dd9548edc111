package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeHistory(t *testing.T) {
	day := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)
	records := []HistoryRecord{
		{Verdict: "fake", RiskLevel: "high", CreatedAt: day.AddDate(0, 0, -10)},
		{Verdict: "blacklisted", RiskLevel: "high", CreatedAt: day.AddDate(0, 0, -2)},
		{Verdict: "critical_risk", RiskLevel: "critical", CreatedAt: day.AddDate(0, 0, -2)},
		{Verdict: "real", RiskLevel: "low", CreatedAt: day},
		{Verdict: "unknown", RiskLevel: "medium", CreatedAt: day},
	}

	summary := SummarizeHistory(records, day.AddDate(0, 0, -7))

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.ByRiskLevel["high"])
	assert.Equal(t, 1, summary.ByVerdict["unknown"])
	assert.Equal(t, []TrendPoint{
		{Date: "2026-05-18", Fake: 2},
		{Date: "2026-05-20", Real: 1},
	}, summary.Trend)
}

func TestSummarizeHistory_Empty(t *testing.T) {
	summary := SummarizeHistory(nil, time.Now())

	assert.Zero(t, summary.Total)
	assert.NotNil(t, summary.ByVerdict)
	assert.NotNil(t, summary.Trend)
}
