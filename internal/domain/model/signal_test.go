package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

func TestSignalResult(t *testing.T) {
	r := model.NewSignalResult(valueobject.CategoryText)
	assert.True(t, r.Active)

	r.Penalize(80, valueobject.RiskLevelHigh, "High-risk phrase: 'wire transfer'")
	r.Penalize(40, valueobject.RiskLevelMedium, "Suspicious phrase: 'act now'")
	r.Credit(5, "benefits")

	assert.Equal(t, 115, r.Score)
	assert.Equal(t, 100, r.ClampedScore())
	assert.Equal(t, []string{"High-risk phrase: 'wire transfer'", "Suspicious phrase: 'act now'"}, r.FlagMessages())
	assert.Equal(t, []string{"benefits"}, r.Positive)

	r.Score = -12
	assert.Equal(t, 0, r.ClampedScore())
}

func TestInactiveSignal(t *testing.T) {
	r := model.InactiveSignal(valueobject.CategoryURL, model.ReasonTimeout)

	assert.False(t, r.Active)
	assert.Equal(t, model.ReasonTimeout, r.Reason)
	assert.NotNil(t, r.Flags)
	assert.NotNil(t, r.Positive)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, model.Clamp(-1, 0, 100))
	assert.Equal(t, 100, model.Clamp(101, 0, 100))
	assert.Equal(t, 42, model.Clamp(42, 0, 100))
}

func TestBlacklistEntryMerge(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	e := model.BlacklistEntry{
		Kind:          model.EntryKindCompany,
		Key:           "quick cash",
		ReportCount:   1,
		Severity:      valueobject.RiskLevelCritical,
		Details:       "asked for a fee",
		FirstReported: first,
		LastReported:  first,
	}

	e.Merge(valueobject.RiskLevelLow, "asked for bank details", later)

	assert.Equal(t, 2, e.ReportCount)
	assert.Equal(t, valueobject.RiskLevelCritical, e.Severity)
	assert.Equal(t, "asked for bank details", e.Details)
	assert.Equal(t, first, e.FirstReported)
	assert.Equal(t, later, e.LastReported)
}

func TestParseEntryKind(t *testing.T) {
	for _, s := range []string{"url", "domain", "company"} {
		k, err := model.ParseEntryKind(s)
		assert.NoError(t, err)
		assert.Equal(t, s, string(k))
	}

	_, err := model.ParseEntryKind("phone")
	assert.Error(t, err)
}

func TestBlacklistQueryIsEmpty(t *testing.T) {
	assert.True(t, model.BlacklistQuery{}.IsEmpty())
	assert.False(t, model.BlacklistQuery{CompanyRaw: "Acme"}.IsEmpty())
}
