package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

func newBlacklist() (*service.BlacklistRegistry, *fakeBlacklistRepo) {
	repo := newFakeBlacklistRepo()
	return service.NewBlacklistRegistry(repo, registry.Default()), repo
}

func TestBlacklistRegistry_Add(t *testing.T) {
	t.Run("a url report also records its domain", func(t *testing.T) {
		b, repo := newBlacklist()

		result, err := b.Add(context.Background(), service.BlacklistReport{
			URL:     "https://www.Scam-Jobs.xyz/apply/",
			Company: "Quick Cash Inc.",
			Details: "asked for a deposit",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"URL: www.scam-jobs.xyz/apply",
			"Domain: scam-jobs.xyz",
			"Company: Quick Cash Inc.",
		}, result.Added)
		assert.Empty(t, result.Updated)

		company := repo.get(model.EntryKindCompany, "quick cash")
		require.NotNil(t, company)
		assert.Equal(t, "Quick Cash Inc.", company.Name)
		assert.Equal(t, valueobject.RiskLevelMedium, company.Severity, "severity defaults to medium")
		assert.Equal(t, "scam-jobs.xyz", repo.get(model.EntryKindURL, "www.scam-jobs.xyz/apply").Domain)
	})

	t.Run("repeat reports update counts", func(t *testing.T) {
		b, repo := newBlacklist()
		report := service.BlacklistReport{Company: "Easy Money LLC"}

		_, err := b.Add(context.Background(), report)
		require.NoError(t, err)
		result, err := b.Add(context.Background(), report)
		require.NoError(t, err)

		assert.Empty(t, result.Added)
		assert.Equal(t, []string{"Company: Easy Money LLC"}, result.Updated)
		assert.Equal(t, 2, repo.get(model.EntryKindCompany, "easy money").ReportCount)
	})

	t.Run("severity never decreases", func(t *testing.T) {
		b, repo := newBlacklist()

		_, err := b.Add(context.Background(), service.BlacklistReport{Domain: "scam.example", Severity: valueobject.RiskLevelCritical})
		require.NoError(t, err)
		_, err = b.Add(context.Background(), service.BlacklistReport{Domain: "scam.example", Severity: valueobject.RiskLevelLow})
		require.NoError(t, err)

		assert.Equal(t, valueobject.RiskLevelCritical, repo.get(model.EntryKindDomain, "scam.example").Severity)
	})

	t.Run("explicit domain equal to the url's is recorded once", func(t *testing.T) {
		b, _ := newBlacklist()

		result, err := b.Add(context.Background(), service.BlacklistReport{
			URL:    "scam.example/jobs",
			Domain: "WWW.SCAM.EXAMPLE",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"URL: scam.example/jobs", "Domain: scam.example"}, result.Added)
	})

	t.Run("empty report is rejected", func(t *testing.T) {
		b, _ := newBlacklist()

		_, err := b.Add(context.Background(), service.BlacklistReport{Details: "no identity", Company: "   "})
		assert.ErrorIs(t, err, service.ErrEmptyReport)
	})
}

func TestBlacklistRegistry_Check(t *testing.T) {
	t.Run("nothing to check", func(t *testing.T) {
		b, _ := newBlacklist()

		result, err := b.Check(context.Background(), "", " ")
		require.NoError(t, err)
		assert.False(t, result.IsBlacklisted)
		assert.Empty(t, result.Matches)
	})

	t.Run("url matches by domain", func(t *testing.T) {
		b, _ := newBlacklist()
		_, err := b.Add(context.Background(), service.BlacklistReport{URL: "https://scam-jobs.xyz/apply"})
		require.NoError(t, err)

		result, err := b.Check(context.Background(), "http://scam-jobs.xyz/another-listing", "")
		require.NoError(t, err)

		assert.True(t, result.IsBlacklisted)
		assert.Len(t, result.Matches, 2)
		assert.Equal(t, 2, result.TotalReports)
		assert.Equal(t, valueobject.RiskLevelMedium, result.Severity)
		assert.Equal(t, "This has been flagged as suspicious. Proceed with caution.", result.Recommendation)
	})

	t.Run("company spelling variants match", func(t *testing.T) {
		b, _ := newBlacklist()
		_, err := b.Add(context.Background(), service.BlacklistReport{Company: "Acme Corp."})
		require.NoError(t, err)

		for _, name := range []string{"ACME CORPORATION", "acme", "Acme, Inc."} {
			result, err := b.Check(context.Background(), "", name)
			require.NoError(t, err)
			assert.True(t, result.IsBlacklisted, name)
		}
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		b, repo := newBlacklist()
		repo.matchErr = errors.New("disk I/O error")

		_, err := b.Check(context.Background(), "scam.example", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check blacklist")
	})
}

func TestBlacklistRegistry_SeverityTiers(t *testing.T) {
	tests := []struct {
		name     string
		reports  int
		severity valueobject.RiskLevel
		expected valueobject.RiskLevel
	}{
		{"single report", 1, valueobject.RiskLevelMedium, valueobject.RiskLevelMedium},
		{"three reports", 3, valueobject.RiskLevelMedium, valueobject.RiskLevelHigh},
		{"five reports", 5, valueobject.RiskLevelLow, valueobject.RiskLevelCritical},
		{"recorded high", 1, valueobject.RiskLevelHigh, valueobject.RiskLevelHigh},
		{"recorded critical", 1, valueobject.RiskLevelCritical, valueobject.RiskLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newBlacklist()
			for range tt.reports {
				_, err := b.Add(context.Background(), service.BlacklistReport{Company: "Northwind Traders", Severity: tt.severity})
				require.NoError(t, err)
			}

			result, err := b.Check(context.Background(), "", "Northwind Traders")
			require.NoError(t, err)

			assert.Equal(t, tt.reports, result.TotalReports)
			assert.Equal(t, tt.expected, result.Severity)
		})
	}
}

func TestBlacklistRegistry_Recent(t *testing.T) {
	b, _ := newBlacklist()
	for _, r := range []service.BlacklistReport{
		{URL: "scam-one.example/a"},
		{URL: "scam-two.example/b"},
		{URL: "scam-three.example/c"},
		{Company: "Easy Money"},
	} {
		_, err := b.Add(context.Background(), r)
		require.NoError(t, err)
	}

	recent, err := b.Recent(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	none, err := b.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBlacklistRegistry_RecentMergesKindsNewestFirst(t *testing.T) {
	b, repo := newBlacklist()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	seed := []model.BlacklistEntry{
		{Kind: model.EntryKindURL, Key: "old-scam.example/a", LastReported: base},
		{Kind: model.EntryKindCompany, Key: "easy money", Name: "Easy Money", LastReported: base.Add(time.Hour)},
		{Kind: model.EntryKindURL, Key: "new-scam.example/b", LastReported: base.Add(2 * time.Hour)},
		{Kind: model.EntryKindCompany, Key: "quick cash", Name: "Quick Cash", LastReported: base.Add(3 * time.Hour)},
		{Kind: model.EntryKindDomain, Key: "new-scam.example", LastReported: base.Add(4 * time.Hour)},
	}
	for _, e := range seed {
		e.FirstReported = e.LastReported
		e.ReportCount = 1
		e.Severity = valueobject.RiskLevelMedium
		_, err := repo.Upsert(ctx, e)
		require.NoError(t, err)
	}

	recent, err := b.Recent(ctx, 4)
	require.NoError(t, err)
	keys := make([]string, 0, len(recent))
	for _, e := range recent {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"quick cash", "new-scam.example/b", "easy money", "old-scam.example/a"}, keys,
		"url and company entries interleave by report time; domains are not listed")

	top, err := b.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "quick cash", top[0].Key)
	assert.Equal(t, "new-scam.example/b", top[1].Key)
}
