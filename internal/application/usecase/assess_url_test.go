package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
	"github.com/jobguard/jobguard/pkg/observability"
)

func newAssessURL(scraper *mockScraper, repo *mockBlacklistRepository, sources ...service.SignalSource) (*usecase.AssessURL, *assessFixture) {
	f := &assessFixture{}
	assess := newAssessPosting(f, nil, defaultAssessConfig, sources...)
	blacklist := service.NewBlacklistRegistry(repo, registry.Default())
	return usecase.NewAssessURL(assess, scraper, blacklist, observability.NopLogger()), f
}

func TestAssessURL_Execute(t *testing.T) {
	t.Run("scrapes and assesses the page", func(t *testing.T) {
		scraper := &mockScraper{scrapeFunc: func(_ context.Context, url string) (model.Posting, error) {
			assert.Equal(t, "https://jobs.example.com/42", url)
			return model.Posting{
				Title:       " Platform Engineer ",
				Description: "Build internal tooling.",
				Company:     "Example Corp",
				Location:    " Berlin ",
			}, nil
		}}
		uc, f := newAssessURL(scraper, &mockBlacklistRepository{},
			&stubSource{category: valueobject.CategoryText, result: scored(valueobject.CategoryText, 20)})

		resp, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: " https://jobs.example.com/42 "})
		require.NoError(t, err)

		assert.Equal(t, model.SourceURL, resp.Source)
		require.NotNil(t, resp.ScrapedData)
		assert.Equal(t, "Platform Engineer", resp.ScrapedData.Title)
		assert.Equal(t, "Berlin", resp.ScrapedData.Location)
		assert.Equal(t, "https://jobs.example.com/42", resp.ScrapedData.URL)
		require.Len(t, f.history.saved, 1)
		assert.Equal(t, model.SourceURL, f.history.saved[0].Source)
	})

	t.Run("scrape failure is insufficient input", func(t *testing.T) {
		scraper := &mockScraper{scrapeFunc: func(context.Context, string) (model.Posting, error) {
			return model.Posting{}, errors.New("403 Forbidden")
		}}
		uc, f := newAssessURL(scraper, &mockBlacklistRepository{})

		_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: "https://jobs.example.com/42"})
		require.ErrorIs(t, err, usecase.ErrInsufficientInput)
		assert.Contains(t, err.Error(), "403 Forbidden")
		assert.Empty(t, f.history.saved)
	})

	t.Run("empty page is insufficient input", func(t *testing.T) {
		scraper := &mockScraper{scrapeFunc: func(context.Context, string) (model.Posting, error) {
			return model.Posting{Company: "Example Corp"}, nil
		}}
		uc, _ := newAssessURL(scraper, &mockBlacklistRepository{})

		_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: "https://jobs.example.com/42"})
		assert.ErrorIs(t, err, usecase.ErrInsufficientInput)
	})

	t.Run("malformed url is invalid input", func(t *testing.T) {
		uc, _ := newAssessURL(&mockScraper{}, &mockBlacklistRepository{})

		_, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: "javascript://alert(1)"})
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("blacklisted url is assessed without scraping", func(t *testing.T) {
		scraper := &mockScraper{scrapeFunc: func(context.Context, string) (model.Posting, error) {
			t.Fatal("a blacklisted url must not be fetched")
			return model.Posting{}, nil
		}}
		repo := &mockBlacklistRepository{matchFunc: func(context.Context, model.BlacklistQuery) ([]model.BlacklistEntry, error) {
			return []model.BlacklistEntry{{
				Kind:        model.EntryKindDomain,
				Key:         "scam-jobs.xyz",
				ReportCount: 6,
				Severity:    valueobject.RiskLevelCritical,
			}}, nil
		}}
		blacklistSource := service.NewBlacklistSource(service.NewBlacklistRegistry(repo, registry.Default()))
		uc, _ := newAssessURL(scraper, repo, blacklistSource)

		resp, err := uc.Execute(context.Background(), dto.AssessURLRequest{URL: "https://scam-jobs.xyz/apply"})
		require.NoError(t, err)

		assert.Equal(t, "blacklisted", resp.Verdict)
		assert.Equal(t, 0, resp.Prediction)
		assert.True(t, resp.RiskAnalysis.IsBlacklisted)
		assert.Equal(t, 100, resp.RiskAnalysis.OverallScore)
		assert.Nil(t, resp.ScrapedData)
	})
}
