package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/app/apptest"
	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/pkg/observability"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := apptest.Config()
	cfg.Storage.Driver = "mongo"

	_, err := app.New(context.Background(), cfg, nil, observability.NopLogger(), apptest.Overrides())
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestNew_AuthFollowsConfig(t *testing.T) {
	open := apptest.New(t, apptest.Config(), apptest.Overrides())
	assert.Nil(t, open.JWT)

	cfg := apptest.Config()
	cfg.Auth.JWTSecret = apptest.Secret
	guarded := apptest.New(t, cfg, apptest.Overrides())
	require.NotNil(t, guarded.JWT)

	token, err := guarded.JWT.GenerateToken("ops", []string{"admin"})
	require.NoError(t, err)
	claims, err := guarded.JWT.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole("admin"))
}

func TestApp_AssessmentIsRecorded(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	ctx := context.Background()

	resp, err := a.UseCases.AssessPosting.Execute(ctx, dto.AssessPostingRequest{
		Title:       "Backend Engineer",
		Description: "Build and operate payment APIs in Go with a small team.",
		Company:     "Northwind Traders",
	})
	require.NoError(t, err)

	item, err := a.UseCases.GetAssessment.Execute(ctx, dto.GetAssessmentRequest{ID: resp.ID})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", item.Title)
	assert.Equal(t, resp.RiskAnalysis.OverallScore, item.RiskScore)

	list, err := a.UseCases.ListAssessments.Execute(ctx, dto.ListAssessmentsRequest{})
	require.NoError(t, err)
	assert.Len(t, list.History, 1)
}

func TestApp_ReportedURLIsBlacklisted(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	ctx := context.Background()
	const scamURL = "https://quick-cash-jobs.example/apply"

	_, err := a.UseCases.ReportScam.Execute(ctx, dto.ReportScamRequest{URL: scamURL, Details: "asked for a deposit"})
	require.NoError(t, err)

	check, err := a.UseCases.CheckBlacklist.Execute(ctx, dto.CheckBlacklistRequest{URL: scamURL})
	require.NoError(t, err)
	assert.True(t, check.IsBlacklisted)

	resp, err := a.UseCases.AssessPosting.Execute(ctx, dto.AssessPostingRequest{
		Title:       "Data Entry Clerk",
		Description: "Flexible hours, apply through the link.",
		Company:     "Northwind Traders",
		URL:         scamURL,
	})
	require.NoError(t, err)
	assert.Equal(t, "blacklisted", resp.Verdict)
	assert.True(t, resp.RiskAnalysis.IsBlacklisted)
	assert.GreaterOrEqual(t, resp.RiskAnalysis.OverallScore, 85)
}

func TestOpenStores_SQLite(t *testing.T) {
	cfg := config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: filepath.Join(t.TempDir(), "jobguard.db")}

	stores, closeFn, err := app.OpenStores(context.Background(), cfg, observability.NopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	n, err := stores.Reports.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
