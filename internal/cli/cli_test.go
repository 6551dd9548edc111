package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/app/apptest"
	"github.com/jobguard/jobguard/internal/cli"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/pkg/auth"
	"github.com/jobguard/jobguard/pkg/tlsutil"
)

func run(t *testing.T, opts cli.Options, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sqliteOptions(t *testing.T) cli.Options {
	cfg := apptest.Config()
	cfg.Storage.Driver = config.StorageSQLite
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "cli.db")
	return cli.Options{Base: &cfg, Overrides: apptest.Overrides()}
}

func TestAssess_PrintsAssessment(t *testing.T) {
	out, err := run(t, sqliteOptions(t), "assess",
		"--title", "Backend Engineer",
		"--company", "Northwind Traders",
		"--description", "Build and operate payment APIs in Go with a small team.")
	require.NoError(t, err)

	var resp struct {
		Source string `json:"type"`
		Result string `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "text", resp.Source)
	assert.NotEmpty(t, resp.Result)
}

func TestBlacklist_ReportPersistsAcrossCommands(t *testing.T) {
	opts := sqliteOptions(t)
	const scamURL = "https://quick-cash-jobs.example/apply"

	_, err := run(t, opts, "blacklist", "report", "--url", scamURL, "--severity", "critical", "--details", "deposit")
	require.NoError(t, err)

	out, err := run(t, opts, "blacklist", "check", "--url", scamURL)
	require.NoError(t, err)
	var check struct {
		Severity      string `json:"severity"`
		IsBlacklisted bool   `json:"is_blacklisted"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &check))
	assert.True(t, check.IsBlacklisted)
	assert.Equal(t, "critical", check.Severity)
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	_, err := run(t, sqliteOptions(t), "migrate")
	assert.ErrorContains(t, err, "postgres")
}

func TestToken_SignsWithSecret(t *testing.T) {
	out, err := run(t, sqliteOptions(t), "token", "--jwt-secret", apptest.Secret, "--subject", "ops", "--roles", "admin,reporter")
	require.NoError(t, err)

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: apptest.Secret, Expiration: time.Hour})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.HasRole("reporter"))
}

func TestToken_RequiresSecret(t *testing.T) {
	_, err := run(t, sqliteOptions(t), "token")
	assert.ErrorContains(t, err, "jwt-secret")
}

func TestDevCert_WritesServerPair(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, sqliteOptions(t), "dev-cert", "--out", dir)
	require.NoError(t, err)

	_, err = tlsutil.LoadServerConfig(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server-key.pem"))
	assert.NoError(t, err)
}
