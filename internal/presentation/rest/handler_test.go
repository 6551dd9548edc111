package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobguard/jobguard/internal/app/apptest"
	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/presentation/rest"
	"github.com/jobguard/jobguard/pkg/auth"
	"github.com/jobguard/jobguard/pkg/observability"
)

func newRouter(t *testing.T, jwt *auth.JWTService) http.Handler {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	return rest.NewRouter(rest.RouterConfig{
		UseCases: a.UseCases,
		JWT:      jwt,
		Metrics:  http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Logger:   observability.NopLogger(),
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRouter_Health(t *testing.T) {
	h := newRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestRouter_Readiness(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	ready := rest.NewRouter(rest.RouterConfig{UseCases: a.UseCases, Ready: a.Stores.Ping, Logger: observability.NopLogger()})
	rec := do(t, ready, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)

	down := rest.NewRouter(rest.RouterConfig{
		UseCases: a.UseCases,
		Ready:    func(context.Context) error { return errors.New("connection refused") },
		Logger:   observability.NopLogger(),
	})
	rec = do(t, down, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unavailable"`)
}

func TestRouter_RateLimited(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	h := rest.NewRouter(rest.RouterConfig{UseCases: a.UseCases, RateLimit: 1, Logger: observability.NopLogger()})

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/analyze/history", "", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/v1/analyze/history", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", "").Code, "health stays outside the limit")
}

func TestRouter_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	h := rest.NewRouter(rest.RouterConfig{UseCases: a.UseCases, RateLimit: 1, Logger: observability.NopLogger()})

	history := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyze/history", nil)
		req.RemoteAddr = "203.0.113.7:41000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, history("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, history("198.51.100.2"))
}

func TestRouter_RateLimitTrustsProxyWhenEnabled(t *testing.T) {
	a := apptest.New(t, apptest.Config(), apptest.Overrides())
	h := rest.NewRouter(rest.RouterConfig{
		UseCases:   a.UseCases,
		RateLimit:  1,
		TrustProxy: true,
		Logger:     observability.NopLogger(),
	})

	history := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/analyze/history", nil)
		req.RemoteAddr = "10.0.0.5:41000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, history("198.51.100.1"))
	assert.Equal(t, http.StatusOK, history("198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, history("198.51.100.1"))
}

func TestRouter_AssessAndReadBack(t *testing.T) {
	h := newRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/analyze/predict-text",
		`{"title":"Platform Engineer","description":"Maintain CI pipelines and Terraform modules.","company":"Initech"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var assessed struct {
		ID     uuid.UUID `json:"id"`
		Source string    `json:"type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessed))
	assert.Equal(t, "text", assessed.Source)

	rec = do(t, h, http.MethodGet, "/v1/analyze/history/"+assessed.ID.String(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var item dto.HistoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Platform Engineer", item.Title)

	rec = do(t, h, http.MethodGet, "/v1/analyze/history?limit=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.ListAssessmentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.History, 1)
}

func TestRouter_ErrorMapping(t *testing.T) {
	h := newRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"malformed JSON", http.MethodPost, "/v1/analyze/predict-text", `{`, http.StatusBadRequest},
		{"blank posting", http.MethodPost, "/v1/analyze/predict-text", `{"title":" "}`, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/v1/analyze/history?limit=abc", "", http.StatusBadRequest},
		{"bad id", http.MethodGet, "/v1/analyze/history/xyz", "", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/v1/analyze/history/0b5c4a5e-9a51-4a5e-8d0f-3f1f2b0c9d11", "", http.StatusNotFound},
		{"scrape failure", http.MethodPost, "/v1/analyze/predict-url", `{"url":"https://initech.example/jobs/1"}`, http.StatusUnprocessableEntity},
		{"company required", http.MethodPost, "/v1/analyze/verify-company", `{"company":""}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.NotEmpty(t, errorBody(t, rec))
		})
	}
}

func TestRouter_ReportThenCheck(t *testing.T) {
	h := newRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/analyze/report-scam",
		`{"url":"https://easy-money-jobs.example/apply","details":"asked for gift cards","severity":"critical"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/analyze/check-blacklist", `{"url":"https://easy-money-jobs.example/apply"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var check dto.CheckBlacklistResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	assert.True(t, check.IsBlacklisted)
	assert.Equal(t, "medium", check.Severity, "anonymous callers cannot raise severity")

	rec = do(t, h, http.MethodGet, "/v1/analyze/blacklist/stats?limit=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview dto.BlacklistOverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.Stats.TotalURLs)
}

func TestRouter_JWT(t *testing.T) {
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: apptest.Secret, Issuer: "jobguard-test", Expiration: time.Hour})
	require.NoError(t, err)
	h := newRouter(t, jwt)

	token := func(roles ...string) string {
		tok, err := jwt.GenerateToken("user-1", roles)
		require.NoError(t, err)
		return tok
	}

	t.Run("health stays open", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", "").Code)
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/v1/analyze/analytics", "", "").Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/v1/analyze/clear-history", "", token(auth.RoleAnalyst))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin clears history", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/v1/analyze/clear-history", "", token(auth.RoleAdmin))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("analyst reads analytics", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/analyze/analytics", "", token(auth.RoleAnalyst))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}
