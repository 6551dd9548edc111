// Package rest serves the JobGuard API over HTTP/JSON.
package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/pkg/auth"
)

// RouterConfig holds the collaborators of the HTTP router.
type RouterConfig struct {
	UseCases usecase.Set
	// JWT guards /v1 when set.
	JWT *auth.JWTService
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Timeout bounds each request; zero uses 30s.
	Timeout time.Duration
	// Ready backs /readyz when set.
	Ready func(ctx context.Context) error
	// RateLimit is the per-client request rate on /v1; zero disables it.
	RateLimit int
	// TrustProxy takes the client address from X-Forwarded-For and X-Real-IP.
	// Leave it off unless a proxy that overwrites those headers fronts the API.
	TrustProxy bool
	Logger     *slog.Logger
}

// NewRouter builds the chi router with health, metrics and the /v1 API.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	health := NewHealthHandler(cfg.Logger, cfg.Ready)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	h := &Handler{uc: cfg.UseCases, authRequired: cfg.JWT != nil, logger: cfg.Logger}
	r.Route("/v1/analyze", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(rateLimit(newClientLimiter(cfg.RateLimit)))
		}
		if cfg.JWT != nil {
			r.Use(auth.HTTPMiddleware(cfg.JWT))
		}
		r.With(h.roles(assessRoles...)).Post("/predict-text", h.AssessPosting)
		r.With(h.roles(assessRoles...)).Post("/predict-url", h.AssessURL)
		r.With(h.roles(readRoles...)).Get("/history", h.ListAssessments)
		r.With(h.roles(readRoles...)).Get("/history/{id}", h.GetAssessment)
		r.With(h.roles(auth.RoleAdmin)).Delete("/clear-history", h.ClearHistory)
		r.With(h.roles(allRoles...)).Post("/feedback", h.SubmitFeedback)
		r.With(h.roles(reportRoles...)).Post("/report-scam", h.ReportScam)
		r.With(h.roles(checkRoles...)).Post("/check-blacklist", h.CheckBlacklist)
		r.With(h.roles(checkRoles...)).Get("/blacklist/stats", h.BlacklistOverview)
		r.With(h.roles(assessRoles...)).Post("/check-domain", h.CheckDomain)
		r.With(h.roles(assessRoles...)).Post("/verify-company", h.VerifyCompany)
		r.With(h.roles(readRoles...)).Get("/analytics", h.GetAnalytics)
	})
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
