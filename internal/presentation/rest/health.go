package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	logger    *slog.Logger
	ready     func(ctx context.Context) error
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. A nil ready check
// always reports ready.
func NewHealthHandler(logger *slog.Logger, ready func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		ready:     ready,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// Healthz handles liveness checks.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "jobguard",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles readiness checks.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Service: "jobguard",
				Uptime:  time.Since(h.startTime).Round(time.Second).String(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ready",
		Service: "jobguard",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}
