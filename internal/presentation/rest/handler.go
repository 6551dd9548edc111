package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/pkg/auth"
)

const maxBodyBytes = 1 << 20

var (
	assessRoles = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient}
	readRoles   = []string{auth.RoleAdmin, auth.RoleAnalyst}
	checkRoles  = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleReporter, auth.RoleAPIClient}
	reportRoles = []string{auth.RoleAdmin, auth.RoleReporter}
	allRoles    = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleReporter, auth.RoleAPIClient}
)

// Handler adapts use cases to HTTP.
type Handler struct {
	uc           usecase.Set
	authRequired bool
	logger       *slog.Logger
}

// roles rejects callers without one of roles. It is a no-op when auth is off.
func (h *Handler) roles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.authRequired {
				claims, ok := auth.ClaimsFromContext(r.Context())
				if !ok {
					writeError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				if !claims.HasAnyRole(roles...) {
					writeError(w, http.StatusForbidden, "insufficient permissions")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) AssessPosting(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessPostingRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.AssessPosting.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) AssessURL(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessURLRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.AssessURL.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	resp, err := h.uc.ListAssessments.Execute(r.Context(), dto.ListAssessmentsRequest{Limit: limit})
	h.respond(w, r, resp, err)
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	resp, err := h.uc.GetAssessment.Execute(r.Context(), dto.GetAssessmentRequest{ID: id})
	h.respond(w, r, resp, err)
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ClearHistory.Execute(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitFeedbackRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.SubmitFeedback.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

// ReportScam honours an explicit severity only from admins. Without auth the
// caller is anonymous and never privileged.
func (h *Handler) ReportScam(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportScamRequest
	if !decode(w, r, &req) {
		return
	}
	req.Privileged = false
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		req.Privileged = claims.HasRole(auth.RoleAdmin)
		if req.Reporter == "" {
			req.Reporter = claims.Subject
		}
	}
	resp, err := h.uc.ReportScam.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) CheckBlacklist(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckBlacklistRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.CheckBlacklist.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) BlacklistOverview(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	resp, err := h.uc.BlacklistOverview.Execute(r.Context(), dto.BlacklistOverviewRequest{Limit: limit})
	h.respond(w, r, resp, err)
}

func (h *Handler) CheckDomain(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckDomainRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.CheckDomain.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) VerifyCompany(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyCompanyRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.uc.VerifyCompany.Execute(r.Context(), req)
	h.respond(w, r, resp, err)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.GetAnalytics.Execute(r.Context())
	h.respond(w, r, resp, err)
}

// respond writes resp as JSON, or maps err onto a status code.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, resp any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInsufficientInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
