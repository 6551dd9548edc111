package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/pkg/auth"
)

var (
	assessRoles = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient}
	readRoles   = []string{auth.RoleAdmin, auth.RoleAnalyst}
	checkRoles  = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleReporter, auth.RoleAPIClient}
	reportRoles = []string{auth.RoleAdmin, auth.RoleReporter}
	adminRoles  = []string{auth.RoleAdmin}
	allRoles    = []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleReporter, auth.RoleAPIClient}
)

// requireRole checks that the caller has at least one of the given roles.
// Without an auth interceptor no claims are attached and every call passes.
func (h *Handler) requireRole(ctx context.Context, roles ...string) error {
	if !h.authRequired {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if claims.HasAnyRole(roles...) {
		return nil
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

func isAdmin(ctx context.Context) bool {
	claims, ok := auth.ClaimsFromContext(ctx)
	return ok && claims.HasRole(auth.RoleAdmin)
}

// Compile-time assertion that Handler implements JobGuardServiceServer.
var _ JobGuardServiceServer = (*Handler)(nil)

// Handler implements the gRPC JobGuardServiceServer interface.
type Handler struct {
	UnimplementedJobGuardServiceServer
	uc           usecase.Set
	authRequired bool
	logger       *slog.Logger
}

// NewHandler creates a new Handler. authRequired enables role checks and
// must match whether the server installs the JWT interceptor.
func NewHandler(uc usecase.Set, authRequired bool, logger *slog.Logger) *Handler {
	return &Handler{uc: uc, authRequired: authRequired, logger: logger}
}

// toStatus maps use case errors onto gRPC codes.
func (h *Handler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrInsufficientInput):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		h.logger.Error("request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// AssessPosting handles the gRPC request to score a job posting.
func (h *Handler) AssessPosting(ctx context.Context, req *AssessPostingRequest) (*dto.AssessmentResponse, error) {
	if err := h.requireRole(ctx, assessRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.uc.AssessPosting.Execute(ctx, dto.AssessPostingRequest{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		URL:         req.URL,
	})
	if err != nil {
		return nil, h.toStatus("AssessPosting", err)
	}
	return &resp, nil
}

// AssessURL handles the gRPC request to scrape and score a posting URL.
func (h *Handler) AssessURL(ctx context.Context, req *AssessURLRequest) (*dto.AssessmentResponse, error) {
	if err := h.requireRole(ctx, assessRoles...); err != nil {
		return nil, err
	}
	if req == nil || req.URL == "" {
		return nil, status.Error(codes.InvalidArgument, "url is required")
	}

	resp, err := h.uc.AssessURL.Execute(ctx, dto.AssessURLRequest{URL: req.URL})
	if err != nil {
		return nil, h.toStatus("AssessURL", err)
	}
	return &resp, nil
}

// GetAssessment handles the gRPC request to read one history entry.
func (h *Handler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*dto.HistoryItem, error) {
	if err := h.requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	resp, err := h.uc.GetAssessment.Execute(ctx, dto.GetAssessmentRequest{ID: id})
	if err != nil {
		return nil, h.toStatus("GetAssessment", err)
	}
	return &resp, nil
}

// ListAssessments handles the gRPC request for recent history.
func (h *Handler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*dto.ListAssessmentsResponse, error) {
	if err := h.requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	limit := 0
	if req != nil {
		limit = int(req.Limit)
	}

	resp, err := h.uc.ListAssessments.Execute(ctx, dto.ListAssessmentsRequest{Limit: limit})
	if err != nil {
		return nil, h.toStatus("ListAssessments", err)
	}
	return &resp, nil
}

// ClearHistory handles the gRPC request to wipe history. Admin only.
func (h *Handler) ClearHistory(ctx context.Context, _ *ClearHistoryRequest) (*dto.ClearHistoryResponse, error) {
	if err := h.requireRole(ctx, adminRoles...); err != nil {
		return nil, err
	}

	resp, err := h.uc.ClearHistory.Execute(ctx)
	if err != nil {
		return nil, h.toStatus("ClearHistory", err)
	}
	return &resp, nil
}

// SubmitFeedback handles the gRPC request to record user feedback.
func (h *Handler) SubmitFeedback(ctx context.Context, req *SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	if err := h.requireRole(ctx, allRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := dto.SubmitFeedbackRequest{Title: req.Title, Correct: req.Correct, ActualResult: req.ActualResult}
	if req.AssessmentID != "" {
		id, err := uuid.Parse(req.AssessmentID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid assessment_id: %v", err)
		}
		in.AssessmentID = &id
	}

	resp, err := h.uc.SubmitFeedback.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus("SubmitFeedback", err)
	}
	return &resp, nil
}

// ReportScam handles the gRPC request to file a scam report. Only admins
// may set the severity.
func (h *Handler) ReportScam(ctx context.Context, req *ReportScamRequest) (*dto.ReportScamResponse, error) {
	if err := h.requireRole(ctx, reportRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	reporter := ""
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		reporter = claims.Subject
	}

	resp, err := h.uc.ReportScam.Execute(ctx, dto.ReportScamRequest{
		URL:        req.URL,
		Company:    req.Company,
		Details:    req.Details,
		Reporter:   reporter,
		Severity:   req.Severity,
		Privileged: isAdmin(ctx),
	})
	if err != nil {
		return nil, h.toStatus("ReportScam", err)
	}
	return &resp, nil
}

// CheckBlacklist handles the gRPC request for a blacklist lookup.
func (h *Handler) CheckBlacklist(ctx context.Context, req *CheckBlacklistRequest) (*dto.CheckBlacklistResponse, error) {
	if err := h.requireRole(ctx, checkRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.uc.CheckBlacklist.Execute(ctx, dto.CheckBlacklistRequest{URL: req.URL, Company: req.Company})
	if err != nil {
		return nil, h.toStatus("CheckBlacklist", err)
	}
	return &resp, nil
}

// BlacklistOverview handles the gRPC request for blacklist stats.
func (h *Handler) BlacklistOverview(ctx context.Context, req *BlacklistOverviewRequest) (*dto.BlacklistOverviewResponse, error) {
	if err := h.requireRole(ctx, checkRoles...); err != nil {
		return nil, err
	}
	limit := 0
	if req != nil {
		limit = int(req.Limit)
	}

	resp, err := h.uc.BlacklistOverview.Execute(ctx, dto.BlacklistOverviewRequest{Limit: limit})
	if err != nil {
		return nil, h.toStatus("BlacklistOverview", err)
	}
	return &resp, nil
}

// CheckDomain handles the gRPC request for a standalone URL analysis.
func (h *Handler) CheckDomain(ctx context.Context, req *CheckDomainRequest) (*model.URLAnalysis, error) {
	if err := h.requireRole(ctx, assessRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.uc.CheckDomain.Execute(ctx, dto.CheckDomainRequest{URL: req.URL})
	if err != nil {
		return nil, h.toStatus("CheckDomain", err)
	}
	return &resp, nil
}

// VerifyCompany handles the gRPC request for a standalone company check.
func (h *Handler) VerifyCompany(ctx context.Context, req *VerifyCompanyRequest) (*model.CompanyVerification, error) {
	if err := h.requireRole(ctx, assessRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.uc.VerifyCompany.Execute(ctx, dto.VerifyCompanyRequest{Company: req.Company})
	if err != nil {
		return nil, h.toStatus("VerifyCompany", err)
	}
	return &resp, nil
}

// GetAnalytics handles the gRPC request for the dashboard aggregate.
func (h *Handler) GetAnalytics(ctx context.Context, _ *GetAnalyticsRequest) (*dto.AnalyticsResponse, error) {
	if err := h.requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}

	resp, err := h.uc.GetAnalytics.Execute(ctx)
	if err != nil {
		return nil, h.toStatus("GetAnalytics", err)
	}
	return &resp, nil
}
