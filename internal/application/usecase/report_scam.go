package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/event"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

const anonymousReporter = "Anonymous"

// ReportScam is the use case for a user-filed scam report.
type ReportScam struct {
	reports   port.ReportRepository
	blacklist *service.BlacklistRegistry
	publisher port.EventPublisher
	metrics   *Metrics
	logger    *slog.Logger
}

// NewReportScam creates a new ReportScam use case.
func NewReportScam(
	reports port.ReportRepository,
	blacklist *service.BlacklistRegistry,
	publisher port.EventPublisher,
	metrics *Metrics,
	logger *slog.Logger,
) *ReportScam {
	return &ReportScam{
		reports:   reports,
		blacklist: blacklist,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute stores the report, blacklists its URL, domain and company, and
// publishes ScamReported.
func (uc *ReportScam) Execute(ctx context.Context, req dto.ReportScamRequest) (dto.ReportScamResponse, error) {
	rawURL := strings.TrimSpace(req.URL)
	company := strings.TrimSpace(req.Company)
	if rawURL == "" && company == "" {
		return dto.ReportScamResponse{}, fmt.Errorf("%w: a url or company is required", ErrInvalidInput)
	}
	if rawURL != "" {
		if _, err := model.ParseURL(rawURL); err != nil {
			return dto.ReportScamResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	severity := valueobject.RiskLevelMedium
	if req.Privileged && strings.TrimSpace(req.Severity) != "" {
		s, err := valueobject.RiskLevelFromString(req.Severity)
		if err != nil {
			return dto.ReportScamResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		severity = s
	}
	reporter := strings.TrimSpace(req.Reporter)
	if reporter == "" {
		reporter = anonymousReporter
	}

	// 1. Keep the raw report for moderators.
	report := model.UserReport{
		URL:       rawURL,
		Company:   company,
		Details:   req.Details,
		Reporter:  reporter,
		Status:    model.ReportStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.reports.Save(ctx, report); err != nil {
		uc.logger.Error("failed to save user report", "reporter", reporter, "error", err)
	}

	// 2. Blacklist every identity in the report.
	added, err := uc.blacklist.Add(ctx, service.BlacklistReport{
		URL:      rawURL,
		Company:  company,
		Details:  req.Details,
		Severity: severity,
	})
	if err != nil {
		return dto.ReportScamResponse{}, fmt.Errorf("failed to add report to blacklist: %w", err)
	}
	uc.metrics.recordReport(ctx)

	// 3. Publish.
	reportID := uuid.New()
	evt := event.NewScamReported(reportID, rawURL, company, reporter, severity.String(), added.Added, added.Updated)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Error("failed to publish scam report", "report_id", reportID, "error", err)
	}

	return dto.ReportScamResponse{
		ReportID:        reportID,
		Message:         "Report submitted successfully. Thank you for helping protect the community!",
		BlacklistResult: added,
	}, nil
}
