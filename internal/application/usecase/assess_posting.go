package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/service"
)

const (
	autoReporter      = "auto-detector"
	autoReportDetails = "Auto-detected high confidence scam."
)

// AssessPostingConfig tunes the AssessPosting use case.
type AssessPostingConfig struct {
	// Timeout bounds signal evaluation; zero means no extra bound.
	Timeout time.Duration
	// AutoReportConfidence is the classifier confidence, in percent, a
	// critical assessment must exceed to be filed as a report.
	AutoReportConfidence float64
}

// AssessPosting is the use case for scoring a job posting.
type AssessPosting struct {
	engine    *service.Engine
	history   port.HistoryRepository
	reports   port.ReportRepository
	publisher port.EventPublisher
	metrics   *Metrics
	logger    *slog.Logger
	cfg       AssessPostingConfig
}

// NewAssessPosting creates a new AssessPosting use case.
func NewAssessPosting(
	engine *service.Engine,
	history port.HistoryRepository,
	reports port.ReportRepository,
	publisher port.EventPublisher,
	metrics *Metrics,
	cfg AssessPostingConfig,
	logger *slog.Logger,
) *AssessPosting {
	return &AssessPosting{
		engine:    engine,
		history:   history,
		reports:   reports,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute validates the posting, scores it, records history and publishes events.
// Only invalid input fails; storage and broker errors are logged and skipped.
func (uc *AssessPosting) Execute(ctx context.Context, req dto.AssessPostingRequest) (dto.AssessmentResponse, error) {
	posting, err := model.NewPosting(req.Title, req.Description, req.Company, req.URL)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return uc.assess(ctx, model.SourceText, posting), nil
}

func (uc *AssessPosting) assess(ctx context.Context, source string, posting model.Posting) dto.AssessmentResponse {
	ctx, span := tracer().Start(ctx, "AssessPosting")
	defer span.End()

	// 1. Evaluate every signal category under the assessment deadline.
	evalCtx, cancel := ctx, context.CancelFunc(func() {})
	if uc.cfg.Timeout > 0 {
		evalCtx, cancel = context.WithTimeout(ctx, uc.cfg.Timeout)
	}
	ev := uc.engine.Evaluate(evalCtx, posting)
	cancel()
	uc.metrics.recordEvaluation(ctx, ev)

	// 2. Build the aggregate, which resolves the verdict.
	assessment := model.NewPostingAssessment(source, posting, ev.Risk, model.AssessmentParts{
		Prediction:  ev.Prediction(),
		Company:     ev.Company(),
		URLAnalysis: ev.URLAnalysis(),
		Blacklist:   ev.Blacklist(),
	})
	span.SetAttributes(
		attribute.String("assessment.id", assessment.ID().String()),
		attribute.Int("assessment.score", ev.Risk.OverallScore),
		attribute.String("assessment.verdict", assessment.Verdict().String()),
	)

	// 3. Persist the summary.
	if err := uc.history.Save(ctx, assessment.HistoryRecord()); err != nil {
		uc.logger.Error("failed to save assessment history", "id", assessment.ID(), "error", err)
	}

	// 4. File confident critical assessments as reports.
	autoReported := false
	if assessment.ShouldAutoReport(uc.cfg.AutoReportConfidence) {
		autoReported = uc.autoReport(ctx, posting)
	}

	// 5. Publish domain events.
	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Error("failed to publish assessment events", "id", assessment.ID(), "error", err)
		}
	}

	resp := dto.FromModel(assessment)
	resp.AutoReported = autoReported
	return resp
}

func (uc *AssessPosting) autoReport(ctx context.Context, posting model.Posting) bool {
	report := model.UserReport{
		URL:       posting.URL,
		Company:   posting.Company,
		Details:   autoReportDetails,
		Reporter:  autoReporter,
		Status:    model.ReportStatusAutoVerified,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.reports.Save(ctx, report); err != nil {
		uc.logger.Error("failed to file automatic report", "company", posting.Company, "error", err)
		return false
	}
	uc.logger.Info("automatic scam report filed", "company", posting.Company, "url", posting.URL)
	return true
}
