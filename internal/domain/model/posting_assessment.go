package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/event"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
	"github.com/jobguard/jobguard/pkg/events"
)

// PostingAssessment is the aggregate root for one assessed job posting.
type PostingAssessment struct {
	events.EventCollector

	assessedAt  time.Time
	source      string
	posting     Posting
	risk        RiskAssessment
	verdict     valueobject.Verdict
	prediction  *Prediction
	company     *CompanyVerification
	urlAnalysis *URLAnalysis
	blacklist   *BlacklistCheck
	confidence  float64
	id          uuid.UUID
}

// AssessmentParts carries the signal outputs that survive into the aggregate.
// Any of the pointers may be nil when the category did not run.
type AssessmentParts struct {
	Prediction  *Prediction
	Company     *CompanyVerification
	URLAnalysis *URLAnalysis
	Blacklist   *BlacklistCheck
}

// NewPostingAssessment resolves the verdict and records the domain events.
func NewPostingAssessment(source string, posting Posting, risk RiskAssessment, parts AssessmentParts) *PostingAssessment {
	a := &PostingAssessment{
		id:          uuid.New(),
		source:      source,
		posting:     posting,
		risk:        risk,
		prediction:  parts.Prediction,
		company:     parts.Company,
		urlAnalysis: parts.URLAnalysis,
		blacklist:   parts.Blacklist,
		assessedAt:  time.Now().UTC(),
	}

	var label *int
	if a.prediction != nil {
		l := a.prediction.Label
		label = &l
		a.confidence = a.prediction.Confidence
	}
	a.verdict = valueobject.DecideVerdict(risk.IsBlacklisted, risk.RiskLevel, label)

	a.Record(event.NewAssessmentCompleted(
		a.id, posting.Title, posting.Company, posting.URL,
		risk.OverallScore, risk.RiskLevel.String(), a.verdict.String(),
		risk.IsBlacklisted, risk.ActiveCategories(),
	))
	if risk.IsCritical() {
		a.Record(event.NewHighRiskDetected(
			a.id, posting.Company, posting.URL, risk.OverallScore, risk.Flags,
		))
	}
	return a
}

// --- Accessors ---

func (a *PostingAssessment) ID() uuid.UUID                 { return a.id }
func (a *PostingAssessment) Source() string                { return a.source }
func (a *PostingAssessment) Posting() Posting              { return a.posting }
func (a *PostingAssessment) Risk() RiskAssessment          { return a.risk }
func (a *PostingAssessment) Verdict() valueobject.Verdict  { return a.verdict }
func (a *PostingAssessment) Prediction() *Prediction       { return a.prediction }
func (a *PostingAssessment) Confidence() float64           { return a.confidence }
func (a *PostingAssessment) Company() *CompanyVerification { return a.company }
func (a *PostingAssessment) URLAnalysis() *URLAnalysis     { return a.urlAnalysis }
func (a *PostingAssessment) Blacklist() *BlacklistCheck    { return a.blacklist }
func (a *PostingAssessment) AssessedAt() time.Time         { return a.assessedAt }

// ShouldAutoReport reports whether the assessment is confident enough to be
// filed as a scam report without a human.
func (a *PostingAssessment) ShouldAutoReport(minConfidence float64) bool {
	return a.risk.IsCritical() && a.confidence > minConfidence
}

// HistoryRecord summarises the assessment for the history store.
func (a *PostingAssessment) HistoryRecord() HistoryRecord {
	return HistoryRecord{
		ID:         a.id,
		Source:     a.source,
		Title:      a.posting.Title,
		Company:    a.posting.Company,
		URL:        a.posting.URL,
		Verdict:    a.verdict.String(),
		Confidence: a.confidence,
		RiskScore:  a.risk.OverallScore,
		RiskLevel:  a.risk.RiskLevel.String(),
		Flags:      a.risk.Flags,
		CreatedAt:  a.assessedAt,
	}
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *PostingAssessment) DomainEvents() []events.DomainEvent {
	return a.ClearEvents()
}
