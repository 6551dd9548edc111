package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/valueobject"
)

// AssessPostingRequest is the input DTO for the AssessPosting use case.
type AssessPostingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	URL         string `json:"url,omitempty"`
}

// AssessURLRequest is the input DTO for the AssessURL use case.
type AssessURLRequest struct {
	URL string `json:"url"`
}

// RiskAnalysisResponse is the composite score as returned to callers.
type RiskAnalysisResponse struct {
	Breakdown       map[string]model.CategoryBreakdown `json:"breakdown"`
	RiskLevel       string                             `json:"risk_level"`
	Flags           []string                           `json:"flags"`
	PositiveSignals []string                           `json:"positive_signals"`
	Recommendations []string                           `json:"recommendations"`
	OverallScore    int                                `json:"overall_score"`
	IsBlacklisted   bool                               `json:"is_blacklisted"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt          time.Time                  `json:"assessed_at"`
	Explanation         *model.Prediction          `json:"explanation,omitempty"`
	CompanyVerification *model.CompanyVerification `json:"company_verification,omitempty"`
	URLSecurity         *model.URLAnalysis         `json:"url_security,omitempty"`
	BlacklistStatus     *model.BlacklistCheck      `json:"blacklist_status,omitempty"`
	ScrapedData         *model.Posting             `json:"scraped_data,omitempty"`
	RiskAnalysis        RiskAnalysisResponse       `json:"risk_analysis"`
	Source              string                     `json:"type"`
	Result              string                     `json:"result"`
	Verdict             string                     `json:"verdict"`
	Prediction          int                        `json:"prediction"`
	Confidence          float64                    `json:"confidence"`
	ID                  uuid.UUID                  `json:"id"`
	AutoReported        bool                       `json:"auto_reported"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	ID uuid.UUID `json:"id"`
}

// ListAssessmentsRequest is the input DTO for listing recent assessments.
type ListAssessmentsRequest struct {
	Limit int `json:"limit"`
}

// HistoryItem is one stored assessment summary.
type HistoryItem struct {
	CreatedAt  time.Time `json:"timestamp"`
	Flags      []string  `json:"flags"`
	Source     string    `json:"type"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	URL        string    `json:"url,omitempty"`
	Verdict    string    `json:"verdict"`
	Result     string    `json:"result"`
	RiskLevel  string    `json:"risk_level"`
	Confidence float64   `json:"confidence"`
	RiskScore  int       `json:"risk_score"`
	ID         uuid.UUID `json:"id"`
}

// ListAssessmentsResponse is the output DTO for a history listing.
type ListAssessmentsResponse struct {
	History []HistoryItem `json:"history"`
}

// ClearHistoryResponse reports how many history rows were removed.
type ClearHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// PruneHistoryResponse reports a retention run.
type PruneHistoryResponse struct {
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
}

// ResultText renders a verdict the way the dashboard shows it.
func ResultText(v valueobject.Verdict) string {
	switch v {
	case valueobject.VerdictBlacklisted:
		return "BLACKLISTED - Confirmed Scam"
	case valueobject.VerdictCriticalRisk:
		return "Critical Risk - Likely Fake"
	case valueobject.VerdictFake:
		return "Fake Job"
	case valueobject.VerdictReal:
		return "Real Job"
	default:
		return "Unverified - classifier unavailable"
	}
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.PostingAssessment) AssessmentResponse {
	risk := a.Risk()
	return AssessmentResponse{
		ID:          a.ID(),
		Source:      a.Source(),
		Prediction:  a.Verdict().Label(),
		Verdict:     a.Verdict().String(),
		Result:      ResultText(a.Verdict()),
		Confidence:  a.Confidence(),
		Explanation: a.Prediction(),
		RiskAnalysis: RiskAnalysisResponse{
			OverallScore:    risk.OverallScore,
			RiskLevel:       risk.RiskLevel.String(),
			Flags:           risk.Flags,
			PositiveSignals: risk.PositiveSignals,
			Recommendations: risk.Recommendations,
			IsBlacklisted:   risk.IsBlacklisted,
			Breakdown:       risk.Breakdown,
		},
		CompanyVerification: a.Company(),
		URLSecurity:         a.URLAnalysis(),
		BlacklistStatus:     a.Blacklist(),
		AssessedAt:          a.AssessedAt(),
	}
}

// FromHistoryRecord maps a stored summary to the response DTO.
func FromHistoryRecord(r model.HistoryRecord) HistoryItem {
	result := r.Verdict
	if v, err := valueobject.VerdictFromString(r.Verdict); err == nil {
		result = ResultText(v)
	}
	flags := r.Flags
	if flags == nil {
		flags = make([]string, 0)
	}
	return HistoryItem{
		ID:         r.ID,
		Source:     r.Source,
		Title:      r.Title,
		Company:    r.Company,
		URL:        r.URL,
		Verdict:    r.Verdict,
		Result:     result,
		Confidence: r.Confidence,
		RiskScore:  r.RiskScore,
		RiskLevel:  r.RiskLevel,
		Flags:      flags,
		CreatedAt:  r.CreatedAt,
	}
}
