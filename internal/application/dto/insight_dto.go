package dto

import (
	"github.com/google/uuid"

	"github.com/jobguard/jobguard/internal/domain/model"
)

// CheckDomainRequest is the input DTO for a standalone URL analysis.
type CheckDomainRequest struct {
	URL string `json:"url"`
}

// VerifyCompanyRequest is the input DTO for a standalone company check.
type VerifyCompanyRequest struct {
	Company string `json:"company"`
}

// SubmitFeedbackRequest is the input DTO for the SubmitFeedback use case.
// Either AssessmentID or Title identifies what the feedback is about.
type SubmitFeedbackRequest struct {
	AssessmentID *uuid.UUID `json:"assessment_id,omitempty"`
	Title        string     `json:"title"`
	ActualResult string     `json:"actual_result,omitempty"`
	Correct      bool       `json:"correct"`
}

// SubmitFeedbackResponse acknowledges feedback.
type SubmitFeedbackResponse struct {
	Message string `json:"message"`
}

// AnalyticsResponse is the dashboard payload.
type AnalyticsResponse struct {
	model.Analytics
	Cached bool `json:"cached"`
}
