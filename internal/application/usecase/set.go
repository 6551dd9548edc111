package usecase

// Set bundles the use cases the transports serve.
type Set struct {
	AssessPosting     *AssessPosting
	AssessURL         *AssessURL
	GetAssessment     *GetAssessment
	ListAssessments   *ListAssessments
	ClearHistory      *ClearHistory
	PruneHistory      *PruneHistory
	SubmitFeedback    *SubmitFeedback
	ReportScam        *ReportScam
	CheckBlacklist    *CheckBlacklist
	BlacklistOverview *BlacklistOverview
	CheckDomain       *CheckDomain
	VerifyCompany     *VerifyCompany
	GetAnalytics      *GetAnalytics
}
