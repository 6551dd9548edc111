package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobguard/jobguard/internal/application/dto"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/service"
)

// CheckDomain is the use case for analysing a URL on its own.
type CheckDomain struct {
	analyzer *service.URLAnalyzer
}

// NewCheckDomain creates a new CheckDomain use case.
func NewCheckDomain(analyzer *service.URLAnalyzer) *CheckDomain {
	return &CheckDomain{analyzer: analyzer}
}

// Execute runs the URL analyzer.
func (uc *CheckDomain) Execute(ctx context.Context, req dto.CheckDomainRequest) (model.URLAnalysis, error) {
	analysis, err := uc.analyzer.Analyze(ctx, strings.TrimSpace(req.URL))
	if err != nil {
		return model.URLAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return analysis, nil
}

// VerifyCompany is the use case for checking a company name on its own.
type VerifyCompany struct {
	verifier *service.CompanyVerifier
}

// NewVerifyCompany creates a new VerifyCompany use case.
func NewVerifyCompany(verifier *service.CompanyVerifier) *VerifyCompany {
	return &VerifyCompany{verifier: verifier}
}

// Execute runs the company verifier.
func (uc *VerifyCompany) Execute(ctx context.Context, req dto.VerifyCompanyRequest) (model.CompanyVerification, error) {
	if strings.TrimSpace(req.Company) == "" {
		return model.CompanyVerification{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	return uc.verifier.Verify(ctx, req.Company), nil
}
