package port

import (
	"context"
	"errors"

	"github.com/jobguard/jobguard/internal/domain/model"
)

// ErrNotConfigured is returned by capability adapters whose credentials or
// data source are absent. Callers treat it as "unknown".
var ErrNotConfigured = errors.New("capability not configured")

// ErrDomainNotFound is returned by a Resolver when the name does not exist.
// Any other resolver error means the answer is unknown.
var ErrDomainNotFound = errors.New("domain does not exist")

// Classifier is the trained binary text classifier.
type Classifier interface {
	// PredictLabel returns 0 (fraudulent) or 1 (legitimate) and the
	// probability of the returned label in [0, 1].
	PredictLabel(ctx context.Context, text string) (label int, probability float64, err error)

	// TokenContributions returns up to n tokens ranked by absolute pull.
	TokenContributions(ctx context.Context, text string, n int) ([]model.TokenContribution, error)
}

// SummaryRequest is the input to a prose summariser.
type SummaryRequest struct {
	Text          string
	Label         int
	Confidence    float64
	Contributions []model.TokenContribution
}

// Summarizer explains a prediction in prose.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// CompanyEnricher looks a company up in an external company-data source.
// It returns nil, nil when the source does not know the company.
type CompanyEnricher interface {
	LookupCompany(ctx context.Context, name string) (*model.CompanyProfile, error)
}

// CompanySearcher finds a company's official website. It returns an empty
// string when the search has no results.
type CompanySearcher interface {
	SearchWebsite(ctx context.Context, company string) (string, error)
}

// DomainRegistry reports registration data for a domain. It returns nil, nil
// when the registry has no creation date.
type DomainRegistry interface {
	Registration(ctx context.Context, domain string) (*model.DomainRegistration, error)
}

// Resolver checks that a host name resolves.
type Resolver interface {
	// Resolve returns the addresses, ErrDomainNotFound for NXDOMAIN, or
	// another error when the answer is unknown.
	Resolve(ctx context.Context, host string) ([]string, error)
}

// Scraper extracts a posting from a job page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (model.Posting, error)
}
