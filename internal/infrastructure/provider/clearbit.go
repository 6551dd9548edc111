package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
)

const clearbitBaseURL = "https://company.clearbit.com"

var _ port.CompanyEnricher = (*ClearbitEnricher)(nil)

// ClearbitEnricher implements port.CompanyEnricher with the Clearbit company API.
type ClearbitEnricher struct {
	client  doer
	apiKey  string
	baseURL string
}

// NewClearbitEnricher creates an enricher. An empty key yields ErrNotConfigured on every call.
func NewClearbitEnricher(client *http.Client, apiKey string) *ClearbitEnricher {
	return &ClearbitEnricher{client: client, apiKey: apiKey, baseURL: clearbitBaseURL}
}

// WithBaseURL points the enricher at another host.
func (c *ClearbitEnricher) WithBaseURL(u string) *ClearbitEnricher {
	c.baseURL = u
	return c
}

type clearbitCompany struct {
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Location string `json:"location"`
	Founded  int    `json:"foundedYear"`
	Category struct {
		Industry string `json:"industry"`
	} `json:"category"`
	Metrics struct {
		Employees int `json:"employees"`
	} `json:"metrics"`
}

// LookupCompany finds a company by name. Unknown companies return nil, nil.
func (c *ClearbitEnricher) LookupCompany(ctx context.Context, name string) (*model.CompanyProfile, error) {
	if c.apiKey == "" {
		return nil, port.ErrNotConfigured
	}

	endpoint := c.baseURL + "/v2/companies/find?" + url.Values{"name": {name}}.Encode()
	body, err := fetch(ctx, c.client, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("clearbit lookup: %w", err)
	}

	var company clearbitCompany
	if err := json.Unmarshal(body, &company); err != nil {
		return nil, fmt.Errorf("clearbit decode: %w", err)
	}
	if company.Name == "" && company.Domain == "" {
		return nil, nil
	}

	return &model.CompanyProfile{
		Name:      company.Name,
		Domain:    company.Domain,
		Industry:  company.Category.Industry,
		Employees: company.Metrics.Employees,
		Founded:   company.Founded,
		Location:  company.Location,
	}, nil
}
