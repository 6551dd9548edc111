// Package apptest builds an App on in-memory storage with every network
// adapter replaced by an offline stub.
package apptest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/domain/model"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/internal/infrastructure/gemini"
	"github.com/jobguard/jobguard/internal/infrastructure/messaging"
	"github.com/jobguard/jobguard/internal/infrastructure/provider"
	"github.com/jobguard/jobguard/pkg/observability"
)

// Secret signs test tokens when Config enables auth.
const Secret = "apptest-secret"

// Config returns a memory-backed configuration with no external services.
func Config() config.Config {
	return config.Config{
		Environment: "test",
		LogLevel:    "error",
		Storage:     config.StorageConfig{Driver: config.StorageMemory},
		Events:      config.EventsConfig{Broker: config.BrokerLog},
		Auth:        config.AuthConfig{JWTIssuer: "jobguard-test"},
		Assessment: config.AssessmentConfig{
			Timeout:              2 * time.Second,
			LookupTimeout:        time.Second,
			AnalyticsCacheTTL:    time.Minute,
			AutoReportConfidence: 85,
		},
		Scraper:   config.ScraperConfig{Mode: config.ScraperHTTP},
		Retention: config.RetentionConfig{History: 24 * time.Hour, Schedule: "@daily"},
	}
}

// Resolver answers every host with a documentation address.
type Resolver struct{}

func (Resolver) Resolve(context.Context, string) ([]string, error) {
	return []string{"203.0.113.10"}, nil
}

// Scraper returns Posting for every URL, or Err when set.
type Scraper struct {
	Posting model.Posting
	Err     error
}

func (s Scraper) Scrape(_ context.Context, url string) (model.Posting, error) {
	if s.Err != nil {
		return model.Posting{}, s.Err
	}
	p := s.Posting
	p.URL = url
	return p, nil
}

type unknownRegistry struct{}

func (unknownRegistry) Registration(context.Context, string) (*model.DomainRegistration, error) {
	return nil, port.ErrNotConfigured
}

type unknownEnricher struct{}

func (unknownEnricher) LookupCompany(context.Context, string) (*model.CompanyProfile, error) {
	return nil, port.ErrNotConfigured
}

// Overrides returns the offline adapters. The scraper always fails.
func Overrides() app.Overrides {
	return app.Overrides{
		Resolver:       Resolver{},
		DomainRegistry: unknownRegistry{},
		Enricher:       unknownEnricher{},
		Searcher:       provider.UnconfiguredSearcher{},
		Scraper:        Scraper{Err: errors.New("scraping disabled in tests")},
		Summarizer:     gemini.Unconfigured{},
		Publisher:      messaging.NewLogPublisher(observability.NopLogger()),
	}
}

// New builds an App from cfg and ov and closes it when the test ends.
func New(t *testing.T, cfg config.Config, ov app.Overrides) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg, nil, observability.NopLogger(), ov)
	if err != nil {
		t.Fatalf("apptest: build app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}
