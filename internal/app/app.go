// Package app wires configuration into storage, brokers, providers and use
// cases. The daemon and the CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jobguard/jobguard/internal/application/usecase"
	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/domain/registry"
	"github.com/jobguard/jobguard/internal/domain/service"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/pkg/auth"
)

const tokenTTL = 24 * time.Hour

// Overrides replaces network-facing adapters, mostly in tests. Nil fields
// keep the configured adapter.
type Overrides struct {
	Resolver       port.Resolver
	DomainRegistry port.DomainRegistry
	Enricher       port.CompanyEnricher
	Searcher       port.CompanySearcher
	Scraper        port.Scraper
	Classifier     port.Classifier
	Summarizer     port.Summarizer
	Publisher      port.EventPublisher
}

// App holds the wired use cases and the resources behind them.
type App struct {
	UseCases usecase.Set
	// JWT is nil when no key is configured.
	JWT     *auth.JWTService
	Stores  Stores
	Metrics *usecase.Metrics

	closers []func() error
	logger  *slog.Logger
}

// New builds the application. meter may be nil to skip metrics.
func New(ctx context.Context, cfg config.Config, meter metric.Meter, logger *slog.Logger, ov Overrides) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{logger: logger}

	stores, closeStores, err := OpenStores(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	a.Stores = stores
	a.closers = append(a.closers, closeStores)

	publisher := ov.Publisher
	if publisher == nil {
		var closePublisher func() error
		publisher, closePublisher, err = OpenPublisher(cfg.Events, logger)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, closePublisher)
	}

	if meter != nil {
		if a.Metrics, err = usecase.NewMetrics(meter); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	if cfg.AuthEnabled() {
		if a.JWT, err = NewJWTService(cfg.Auth); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	p := newProviders(ctx, cfg, logger, ov)
	reg := registry.Default()
	lookup := cfg.Assessment.LookupTimeout

	inspector := service.NewDomainInspector(p.resolver, p.domains, reg, lookup, logger)
	textAnalyzer := service.NewTextAnalyzer(reg)
	verifier := service.NewCompanyVerifier(reg, p.enricher, p.searcher, inspector, lookup, logger)
	urlAnalyzer := service.NewURLAnalyzer(reg, inspector)
	blacklist := service.NewBlacklistRegistry(stores.Blacklist, reg)
	classifier := service.NewClassifierAdapter(p.classifier, p.summarizer, lookup, logger)

	engine := service.NewEngine(service.NewAggregator(), logger, usecase.TraceSources(
		service.NewTextSource(textAnalyzer),
		service.NewCompanySource(verifier),
		service.NewURLSource(urlAnalyzer),
		service.NewBlacklistSource(blacklist),
		service.NewClassifierSource(classifier),
	)...)

	assess := usecase.NewAssessPosting(engine, stores.History, stores.Reports, publisher, a.Metrics,
		usecase.AssessPostingConfig{
			Timeout:              cfg.Assessment.Timeout,
			AutoReportConfidence: cfg.Assessment.AutoReportConfidence,
		}, logger)

	a.UseCases = usecase.Set{
		AssessPosting:     assess,
		AssessURL:         usecase.NewAssessURL(assess, p.scraper, blacklist, logger),
		GetAssessment:     usecase.NewGetAssessment(stores.History),
		ListAssessments:   usecase.NewListAssessments(stores.History),
		ClearHistory:      usecase.NewClearHistory(stores.History),
		PruneHistory:      usecase.NewPruneHistory(stores.History, cfg.Retention.History),
		SubmitFeedback:    usecase.NewSubmitFeedback(stores.Feedback, stores.History, logger),
		ReportScam:        usecase.NewReportScam(stores.Reports, blacklist, publisher, a.Metrics, logger),
		CheckBlacklist:    usecase.NewCheckBlacklist(blacklist),
		BlacklistOverview: usecase.NewBlacklistOverview(blacklist),
		CheckDomain:       usecase.NewCheckDomain(urlAnalyzer),
		VerifyCompany:     usecase.NewVerifyCompany(verifier),
		GetAnalytics:      usecase.NewGetAnalytics(stores.History, stores.Feedback, stores.Reports, blacklist, cfg.Assessment.AnalyticsCacheTTL),
	}
	return a, nil
}

// Close releases stores and broker connections in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewJWTService builds the token service. A public key file wins over the
// shared secret and makes the service validation-only.
func NewJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: tokenTTL,
	}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt service: %w", err)
	}
	return svc, nil
}
