package app

import (
	"context"
	"log/slog"

	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/internal/infrastructure/gemini"
	"github.com/jobguard/jobguard/internal/infrastructure/kafka"
	"github.com/jobguard/jobguard/internal/infrastructure/messaging"
	"github.com/jobguard/jobguard/internal/infrastructure/ml"
	"github.com/jobguard/jobguard/internal/infrastructure/nats"
	"github.com/jobguard/jobguard/internal/infrastructure/provider"
	"github.com/jobguard/jobguard/internal/infrastructure/scraper"
	pkgkafka "github.com/jobguard/jobguard/pkg/kafka"
)

// OpenPublisher connects the configured event broker.
func OpenPublisher(cfg config.EventsConfig, logger *slog.Logger) (port.EventPublisher, func() error, error) {
	switch cfg.Broker {
	case config.BrokerKafka:
		producer, err := pkgkafka.NewProducer(kafkaProducerConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing events to kafka",
			"topic", cfg.KafkaTopic,
			"tls", cfg.KafkaTLS,
			"sasl", cfg.KafkaSASLMechanism,
		)
		return kafka.NewPublisher(producer, cfg.KafkaTopic, logger), producer.Close, nil

	case config.BrokerNATS:
		conn, err := nats.Connect(cfg.NATSURL, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing events to nats", "subject", cfg.NATSSubject)
		return nats.NewPublisher(conn, cfg.NATSSubject, logger), func() error { return conn.Drain() }, nil

	default:
		return messaging.NewLogPublisher(logger), func() error { return nil }, nil
	}
}

func kafkaProducerConfig(cfg config.EventsConfig) pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       pkgkafka.ParseBrokers(cfg.KafkaBrokers),
		TLS:           cfg.KafkaTLS,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
	}
}

type providers struct {
	resolver   port.Resolver
	domains    port.DomainRegistry
	enricher   port.CompanyEnricher
	searcher   port.CompanySearcher
	scraper    port.Scraper
	classifier port.Classifier
	summarizer port.Summarizer
}

// newProviders builds every external adapter. Missing credentials degrade to
// adapters that answer ErrNotConfigured.
func newProviders(ctx context.Context, cfg config.Config, logger *slog.Logger, ov Overrides) providers {
	httpClient := provider.NewHTTPClient(cfg.Assessment.LookupTimeout)
	p := providers{
		resolver:   ov.Resolver,
		domains:    ov.DomainRegistry,
		enricher:   ov.Enricher,
		searcher:   ov.Searcher,
		scraper:    ov.Scraper,
		classifier: ov.Classifier,
		summarizer: ov.Summarizer,
	}

	if p.resolver == nil {
		p.resolver = provider.NewNetResolver()
	}
	if p.domains == nil {
		p.domains = provider.NewRDAPRegistry(httpClient, cfg.Providers.RDAPBaseURL, cfg.Providers.WhoisEnabled)
	}
	if p.enricher == nil {
		p.enricher = provider.NewClearbitEnricher(httpClient, cfg.Providers.ClearbitAPIKey)
	}
	if p.searcher == nil {
		var searchers []port.CompanySearcher
		if google, err := provider.NewGoogleSearcher(ctx, cfg.Providers.GoogleAPIKey, cfg.Providers.GoogleCSEID); err == nil {
			searchers = append(searchers, google)
		}
		if cfg.Providers.WebSearchEnabled {
			searchers = append(searchers, provider.NewDuckDuckGoSearcher(httpClient, cfg.Scraper.UserAgent))
		}
		if len(searchers) == 0 {
			p.searcher = provider.UnconfiguredSearcher{}
		} else {
			p.searcher = provider.NewFallbackSearcher(logger, searchers...)
		}
	}
	if p.scraper == nil {
		if cfg.Scraper.Mode == config.ScraperChrome {
			p.scraper = scraper.NewChromeScraper(cfg.Scraper.UserAgent, logger)
		} else {
			p.scraper = scraper.NewHTTPScraper(nil, cfg.Scraper.UserAgent, logger)
		}
	}
	if p.classifier == nil {
		classifier, err := ml.Load(cfg.Assessment.ModelPath)
		if err != nil {
			logger.Warn("classifier unavailable, predictions disabled", "path", cfg.Assessment.ModelPath, "error", err)
			p.classifier = ml.Unconfigured{}
		} else {
			logger.Info("classifier loaded", "model", classifier.Name())
			p.classifier = classifier
		}
	}
	if p.summarizer == nil {
		p.summarizer = gemini.Unconfigured{}
		if cfg.Providers.GeminiAPIKey != "" {
			client, err := gemini.NewClient(ctx, cfg.Providers.GeminiAPIKey)
			if err != nil {
				logger.Warn("gemini unavailable, using templated explanations", "error", err)
			} else {
				p.summarizer = gemini.NewSummarizer(client.Models, cfg.Providers.GeminiModel)
			}
		}
	}
	return p
}
