package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobguard/jobguard/internal/app"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/internal/infrastructure/scheduler"
	grpcpresentation "github.com/jobguard/jobguard/internal/presentation/grpc"
	"github.com/jobguard/jobguard/internal/presentation/rest"
	"github.com/jobguard/jobguard/pkg/observability"
)

const serviceName = "jobguard"

func main() {
	if err := run(); err != nil {
		slog.Error("jobguardd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	logger.Info("starting jobguardd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"storage", cfg.Storage.Driver,
		"broker", cfg.Events.Broker,
	)

	// Tracing is optional.
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	meter := meterProvider.Meter(serviceName)

	application, err := app.New(ctx, cfg, meter, logger, app.Overrides{})
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to close resources", "error", err)
		}
	}()

	// Retention job.
	sched := scheduler.New(logger, meter)
	if err := sched.Add(scheduler.Job{
		Name:    "prune-history",
		Spec:    cfg.Retention.Schedule,
		Timeout: time.Minute,
		Run: func(ctx context.Context) error {
			resp, err := application.UseCases.PruneHistory.Execute(ctx)
			if err != nil {
				return err
			}
			logger.Info("history pruned", "cutoff", resp.Cutoff, "deleted", resp.Deleted)
			return nil
		},
	}); err != nil {
		return err
	}
	sched.Start()

	grpcHandler := grpcpresentation.NewHandler(application.UseCases, application.JWT != nil, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.Auth.TLSCertFile,
		TLSKeyFile:  cfg.Auth.TLSKeyFile,
		Reflection:  cfg.Auth.Reflection,
	}, application.JWT, logger)

	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			UseCases:   application.UseCases,
			JWT:        application.JWT,
			Metrics:    metricsHandler,
			Timeout:    cfg.Assessment.Timeout + 5*time.Second,
			Ready:      application.Stores.Ping,
			RateLimit:  cfg.HTTPRateLimit,
			TrustProxy: cfg.HTTPTrustProxy,
			Logger:     logger,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Assessment.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("jobguardd started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"auth", application.JWT != nil,
		"next_prune", sched.Next("prune-history"),
	)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	logger.Info("shutting down jobguardd")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown error", "error", err)
	}

	logger.Info("jobguardd stopped")
	return serveErr
}
