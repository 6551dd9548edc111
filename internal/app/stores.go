package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobguard/jobguard/internal/domain/port"
	"github.com/jobguard/jobguard/internal/infrastructure/config"
	"github.com/jobguard/jobguard/internal/infrastructure/memory"
	"github.com/jobguard/jobguard/internal/infrastructure/postgres"
	"github.com/jobguard/jobguard/internal/infrastructure/sqlite"
	pkgpostgres "github.com/jobguard/jobguard/pkg/postgres"
)

// Stores groups the repositories of one storage driver.
type Stores struct {
	Blacklist port.BlacklistRepository
	History   port.HistoryRepository
	Feedback  port.FeedbackRepository
	Reports   port.ReportRepository
	// Ping reports whether the backing database answers.
	Ping func(ctx context.Context) error
}

// OpenStores connects the configured driver. Postgres is migrated before use.
func OpenStores(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Stores, func() error, error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return Stores{}, nil, err
		}
		pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{
			URL:             cfg.DatabaseURL,
			ApplicationName: "jobguard",
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
		})
		if err != nil {
			return Stores{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("connected to postgres")
		return Stores{
			Blacklist: postgres.NewBlacklistRepository(pool),
			History:   postgres.NewHistoryRepository(pool),
			Feedback:  postgres.NewFeedbackRepository(pool),
			Reports:   postgres.NewReportRepository(pool),
			Ping: func(ctx context.Context) error {
				return pkgpostgres.HealthCheck(ctx, pool)
			},
		}, func() error { pool.Close(); return nil }, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Stores{}, nil, err
		}
		logger.Info("opened sqlite database", "path", cfg.SQLitePath)
		return Stores{
			Blacklist: sqlite.NewBlacklistRepository(db),
			History:   sqlite.NewHistoryRepository(db),
			Feedback:  sqlite.NewFeedbackRepository(db),
			Reports:   sqlite.NewReportRepository(db),
			Ping:      db.PingContext,
		}, db.Close, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return Stores{
			Blacklist: memory.NewBlacklistStore(0),
			History:   memory.NewHistoryStore(),
			Feedback:  memory.NewFeedbackStore(),
			Reports:   memory.NewReportStore(),
			Ping:      func(context.Context) error { return nil },
		}, func() error { return nil }, nil

	default:
		return Stores{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
