package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/database"
	"github.com/osse101/PredictionContest_Go/internal/database/memory"
	"github.com/osse101/PredictionContest_Go/internal/database/postgres"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

// Storage holds the repositories for the configured backend.
// Pool is nil for the memory backend; Health is always set.
type Storage struct {
	Contest  repository.Contest
	EventLog eventlog.Repository
	Health   database.Pinger
	Pool     *pgxpool.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// InitializeStorage connects the STORAGE_BACKEND and applies migrations when
// RUN_MIGRATIONS is set
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		store := memory.NewStore()
		slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend)
		return &Storage{
			Contest:  store,
			EventLog: memory.NewEventLog(),
			Health:   store,
		}, nil

	case config.StorageBackendPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if cfg.RunMigrations {
			if err := database.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
			}
			slog.Info(LogMsgMigrationsApplied)
		}
		slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend, "db_host", cfg.DBHost, "db_name", cfg.DBName)
		return &Storage{
			Contest:  postgres.NewContestRepository(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			Health:   pool,
			Pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorage, cfg.StorageBackend)
	}
}
