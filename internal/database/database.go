package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// Pinger is the slice of a store the readiness probe needs
type Pinger interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig sizes the contest store's connection pool
type PoolConfig struct {
	ConnString      string
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	// ConnectAttempts is how many pings are tried before giving up.
	// Zero means one.
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

// PoolConfigFrom builds a PoolConfig with the default connect retry policy
func PoolConfigFrom(connString string, maxConns int, idle, life time.Duration) PoolConfig {
	return PoolConfig{
		ConnString:      connString,
		MaxConns:        maxConns,
		MaxConnIdleTime: idle,
		MaxConnLifetime: life,
		ConnectAttempts: DefaultConnectAttempts,
		ConnectBackoff:  DefaultConnectBackoff,
	}
}

// NewPool opens the contest store pool and waits until Postgres answers a
// ping. Each failed ping doubles the wait before the next attempt.
func NewPool(ctx context.Context, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseConnString, err)
	}

	maxConns := min(cfg.MaxConns, math.MaxInt32)
	if maxConns < MinPoolConns {
		maxConns = MinPoolConns
	}
	pgCfg.MaxConns = int32(maxConns)
	pgCfg.MinConns = MinPoolConns
	pgCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	pgCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreatePool, err)
	}

	if err := waitForDatabase(ctx, pool, cfg.ConnectAttempts, cfg.ConnectBackoff); err != nil {
		pool.Close()
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgConnected,
		"host", pgCfg.ConnConfig.Host,
		"database", pgCfg.ConnConfig.Database,
		"max_conns", pgCfg.MaxConns)
	return pool, nil
}

func waitForDatabase(ctx context.Context, p Pinger, attempts int, backoff time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
		lastErr = p.Ping(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		log.Warn(LogMsgPingRetry, "attempt", attempt, "of", attempts, "wait", backoff, "error", lastErr)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", ErrMsgPingDatabase, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%s after %d attempts: %w", ErrMsgPingDatabase, attempts, lastErr)
}
