package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/PredictionContest_Go/internal/cache/redis"
	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
)

// InitializeLeaderboardCache builds the CACHE_BACKEND. The returned close
// func is never nil.
func InitializeLeaderboardCache(ctx context.Context, cfg *config.Config) (leaderboard.Cache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.CacheBackendNone:
		slog.Info(LogMsgCacheInitialized, "backend", cfg.CacheBackend)
		return leaderboard.NewNoopCache(), noop, nil

	case config.CacheBackendLRU:
		slog.Info(LogMsgCacheInitialized, "backend", cfg.CacheBackend,
			"size", cfg.LeaderboardCacheSize, "ttl", cfg.LeaderboardCacheTTL)
		return leaderboard.NewLRUCache(cfg.LeaderboardCacheSize, cfg.LeaderboardCacheTTL), noop, nil

	case config.CacheBackendRedis:
		client, err := redis.New(ctx, redis.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				slog.Error(ErrMsgFailedCloseRedis, "error", err)
			}
		}
		slog.Info(LogMsgCacheInitialized, "backend", cfg.CacheBackend,
			"addr", cfg.RedisAddr, "ttl", cfg.LeaderboardCacheTTL)
		return redis.NewLeaderboardCache(client, cfg.LeaderboardCacheTTL, leaderboard.CacheSchemaVersion), closeFn, nil

	default:
		return nil, noop, fmt.Errorf("%s: %q", ErrMsgUnknownCache, cfg.CacheBackend)
	}
}
