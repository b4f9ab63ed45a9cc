package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

const backendName = "redis"

// cachedBoard carries the schema version. A mismatch reads as a miss.
type cachedBoard struct {
	Version string                    `json:"version"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// LeaderboardCache stores leaderboards as JSON strings with a TTL.
//
// Key schema:
//
//	leaderboard:{contestID} - JSON cachedBoard
type LeaderboardCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	version string
}

// NewLeaderboardCache creates a LeaderboardCache backed by the given Client
func NewLeaderboardCache(c *Client, ttl time.Duration, version string) *LeaderboardCache {
	return &LeaderboardCache{rdb: c.rdb, ttl: ttl, version: version}
}

func leaderboardKey(id uuid.UUID) string { return "leaderboard:" + id.String() }

// Get returns domain.ErrCacheMiss when the key is absent or from another schema
func (lc *LeaderboardCache) Get(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	data, err := lc.rdb.Get(ctx, leaderboardKey(contestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis: get leaderboard %s: %w", contestID, err)
	}

	var board cachedBoard
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("redis: unmarshal leaderboard %s: %w", contestID, err)
	}
	if board.Version != lc.version {
		return nil, domain.ErrCacheMiss
	}
	return board.Entries, nil
}

// Set stores the leaderboard with the configured TTL
func (lc *LeaderboardCache) Set(ctx context.Context, contestID uuid.UUID, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(cachedBoard{Version: lc.version, Entries: entries})
	if err != nil {
		return fmt.Errorf("redis: marshal leaderboard %s: %w", contestID, err)
	}
	if err := lc.rdb.Set(ctx, leaderboardKey(contestID), data, lc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set leaderboard %s: %w", contestID, err)
	}
	return nil
}

// Invalidate deletes the contest's leaderboard
func (lc *LeaderboardCache) Invalidate(ctx context.Context, contestID uuid.UUID) error {
	if err := lc.rdb.Del(ctx, leaderboardKey(contestID)).Err(); err != nil {
		return fmt.Errorf("redis: delete leaderboard %s: %w", contestID, err)
	}
	return nil
}

// Backend names the cache for metrics
func (lc *LeaderboardCache) Backend() string { return backendName }
