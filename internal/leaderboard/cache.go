package leaderboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// Cache stores computed leaderboards. Get returns domain.ErrCacheMiss when
// the contest has no live entry.
type Cache interface {
	Get(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error)
	Set(ctx context.Context, contestID uuid.UUID, entries []domain.LeaderboardEntry) error
	Invalidate(ctx context.Context, contestID uuid.UUID) error
	Backend() string
}

type cachedBoard struct {
	version string
	entries []domain.LeaderboardEntry
}

// lruCache is an in-process cache with per-entry expiry
type lruCache struct {
	lru *expirable.LRU[uuid.UUID, *cachedBoard]
}

// NewLRUCache creates an in-process cache holding up to size boards for ttl
func NewLRUCache(size int, ttl time.Duration) Cache {
	return &lruCache{
		lru: expirable.NewLRU[uuid.UUID, *cachedBoard](size, nil, ttl),
	}
}

func (c *lruCache) Get(_ context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	entry, found := c.lru.Get(contestID)
	if !found {
		return nil, domain.ErrCacheMiss
	}
	if entry.version != CacheSchemaVersion {
		c.lru.Remove(contestID)
		return nil, domain.ErrCacheMiss
	}
	return cloneEntries(entry.entries), nil
}

func (c *lruCache) Set(_ context.Context, contestID uuid.UUID, entries []domain.LeaderboardEntry) error {
	c.lru.Add(contestID, &cachedBoard{version: CacheSchemaVersion, entries: cloneEntries(entries)})
	return nil
}

func (c *lruCache) Invalidate(_ context.Context, contestID uuid.UUID) error {
	c.lru.Remove(contestID)
	return nil
}

func (c *lruCache) Backend() string { return BackendLRU }

// noopCache never holds anything
type noopCache struct{}

// NewNoopCache returns a cache that always misses
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(context.Context, uuid.UUID) ([]domain.LeaderboardEntry, error) {
	return nil, domain.ErrCacheMiss
}

func (noopCache) Set(context.Context, uuid.UUID, []domain.LeaderboardEntry) error {
	return nil
}

func (noopCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

func (noopCache) Backend() string {
	return BackendNone
}

func cloneEntries(in []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	if in == nil {
		return nil
	}
	return append([]domain.LeaderboardEntry(nil), in...)
}
