package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/database/memory"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
)

func TestInitializeStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := InitializeStorage(ctx, &config.Config{StorageBackend: config.StorageBackendMemory})
		require.NoError(t, err)
		defer s.Close()

		assert.IsType(t, &memory.Store{}, s.Contest)
		assert.IsType(t, &memory.EventLog{}, s.EventLog)
		assert.Nil(t, s.Pool)
		assert.NoError(t, s.Health.Ping(ctx))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := InitializeStorage(ctx, &config.Config{StorageBackend: "sqlite"})
		assert.ErrorContains(t, err, ErrMsgUnknownStorage)
	})
}

func TestInitializeLeaderboardCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		backend string
		want    string
	}{
		{config.CacheBackendLRU, leaderboard.BackendLRU},
		{config.CacheBackendNone, leaderboard.NewNoopCache().Backend()},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cache, closeFn, err := InitializeLeaderboardCache(ctx, &config.Config{
				CacheBackend:         tt.backend,
				LeaderboardCacheSize: 4,
				LeaderboardCacheTTL:  config.DefaultLeaderboardCacheTTL,
			})
			require.NoError(t, err)
			defer closeFn()
			assert.Equal(t, tt.want, cache.Backend())
		})
	}

	t.Run("unknown backend", func(t *testing.T) {
		_, closeFn, err := InitializeLeaderboardCache(ctx, &config.Config{CacheBackend: "memcached"})
		assert.ErrorContains(t, err, ErrMsgUnknownCache)
		assert.NotNil(t, closeFn)
	})
}

func TestSeedContests_EmptyDirDisabled(t *testing.T) {
	assert.NoError(t, SeedContests(context.Background(), "", nil))
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount-1)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestNewEventSystem(t *testing.T) {
	cfg := &config.Config{EventDeadLetterPath: filepath.Join(t.TempDir(), "dl", "events.jsonl")}

	events, err := NewEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, events.Bus)
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	received := 0
	events.Bus.Subscribe(event.ContestCreated, func(context.Context, event.Event) error {
		received++
		return nil
	})
	require.NoError(t, events.Publisher.Publish(context.Background(), event.Event{Type: event.ContestCreated}))
	assert.Equal(t, 1, received, "publisher delivers through the bus")
	assert.NoError(t, events.Publisher.Shutdown(context.Background()))
}
