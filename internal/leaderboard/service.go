// Package leaderboard derives contest standings from scored submissions.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
	"github.com/osse101/PredictionContest_Go/internal/repository"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

// Service defines the interface for leaderboard operations
type Service interface {
	// Recompute rebuilds the leaderboard from storage, bypassing the cache
	Recompute(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error)

	// Get returns the cached leaderboard, recomputing on a miss
	Get(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error)

	// Invalidate drops the cached leaderboard for a contest
	Invalidate(ctx context.Context, contestID uuid.UUID)

	// Subscribe wires cache invalidation to scoring events
	Subscribe(bus event.Bus)
}

type service struct {
	repo    repository.Contest
	streaks streak.Tracker
	cache   Cache
	group   singleflight.Group

	// generations counts invalidations per contest; a recompute that saw an
	// older generation must not be cached
	generations sync.Map
}

// NewService creates a new leaderboard service
func NewService(repo repository.Contest, streaks streak.Tracker, cache Cache) Service {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &service{
		repo:    repo,
		streaks: streaks,
		cache:   cache,
	}
}

func (s *service) Recompute(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	contest, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadContest, err)
	}
	if contest == nil {
		return nil, domain.ErrContestNotFound
	}

	// A finalized contest is frozen at its result snapshot
	if contest.State == domain.ContestStateFinalized {
		result, err := s.repo.GetContestResult(ctx, contestID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadResult, err)
		}
		if result != nil {
			return result.Leaderboard, nil
		}
	}

	participants, err := s.repo.GetParticipants(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadParticipants, err)
	}
	subs, err := s.repo.GetContestSubmissions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadSubmissions, err)
	}
	streaks, err := s.streaks.Snapshot(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadStreaks, err)
	}

	entries := Build(participants, subs, streaks)
	logger.FromContext(ctx).Debug(LogMsgRecomputed, "contest_id", contestID, "entries", len(entries))
	return entries, nil
}

func (s *service) Get(ctx context.Context, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)
	backend := s.cache.Backend()

	entries, err := s.cache.Get(ctx, contestID)
	if err == nil {
		metrics.LeaderboardCache.WithLabelValues(backend, metrics.CacheHit).Inc()
		return entries, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		log.Warn(LogMsgCacheReadFailed, "contest_id", contestID, "error", err)
	}
	metrics.LeaderboardCache.WithLabelValues(backend, metrics.CacheMiss).Inc()

	v, err, _ := s.group.Do(contestID.String(), func() (interface{}, error) {
		gen := s.generation(contestID)
		seen := gen.Load()
		entries, err := s.Recompute(ctx, contestID)
		if err != nil {
			return nil, err
		}
		if gen.Load() != seen {
			log.Debug(LogMsgStaleRecompute, "contest_id", contestID)
			return entries, nil
		}
		if err := s.cache.Set(ctx, contestID, entries); err != nil {
			log.Warn(LogMsgCacheWriteFailed, "contest_id", contestID, "error", err)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneEntries(v.([]domain.LeaderboardEntry)), nil
}

func (s *service) Invalidate(ctx context.Context, contestID uuid.UUID) {
	log := logger.FromContext(ctx)
	s.generation(contestID).Add(1)
	s.group.Forget(contestID.String())
	if err := s.cache.Invalidate(ctx, contestID); err != nil {
		log.Warn(LogMsgInvalidateFailed, "contest_id", contestID, "error", err)
		return
	}
	log.Debug(LogMsgCacheInvalidated, "contest_id", contestID)
}

func (s *service) generation(contestID uuid.UUID) *atomic.Uint64 {
	v, _ := s.generations.LoadOrStore(contestID, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

func (s *service) Subscribe(bus event.Bus) {
	bus.Subscribe(event.QuestionScored, s.handleInvalidation)
	bus.Subscribe(event.ContestFinalized, s.handleInvalidation)
	bus.Subscribe(event.PredictionSubmitted, s.handleSubmission)
}

func (s *service) handleInvalidation(ctx context.Context, evt event.Event) error {
	contestID, err := uuid.Parse(event.ContestIDFromEvent(evt))
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgEventMissingID, "type", evt.Type)
		return nil
	}
	s.Invalidate(ctx, contestID)
	return nil
}

// handleSubmission invalidates when a submission may have added a participant
func (s *service) handleSubmission(ctx context.Context, evt event.Event) error {
	if p, ok := evt.Payload.(domain.PredictionSubmittedPayload); ok && p.Replaced {
		return nil
	}
	return s.handleInvalidation(ctx, evt)
}
