package leaderboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/database/memory"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

// countingStore counts full submission scans
type countingStore struct {
	*memory.Store
	scans atomic.Int32
	delay time.Duration
}

func (c *countingStore) GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	c.scans.Add(1)
	time.Sleep(c.delay)
	return c.Store.GetContestSubmissions(ctx, contestID)
}

func setup(t *testing.T) (*countingStore, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	store := &countingStore{Store: memory.NewStore()}

	contest := &domain.Contest{ID: uuid.New(), Name: "LB", StartsAt: base, EndsAt: base.Add(time.Hour), State: domain.ContestStateActive}
	q := domain.PredictionQuestion{
		ID: uuid.New(), ContestID: contest.ID, Ordinal: 1,
		Options: []domain.PredictionOption{{ID: "a", Label: "A"}}, Status: domain.QuestionStatusOpen,
	}
	require.NoError(t, store.CreateContest(ctx, contest, []domain.PredictionQuestion{q}))

	tx, err := store.BeginContestTx(ctx)
	require.NoError(t, err)
	_, _, err = tx.UpsertSubmission(ctx, &domain.PredictionSubmission{
		ID: uuid.New(), ContestID: contest.ID, QuestionID: q.ID, ParticipantID: "p1", Choice: "a", SubmittedAt: base, UpdatedAt: base,
	})
	require.NoError(t, err)
	require.NoError(t, tx.EnsureParticipant(ctx, contest.ID, "p1", base))
	require.NoError(t, tx.Commit(ctx))
	return store, contest.ID
}

func TestService_GetCachesUntilInvalidated(t *testing.T) {
	store, contestID := setup(t)
	svc := NewService(store, streak.NewTracker(store), NewLRUCache(16, time.Minute))
	ctx := context.Background()

	first, err := svc.Get(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.Get(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.scans.Load())

	bus := event.NewMemoryBus()
	svc.Subscribe(bus)
	q := &domain.PredictionQuestion{ID: uuid.New(), ContestID: contestID}
	require.NoError(t, bus.Publish(ctx, event.NewQuestionScoredEvent(q, 1)))

	_, err = svc.Get(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.scans.Load())
}

func TestService_ReplacedSubmissionKeepsCache(t *testing.T) {
	store, contestID := setup(t)
	svc := NewService(store, streak.NewTracker(store), NewLRUCache(16, time.Minute))
	ctx := context.Background()
	bus := event.NewMemoryBus()
	svc.Subscribe(bus)

	_, err := svc.Get(ctx, contestID)
	require.NoError(t, err)

	sub := &domain.PredictionSubmission{ContestID: contestID, QuestionID: uuid.New(), ParticipantID: "p1"}
	require.NoError(t, bus.Publish(ctx, event.NewPredictionSubmittedEvent(sub, true)))
	_, err = svc.Get(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.scans.Load())

	require.NoError(t, bus.Publish(ctx, event.NewPredictionSubmittedEvent(sub, false)))
	_, err = svc.Get(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.scans.Load())
}

func TestService_ConcurrentMissesCoalesce(t *testing.T) {
	store, contestID := setup(t)
	store.delay = 50 * time.Millisecond
	svc := NewService(store, streak.NewTracker(store), NewLRUCache(16, time.Minute))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := svc.Get(ctx, contestID)
			assert.NoError(t, err)
			assert.Len(t, entries, 1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, store.scans.Load(), int32(2))
}

// gatedStore pauses a submission scan after reading, until released
type gatedStore struct {
	*memory.Store
	read    chan struct{}
	release chan struct{}
	armed   atomic.Bool
}

func (g *gatedStore) GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	subs, err := g.Store.GetContestSubmissions(ctx, contestID)
	if g.armed.CompareAndSwap(true, false) {
		close(g.read)
		<-g.release
	}
	return subs, err
}

func TestService_InvalidateDuringRecomputeIsNotCached(t *testing.T) {
	counting, contestID := setup(t)
	store := &gatedStore{Store: counting.Store, read: make(chan struct{}), release: make(chan struct{})}
	store.armed.Store(true)
	svc := NewService(store, streak.NewTracker(store), NewLRUCache(16, time.Minute))
	ctx := context.Background()

	questions, err := store.GetQuestions(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	done := make(chan []domain.LeaderboardEntry)
	go func() {
		entries, err := svc.Get(ctx, contestID)
		assert.NoError(t, err)
		done <- entries
	}()
	<-store.read

	// A scoring pass commits and invalidates while the old rows are in flight
	score, correct, scoredAt := int64(10), true, base.Add(time.Minute)
	tx, err := store.BeginContestTx(ctx)
	require.NoError(t, err)
	n, err := tx.SaveSubmissionScore(ctx, &domain.PredictionSubmission{
		QuestionID: questions[0].ID, ParticipantID: "p1", Score: &score, IsCorrect: &correct, ScoredAt: &scoredAt,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.NoError(t, tx.Commit(ctx))
	svc.Invalidate(ctx, contestID)

	close(store.release)
	stale := <-done
	require.Len(t, stale, 1)
	assert.Equal(t, int64(0), stale[0].TotalScore)

	fresh, err := svc.Get(ctx, contestID)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, int64(10), fresh[0].TotalScore)
	assert.Equal(t, 1, fresh[0].ResolvedCount)
}

func TestService_UnknownContest(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, streak.NewTracker(store), nil)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrContestNotFound)
}

func TestService_FinalizedUsesSnapshot(t *testing.T) {
	store, contestID := setup(t)
	ctx := context.Background()
	svc := NewService(store, streak.NewTracker(store), nil)

	_, err := store.UpdateContestStateIfMatches(ctx, contestID, domain.ContestStateActive, domain.ContestStateEvaluating)
	require.NoError(t, err)
	tx, err := store.BeginContestTx(ctx)
	require.NoError(t, err)
	_, err = tx.FinalizeContest(ctx, contestID, base)
	require.NoError(t, err)
	snapshot := []domain.LeaderboardEntry{{Rank: 1, ParticipantID: "frozen", TotalScore: 9}}
	require.NoError(t, tx.SaveContestResult(ctx, &domain.ContestResult{ContestID: contestID, Leaderboard: snapshot}))
	require.NoError(t, tx.Commit(ctx))

	entries, err := svc.Recompute(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, snapshot, entries)
	assert.Equal(t, int32(0), store.scans.Load())
}

func TestLRUCache_Expires(t *testing.T) {
	c := NewLRUCache(4, 20*time.Millisecond)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, id, []domain.LeaderboardEntry{{ParticipantID: "p"}}))
	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	time.Sleep(60 * time.Millisecond)
	_, err = c.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
