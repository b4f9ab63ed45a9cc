package contest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
)

func TestResolve_FullContestFinalizesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, questions := f.startContest(t, testConfig(3))

	picks := []struct {
		participant string
		choices     [3]string
	}{
		{"alice", [3]string{"home", "away", "home"}},
		{"bob", [3]string{"home", "home", "draw"}},
		{"carol", [3]string{"away", "away", "away"}},
	}
	for i, p := range picks {
		f.clock.Set(c.StartsAt.Add(time.Duration(i+1) * time.Minute))
		for qi, choice := range p.choices {
			f.submit(t, p.participant, questions[qi], choice)
		}
	}

	f.clock.Set(c.StartsAt.Add(2 * time.Hour))

	res, err := f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, res.QuestionsScored)
	assert.Equal(t, domain.ContestStateEvaluating, res.ContestState)
	assert.False(t, res.Finalized)

	// Question 3 waits for question 2 so streaks follow ordinal order
	res, err = f.svc.Resolve(ctx, questions[2].ID, "draw", f.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, res.QuestionsScored)

	_, err = f.svc.GetContestResult(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrResultPending)

	res, err = f.svc.Resolve(ctx, questions[1].ID, "away", f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, res.QuestionsScored)
	assert.True(t, res.Finalized)
	assert.Equal(t, domain.ContestStateFinalized, res.ContestState)

	result, err := f.svc.GetContestResult(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, result.Leaderboard, 3)

	// alice and bob both score 200 at 2/3; alice joined first
	assert.Equal(t, "alice", result.Leaderboard[0].ParticipantID)
	assert.Equal(t, 1, result.Leaderboard[0].Rank)
	assert.Equal(t, "bob", result.Leaderboard[1].ParticipantID)
	assert.Equal(t, 2, result.Leaderboard[1].Rank)
	assert.Equal(t, "carol", result.Leaderboard[2].ParticipantID)

	want := map[string]string{"alice": "500", "bob": "300", "carol": "200"}
	require.Len(t, result.Payouts, 3)
	for _, p := range result.Payouts {
		assert.True(t, p.Amount.Equal(decimal.RequireFromString(want[p.ParticipantID])), "%s got %s", p.ParticipantID, p.Amount)
	}
	assert.True(t, result.PayoutSum().Equal(result.Total))

	// Leaderboard totals equal the sum of each participant's scores
	subs, err := f.store.GetContestSubmissions(ctx, c.ID)
	require.NoError(t, err)
	totals := make(map[string]int64)
	for _, sub := range subs {
		require.NotNil(t, sub.Score)
		totals[sub.ParticipantID] += *sub.Score
	}
	for _, entry := range result.Leaderboard {
		assert.Equal(t, totals[entry.ParticipantID], entry.TotalScore)
	}

	res, err = f.svc.Resolve(ctx, questions[0].ID, "away", f.clock.Now())
	require.NoError(t, err)
	assert.True(t, res.Ignored)

	assert.Equal(t, 1, f.eventCount(event.ContestFinalized))
	assert.Equal(t, 3, f.eventCount(event.QuestionResolved))
	assert.Equal(t, 3, f.eventCount(event.QuestionScored))
}

func TestResolve_DuplicateIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, questions := f.startContest(t, testConfig(2))
	f.submit(t, "alice", questions[0], "home")

	first, err := f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	again, err := f.svc.Resolve(ctx, questions[0].ID, "away", f.clock.Now())
	require.NoError(t, err)
	assert.True(t, again.Duplicate)
	assert.Zero(t, again.QuestionsScored)

	sub, err := f.store.GetSubmission(ctx, questions[0].ID, "alice")
	require.NoError(t, err)
	require.NotNil(t, sub.Score)
	assert.Equal(t, int64(100), *sub.Score, "outcome from the first resolution stands")
	assert.Equal(t, 1, f.eventCount(event.QuestionResolved))
}

func TestResolve_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.CreateContest(ctx, testConfig(1))
	require.NoError(t, err)
	questions, err := f.svc.GetQuestions(ctx, c.ID)
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, questions[0].ID, "home", t0)
	assert.ErrorIs(t, err, domain.ErrContestNotOpen)

	_, err = f.svc.Resolve(ctx, questions[0].ID, "abandoned", t0)
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	_, err = f.svc.Resolve(ctx, c.ID, "home", t0)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestResolve_AfterWindowClosesAndVoids(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, questions := f.startContest(t, testConfig(2))
	f.submit(t, "alice", questions[0], "home")
	f.submit(t, "alice", questions[1], "home")

	res, err := f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
	require.NoError(t, err)
	require.False(t, res.Finalized)

	f.clock.Set(c.EndsAt.Add(time.Minute))
	res, err = f.svc.Resolve(ctx, questions[1].ID, "home", c.EndsAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, res.Ignored)
	assert.True(t, res.Finalized)

	q, err := f.store.GetQuestion(ctx, questions[1].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionStatusVoid, q.Status)

	result, err := f.svc.GetContestResult(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, result.Payouts, 1)
	assert.True(t, result.Payouts[0].Amount.Equal(decimal.RequireFromString("1000")))
}

func TestCloseWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("too early", func(t *testing.T) {
		f := newFixture(t)
		c, _ := f.startContest(t, testConfig(1))
		assert.ErrorIs(t, f.svc.CloseWindow(ctx, c.ID), domain.ErrInvalidTransition)
	})

	t.Run("voids open questions and finalizes", func(t *testing.T) {
		f := newFixture(t)
		c, questions := f.startContest(t, testConfig(3))
		f.submit(t, "alice", questions[0], "home")
		f.submit(t, "bob", questions[0], "away")

		_, err := f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
		require.NoError(t, err)

		f.clock.Set(c.EndsAt)
		require.NoError(t, f.svc.CloseWindow(ctx, c.ID))

		got, err := f.svc.GetContest(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContestStateFinalized, got.State)

		all, err := f.svc.GetQuestions(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuestionStatusResolved, all[0].Status)
		assert.Equal(t, domain.QuestionStatusVoid, all[1].Status)
		assert.Equal(t, domain.QuestionStatusVoid, all[2].Status)

		result, err := f.svc.GetContestResult(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, result.PayoutSum().Equal(decimal.RequireFromString("1000.00")))
	})

	t.Run("payout mismatch leaves contest evaluating", func(t *testing.T) {
		f := newFixture(t)
		c, _ := f.startContest(t, testConfig(2))

		f.clock.Set(c.EndsAt)
		err := f.svc.CloseWindow(ctx, c.ID)
		assert.ErrorIs(t, err, domain.ErrPayoutSumMismatch)

		got, err := f.svc.GetContest(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ContestStateEvaluating, got.State)
		assert.Nil(t, got.FinalizedAt)

		_, err = f.svc.GetContestResult(ctx, c.ID)
		assert.ErrorIs(t, err, domain.ErrResultPending)
		assert.Zero(t, f.eventCount(event.ContestFinalized))
	})

	t.Run("empty contest with zero pool finalizes", func(t *testing.T) {
		f := newFixture(t)
		cfg := testConfig(1)
		cfg.PrizePool.Total = decimal.Zero
		c, _ := f.startContest(t, cfg)

		f.clock.Set(c.EndsAt)
		require.NoError(t, f.svc.CloseWindow(ctx, c.ID))

		result, err := f.svc.GetContestResult(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, result.Payouts)
	})
}

func TestAdvanceDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.CreateContest(ctx, testConfig(2))
	require.NoError(t, err)

	n, err := f.svc.AdvanceDue(ctx, t0)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Set(c.StartsAt.Add(time.Minute))
	n, err = f.svc.AdvanceDue(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetContest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStateActive, got.State)

	questions, err := f.svc.GetQuestions(ctx, c.ID)
	require.NoError(t, err)
	f.submit(t, "alice", questions[0], "home")
	_, err = f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
	require.NoError(t, err)

	// EVALUATING inside the window only retries scoring
	_, err = f.svc.AdvanceDue(ctx, f.clock.Now())
	require.NoError(t, err)
	got, err = f.svc.GetContest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStateEvaluating, got.State)

	f.clock.Set(c.EndsAt.Add(time.Minute))
	n, err = f.svc.AdvanceDue(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	result, err := f.svc.GetContestResult(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, result.Payouts, 1)
	assert.Equal(t, "alice", result.Payouts[0].ParticipantID)

	// Nothing left to do once finalized
	n, err = f.svc.AdvanceDue(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdvanceDue_StartAndEndBothPast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := testConfig(1)
	cfg.PrizePool.Total = decimal.Zero
	c, err := f.svc.CreateContest(ctx, cfg)
	require.NoError(t, err)

	f.clock.Set(c.EndsAt.Add(time.Hour))
	n, err := f.svc.AdvanceDue(ctx, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetContest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStateFinalized, got.State)
}

func TestResolve_ConcurrentReplaysFinalizeOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, questions := f.startContest(t, testConfig(1))
	f.submit(t, "alice", questions[0], "home")
	f.submit(t, "bob", questions[0], "away")

	const workers = 8
	results := make([]*domain.ResolutionResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.Resolve(ctx, questions[0].ID, "home", f.clock.Now())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	applied := 0
	for _, res := range results {
		require.NotNil(t, res)
		if !res.Duplicate && !res.Ignored {
			applied++
		}
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, f.eventCount(event.ContestFinalized))
	assert.Equal(t, 1, f.eventCount(event.QuestionScored))
}
