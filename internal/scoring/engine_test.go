package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/database/memory"
	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var fixedNow = time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	contest   *domain.Contest
	questions []domain.PredictionQuestion
	engine    *Engine
}

func newFixture(t testing.TB, n int, rules domain.ScoringRules) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	contest := &domain.Contest{
		ID:       uuid.New(),
		Name:     "Scoring",
		StartsAt: fixedNow.Add(-time.Hour),
		EndsAt:   fixedNow.Add(time.Hour),
		Rules:    rules,
		State:    domain.ContestStateActive,
	}
	opts := []domain.PredictionOption{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	var qs []domain.PredictionQuestion
	for i := 1; i <= n; i++ {
		qs = append(qs, domain.PredictionQuestion{
			ID: uuid.New(), ContestID: contest.ID, Ordinal: i, Options: opts, OracleChoice: "a",
			Status: domain.QuestionStatusOpen,
		})
	}
	require.NoError(t, store.CreateContest(ctx, contest, qs))
	return &fixture{store: store, contest: contest, questions: qs, engine: NewEngineWithClock(func() time.Time { return fixedNow })}
}

func (f *fixture) submit(t *testing.T, ordinal int, participant, choice string) {
	t.Helper()
	f.submitAt(t, ordinal, participant, choice, false)
}

func (f *fixture) submitAt(t *testing.T, ordinal int, participant, choice string, late bool) {
	t.Helper()
	ctx := context.Background()
	tx, err := f.store.BeginContestTx(ctx)
	require.NoError(t, err)
	_, _, err = tx.UpsertSubmission(ctx, &domain.PredictionSubmission{
		ID: uuid.New(), ContestID: f.contest.ID, QuestionID: f.questions[ordinal-1].ID,
		ParticipantID: participant, Choice: choice, Confidence: 100, SubmittedAt: fixedNow, UpdatedAt: fixedNow,
		IsLate: late,
	})
	require.NoError(t, err)
	require.NoError(t, tx.EnsureParticipant(ctx, f.contest.ID, participant, fixedNow))
	require.NoError(t, tx.Commit(ctx))
}

// resolveAndScore resolves one question and runs a frontier pass
func (f *fixture) resolveAndScore(t *testing.T, ordinal int, outcome string) []QuestionResult {
	t.Helper()
	ctx := context.Background()
	tx, err := f.store.BeginContestTx(ctx)
	require.NoError(t, err)
	_, err = tx.ResolveQuestionIfOpen(ctx, f.questions[ordinal-1].ID, outcome, fixedNow)
	require.NoError(t, err)

	qs, err := tx.GetQuestions(ctx, f.contest.ID)
	require.NoError(t, err)
	results, err := f.engine.ScorePass(ctx, tx, f.contest, Frontier(qs))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	return results
}

func (f *fixture) bonuses(t *testing.T, participant string) []int64 {
	t.Helper()
	subs, err := f.store.GetParticipantSubmissions(context.Background(), f.contest.ID, participant)
	require.NoError(t, err)
	var out []int64
	for _, s := range subs {
		if s.IsScored() {
			out = append(out, s.StreakBonus)
		}
	}
	return out
}

func TestFrontier(t *testing.T) {
	scored := fixedNow
	qs := []domain.PredictionQuestion{
		{Ordinal: 1, Status: domain.QuestionStatusResolved, ScoredAt: &scored},
		{Ordinal: 2, Status: domain.QuestionStatusVoid},
		{Ordinal: 3, Status: domain.QuestionStatusResolved},
		{Ordinal: 4, Status: domain.QuestionStatusOpen},
		{Ordinal: 5, Status: domain.QuestionStatusResolved},
	}

	got := Frontier(qs)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Ordinal)
}

func TestScorePass_StreakBonusScenario(t *testing.T) {
	rules := domain.ScoringRules{
		CorrectPrediction: dec("10"),
		Streak:            domain.StreakBonusRules{MinStreak: 3, BonusPerCorrect: dec("2")},
	}
	f := newFixture(t, 5, rules)
	for i := 1; i <= 5; i++ {
		f.submit(t, i, "p1", "a")
	}
	for i := 1; i <= 5; i++ {
		f.resolveAndScore(t, i, "a")
	}

	assert.Equal(t, []int64{0, 0, 2, 4, 6}, f.bonuses(t, "p1"))
}

func TestScorePass_LateCorrectPickHoldsStreak(t *testing.T) {
	rules := domain.ScoringRules{
		CorrectPrediction: dec("10"),
		Streak:            domain.StreakBonusRules{MinStreak: 3, BonusPerCorrect: dec("2")},
	}
	f := newFixture(t, 5, rules)
	for i := 1; i <= 5; i++ {
		f.submitAt(t, i, "p1", "a", i == 3)
	}
	for i := 1; i <= 5; i++ {
		f.resolveAndScore(t, i, "a")
	}

	// Question 3 neither earns a bonus nor lengthens the run behind 4 and 5
	assert.Equal(t, []int64{0, 0, 0, 2, 4}, f.bonuses(t, "p1"))

	streaks, err := f.store.GetStreaks(context.Background(), f.contest.ID)
	require.NoError(t, err)
	require.Len(t, streaks, 1)
	assert.Equal(t, 4, streaks[0].CurrentStreak)
}

func TestScorePass_StreakFollowsOrdinalNotResolutionOrder(t *testing.T) {
	f := newFixture(t, 4, domain.ScoringRules{CorrectPrediction: dec("10")})
	f.submit(t, 1, "p1", "a")
	f.submit(t, 2, "p1", "a")
	f.submit(t, 3, "p1", "a")
	f.submit(t, 4, "p1", "a")

	ctx := context.Background()
	tracker := func() int {
		streaks, err := f.store.GetStreaks(ctx, f.contest.ID)
		require.NoError(t, err)
		if len(streaks) == 0 {
			return 0
		}
		return streaks[0].CurrentStreak
	}

	// Question 3 resolves first but waits behind the frontier
	assert.Empty(t, f.resolveAndScore(t, 3, "a"))
	assert.Equal(t, 0, tracker())

	f.resolveAndScore(t, 1, "a")
	assert.Equal(t, 1, tracker())

	results := f.resolveAndScore(t, 2, "a")
	assert.Len(t, results, 2)
	assert.Equal(t, 3, tracker())

	f.resolveAndScore(t, 4, "b")
	assert.Equal(t, 0, tracker())
}

func TestScorePass_Idempotent(t *testing.T) {
	f := newFixture(t, 1, domain.ScoringRules{CorrectPrediction: dec("10")})
	f.submit(t, 1, "p1", "a")
	f.submit(t, 1, "p2", "b")

	results := f.resolveAndScore(t, 1, "a")
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Scored)

	ctx := context.Background()
	tx, err := f.store.BeginContestTx(ctx)
	require.NoError(t, err)
	qs, err := tx.GetQuestions(ctx, f.contest.ID)
	require.NoError(t, err)

	// Forcing a second pass over the scored question changes nothing
	res, err := f.engine.ScoreQuestion(ctx, tx, f.contest, qs[0])
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scored)
	require.NoError(t, tx.Commit(ctx))

	subs, err := f.store.GetContestSubmissions(ctx, f.contest.ID)
	require.NoError(t, err)
	var total int64
	for _, s := range subs {
		require.NotNil(t, s.Score)
		total += *s.Score
	}
	assert.Equal(t, int64(10), total)
}

func TestScorePass_NonParticipantsKeepStreak(t *testing.T) {
	f := newFixture(t, 2, domain.ScoringRules{CorrectPrediction: dec("10")})
	f.submit(t, 1, "p1", "a")
	f.submit(t, 1, "p2", "a")
	f.submit(t, 2, "p2", "b")

	f.resolveAndScore(t, 1, "a")
	f.resolveAndScore(t, 2, "a")

	streaks, err := f.store.GetStreaks(context.Background(), f.contest.ID)
	require.NoError(t, err)
	byID := map[string]int{}
	for _, s := range streaks {
		byID[s.ParticipantID] = s.CurrentStreak
	}
	assert.Equal(t, 1, byID["p1"])
	assert.Equal(t, 0, byID["p2"])
}
