package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var t0 = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store, state domain.ContestState) (*domain.Contest, []domain.PredictionQuestion) {
	t.Helper()
	c := &domain.Contest{
		ID:       uuid.New(),
		Name:     "Week 1",
		StartsAt: t0,
		EndsAt:   t0.Add(24 * time.Hour),
		PrizePool: domain.PrizePool{
			Total: decimal.NewFromInt(100),
			Tiers: []domain.PrizeTier{{Rank: 1, Percentage: decimal.NewFromInt(100)}},
		},
		State:     state,
		CreatedAt: t0,
	}
	opts := []domain.PredictionOption{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	var qs []domain.PredictionQuestion
	for i := 2; i >= 1; i-- {
		q := domain.PredictionQuestion{
			ID: uuid.New(), ContestID: c.ID, Ordinal: i, Options: opts, OracleChoice: "a",
			Status: domain.QuestionStatusOpen,
		}
		qs = append(qs, q)
	}
	require.NoError(t, s.CreateContest(context.Background(), c, qs))
	return c, qs
}

func submit(t *testing.T, s *Store, sub *domain.PredictionSubmission) (int64, bool) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.BeginContestTx(ctx)
	require.NoError(t, err)
	rows, replaced, err := tx.UpsertSubmission(ctx, sub)
	require.NoError(t, err)
	require.NoError(t, tx.EnsureParticipant(ctx, sub.ContestID, sub.ParticipantID, sub.UpdatedAt))
	require.NoError(t, tx.Commit(ctx))
	return rows, replaced
}

func TestStore_QuestionsOrderedByOrdinal(t *testing.T) {
	s := NewStore()
	c, _ := seed(t, s, domain.ContestStateActive)

	qs, err := s.GetQuestions(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, 1, qs[0].Ordinal)
	assert.Equal(t, 2, qs[1].Ordinal)
}

func TestStore_UpsertReplacesUnscored(t *testing.T) {
	s := NewStore()
	c, qs := seed(t, s, domain.ContestStateActive)

	first := &domain.PredictionSubmission{
		ID: uuid.New(), ContestID: c.ID, QuestionID: qs[0].ID, ParticipantID: "p1",
		Choice: "a", Confidence: 50, SubmittedAt: t0, UpdatedAt: t0,
	}
	rows, replaced := submit(t, s, first)
	assert.Equal(t, int64(1), rows)
	assert.False(t, replaced)

	second := &domain.PredictionSubmission{
		ID: uuid.New(), ContestID: c.ID, QuestionID: qs[0].ID, ParticipantID: "p1",
		Choice: "b", Confidence: 90, SubmittedAt: t0.Add(time.Hour), UpdatedAt: t0.Add(time.Hour),
	}
	rows, replaced = submit(t, s, second)
	assert.Equal(t, int64(1), rows)
	assert.True(t, replaced)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t0, second.SubmittedAt)

	got, err := s.GetSubmission(context.Background(), qs[0].ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Choice)

	participants, err := s.GetParticipants(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, t0, participants[0].JoinedAt)
}

func TestStore_ResolvedQuestionRejectsWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, qs := seed(t, s, domain.ContestStateActive)

	tx, err := s.BeginContestTx(ctx)
	require.NoError(t, err)
	rows, err := tx.ResolveQuestionIfOpen(ctx, qs[0].ID, "a", t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	rows, err = tx.ResolveQuestionIfOpen(ctx, qs[0].ID, "b", t0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	require.NoError(t, tx.Commit(ctx))

	rows, _ = submit(t, s, &domain.PredictionSubmission{
		ID: uuid.New(), ContestID: c.ID, QuestionID: qs[0].ID, ParticipantID: "p1",
		Choice: "a", Confidence: 50, SubmittedAt: t0, UpdatedAt: t0,
	})
	assert.Equal(t, int64(0), rows)
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, _ := seed(t, s, domain.ContestStateActive)

	tx, err := s.BeginContestTx(ctx)
	require.NoError(t, err)
	rows, err := tx.UpdateContestStateIfMatches(ctx, c.ID, domain.ContestStateActive, domain.ContestStateEvaluating)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	require.NoError(t, tx.Rollback(ctx))
	assert.Error(t, tx.Commit(ctx))

	got, err := s.GetContest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStateActive, got.State)
}

func TestStore_FinalizeOnlyFromEvaluating(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	c, _ := seed(t, s, domain.ContestStateActive)

	tx, err := s.BeginContestTx(ctx)
	require.NoError(t, err)
	rows, err := tx.FinalizeContest(ctx, c.ID, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	require.NoError(t, tx.Rollback(ctx))

	_, err = s.UpdateContestStateIfMatches(ctx, c.ID, domain.ContestStateActive, domain.ContestStateEvaluating)
	require.NoError(t, err)

	tx, err = s.BeginContestTx(ctx)
	require.NoError(t, err)
	rows, err = tx.FinalizeContest(ctx, c.ID, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	require.NoError(t, tx.SaveContestResult(ctx, &domain.ContestResult{ContestID: c.ID, Total: decimal.NewFromInt(100)}))
	require.NoError(t, tx.Commit(ctx))

	got, err := s.GetContest(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStateFinalized, got.State)
	require.NotNil(t, got.FinalizedAt)

	result, err := s.GetContestResult(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestStore_ListDueContests(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	pending, _ := seed(t, s, domain.ContestStatePending)
	seed(t, s, domain.ContestStateActive)

	due, err := s.ListDueContests(ctx, t0.Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = s.ListDueContests(ctx, t0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, pending.ID, due[0].ID)

	due, err = s.ListDueContests(ctx, t0.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestStore_ContextCancelledBeforeTx(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.BeginContestTx(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
