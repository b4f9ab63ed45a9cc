package streak

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

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		before  int
		correct bool
		want    int
	}{
		{"first correct", 0, true, 1},
		{"extends", 2, true, 3},
		{"incorrect resets", 5, false, 0},
		{"incorrect from zero", 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.before, tt.correct))
		})
	}
}

func TestAfter_LatePicks(t *testing.T) {
	assert.Equal(t, 2, After(2, true, true), "late correct pick holds")
	assert.Equal(t, 0, After(2, false, true), "late miss resets")
	assert.Equal(t, 3, After(2, true, false))
}

func TestLedger_SequenceCorrectCorrectCorrectWrong(t *testing.T) {
	l := NewLedger(uuid.New(), nil)

	var seen []int
	for i, correct := range []bool{true, true, true, false} {
		seen = append(seen, l.Record("p1", i+1, correct))
	}
	assert.Equal(t, []int{1, 2, 3, 0}, seen)

	changes := l.Changes(time.Now())
	require.Len(t, changes, 1)
	assert.Equal(t, 0, changes[0].CurrentStreak)
	assert.Equal(t, 4, changes[0].LastOrdinal)
}

func TestLedger_StartsFromStoredState(t *testing.T) {
	contestID := uuid.New()
	l := NewLedger(contestID, []domain.StreakState{{ContestID: contestID, ParticipantID: "p1", CurrentStreak: 4}})

	assert.Equal(t, 4, l.Before("p1"))
	assert.Equal(t, 0, l.Before("p2"))
	assert.Equal(t, 5, l.Record("p1", 5, true))
	changes := l.Changes(time.Now())
	require.Len(t, changes, 1)
	assert.Equal(t, contestID, changes[0].ContestID)
}

func TestTracker_UnknownParticipantIsZero(t *testing.T) {
	store := memory.NewStore()
	tr := NewTracker(store)

	got, err := tr.Get(context.Background(), uuid.New(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestTracker_ReadsCommittedStreaks(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	contestID := uuid.New()

	tx, err := store.BeginContestTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertStreaks(ctx, []domain.StreakState{
		{ContestID: contestID, ParticipantID: "p1", CurrentStreak: 3, LastOrdinal: 3},
		{ContestID: contestID, ParticipantID: "p2", CurrentStreak: 0, LastOrdinal: 3},
	}))
	require.NoError(t, tx.Commit(ctx))

	tr := NewTracker(store)
	got, err := tr.Get(ctx, contestID, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	snap, err := tr.Snapshot(ctx, contestID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 3, "p2": 0}, snap)
}
