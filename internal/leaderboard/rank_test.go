package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var base = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func scored(participant string, score int64, correct bool) domain.PredictionSubmission {
	s := score
	c := correct
	now := base
	return domain.PredictionSubmission{ParticipantID: participant, Score: &s, IsCorrect: &c, ScoredAt: &now}
}

func ids(entries []domain.LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ParticipantID
	}
	return out
}

func ranks(entries []domain.LeaderboardEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestBuild_TotalScoreIsSumOfScores(t *testing.T) {
	participants := []domain.ContestParticipant{{ParticipantID: "p1", JoinedAt: base}}
	subs := []domain.PredictionSubmission{
		scored("p1", 100, true),
		scored("p1", 0, false),
		scored("p1", 37, true),
		{ParticipantID: "p1"}, // unscored
	}

	entries := Build(participants, subs, map[string]int{"p1": 1})
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(137), entries[0].TotalScore)
	assert.Equal(t, 2, entries[0].CorrectCount)
	assert.Equal(t, 3, entries[0].ResolvedCount)
	assert.Equal(t, 1, entries[0].CurrentStreak)
	assert.InDelta(t, 2.0/3.0, entries[0].Accuracy, 1e-9)
}

func TestBuild_TieBreaks(t *testing.T) {
	participants := []domain.ContestParticipant{
		{ParticipantID: "late", JoinedAt: base.Add(2 * time.Hour)},
		{ParticipantID: "early", JoinedAt: base},
		{ParticipantID: "accurate", JoinedAt: base.Add(3 * time.Hour)},
		{ParticipantID: "leader", JoinedAt: base.Add(4 * time.Hour)},
		{ParticipantID: "zz-same", JoinedAt: base.Add(5 * time.Hour)},
		{ParticipantID: "aa-same", JoinedAt: base.Add(5 * time.Hour)},
		{ParticipantID: "idle", JoinedAt: base},
	}
	subs := []domain.PredictionSubmission{
		scored("leader", 300, true),
		// 100 points at 1/2 accuracy
		scored("late", 100, true), scored("late", 0, false),
		scored("early", 100, true), scored("early", 0, false),
		// 100 points at 1/1 accuracy
		scored("accurate", 100, true),
		scored("zz-same", 50, true),
		scored("aa-same", 50, true),
	}

	entries := Build(participants, subs, nil)

	assert.Equal(t, []string{"leader", "accurate", "early", "late", "aa-same", "zz-same", "idle"}, ids(entries))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 5, 7}, ranks(entries))
}

func TestBuild_ZeroResolvedSortsLastAmongTies(t *testing.T) {
	participants := []domain.ContestParticipant{
		{ParticipantID: "nothing", JoinedAt: base},
		{ParticipantID: "wrong", JoinedAt: base.Add(time.Hour)},
	}
	subs := []domain.PredictionSubmission{scored("wrong", 0, false)}

	entries := Build(participants, subs, nil)
	assert.Equal(t, []string{"wrong", "nothing"}, ids(entries))
	assert.Equal(t, []int{1, 2}, ranks(entries))
}

func TestBuild_Deterministic(t *testing.T) {
	participants := []domain.ContestParticipant{
		{ParticipantID: "c", JoinedAt: base},
		{ParticipantID: "a", JoinedAt: base},
		{ParticipantID: "b", JoinedAt: base},
	}
	reversed := []domain.ContestParticipant{participants[2], participants[1], participants[0]}

	first := Build(participants, nil, nil)
	second := Build(reversed, nil, nil)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []string{"a", "b", "c"}, ids(first))
	assert.Equal(t, []int{1, 1, 1}, ranks(first))
}
