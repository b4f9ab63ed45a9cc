package leaderboard

import (
	"sort"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// Sort orders entries by total score, then accuracy, then join time, with
// participant id as the final key so the order is total.
func Sort(entries []domain.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if c := a.CompareAccuracy(b); c != 0 {
			return c > 0
		}
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		return a.ParticipantID < b.ParticipantID
	})
}

// AssignRanks applies standard competition ranking to sorted entries.
// Entries equal on score, accuracy and join time share a rank and the next
// distinct entry takes its 1-based position.
func AssignRanks(entries []domain.LeaderboardEntry) {
	for i := range entries {
		if i > 0 && tied(entries[i-1], entries[i]) {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

func tied(a, b domain.LeaderboardEntry) bool {
	return a.TotalScore == b.TotalScore &&
		a.CompareAccuracy(b) == 0 &&
		a.JoinedAt.Equal(b.JoinedAt)
}

// Build aggregates participants, scored submissions and streaks into a
// sorted, ranked leaderboard
func Build(participants []domain.ContestParticipant, subs []domain.PredictionSubmission, streaks map[string]int) []domain.LeaderboardEntry {
	index := make(map[string]int, len(participants))
	entries := make([]domain.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		index[p.ParticipantID] = len(entries)
		entries = append(entries, domain.LeaderboardEntry{
			ParticipantID: p.ParticipantID,
			JoinedAt:      p.JoinedAt,
		})
	}

	for _, sub := range subs {
		i, ok := index[sub.ParticipantID]
		if !ok {
			index[sub.ParticipantID] = len(entries)
			i = len(entries)
			entries = append(entries, domain.LeaderboardEntry{
				ParticipantID: sub.ParticipantID,
				JoinedAt:      sub.SubmittedAt,
			})
		}
		if sub.Score == nil {
			continue
		}
		e := &entries[i]
		e.TotalScore += *sub.Score
		e.ResolvedCount++
		if sub.IsCorrect != nil && *sub.IsCorrect {
			e.CorrectCount++
		}
		if sub.BeatOracle {
			e.OracleBeats++
		}
	}

	for i := range entries {
		e := &entries[i]
		e.CurrentStreak = streaks[e.ParticipantID]
		if e.ResolvedCount > 0 {
			e.Accuracy = float64(e.CorrectCount) / float64(e.ResolvedCount)
		}
	}

	Sort(entries)
	AssignRanks(entries)
	return entries
}
