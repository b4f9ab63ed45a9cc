package domain

import "time"

// LeaderboardEntry is one participant's derived standing in a contest
type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	ParticipantID string    `json:"participant_id"`
	TotalScore    int64     `json:"total_score"`
	CorrectCount  int       `json:"correct_count"`
	ResolvedCount int       `json:"resolved_count"`
	CurrentStreak int       `json:"current_streak"`
	OracleBeats   int       `json:"oracle_beats"`
	Accuracy      float64   `json:"accuracy"`
	JoinedAt      time.Time `json:"joined_at"`
}

// CompareAccuracy orders entries by correct/resolved without floating point.
// Entries with no resolved questions sort after everything else.
// Returns a positive number when e is more accurate than other.
func (e LeaderboardEntry) CompareAccuracy(other LeaderboardEntry) int {
	switch {
	case e.ResolvedCount == 0 && other.ResolvedCount == 0:
		return 0
	case e.ResolvedCount == 0:
		return -1
	case other.ResolvedCount == 0:
		return 1
	}
	lhs := int64(e.CorrectCount) * int64(other.ResolvedCount)
	rhs := int64(other.CorrectCount) * int64(e.ResolvedCount)
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return -1
	default:
		return 0
	}
}
