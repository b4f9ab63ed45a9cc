package streak

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// Next returns the streak after a scored submission: a correct pick extends
// the streak, anything else resets it.
func Next(before int, correct bool) int {
	if correct {
		return before + 1
	}
	return 0
}

// After is Next for a pick that may have come in late. A late correct pick
// holds the streak where it was; a late miss still resets it.
func After(before int, correct, late bool) int {
	if late && correct {
		return before
	}
	return Next(before, correct)
}

// FromStates indexes streak rows by participant
func FromStates(states []domain.StreakState) map[string]int {
	out := make(map[string]int, len(states))
	for _, s := range states {
		out[s.ParticipantID] = s.CurrentStreak
	}
	return out
}

// Ledger accumulates streak transitions for one scoring pass
type Ledger struct {
	contestID uuid.UUID
	current   map[string]int
	changed   map[string]int
	ordinal   map[string]int
}

// NewLedger starts a pass from the stored streak rows
func NewLedger(contestID uuid.UUID, states []domain.StreakState) *Ledger {
	return &Ledger{
		contestID: contestID,
		current:   FromStates(states),
		changed:   make(map[string]int),
		ordinal:   make(map[string]int),
	}
}

// Before returns the participant's streak going into the next question
func (l *Ledger) Before(participantID string) int {
	return l.current[participantID]
}

// Record applies the outcome of the participant's submission on the question
// with the given ordinal
func (l *Ledger) Record(participantID string, ordinal int, correct bool) int {
	after := Next(l.current[participantID], correct)
	l.Advance(participantID, ordinal, after)
	return after
}

// Advance stores a streak value already computed for the participant's
// submission on the question with the given ordinal
func (l *Ledger) Advance(participantID string, ordinal, after int) {
	l.current[participantID] = after
	l.changed[participantID] = after
	l.ordinal[participantID] = ordinal
}

// Changes returns the rows to persist for participants touched by the pass
func (l *Ledger) Changes(at time.Time) []domain.StreakState {
	out := make([]domain.StreakState, 0, len(l.changed))
	for participantID, value := range l.changed {
		out = append(out, domain.StreakState{
			ContestID:     l.contestID,
			ParticipantID: participantID,
			CurrentStreak: value,
			LastOrdinal:   l.ordinal[participantID],
			UpdatedAt:     at,
		})
	}
	return out
}
