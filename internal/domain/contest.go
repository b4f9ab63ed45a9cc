package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContestState represents the lifecycle state of a contest
type ContestState string

const (
	ContestStatePending    ContestState = "PENDING"
	ContestStateActive     ContestState = "ACTIVE"
	ContestStateEvaluating ContestState = "EVALUATING"
	ContestStateFinalized  ContestState = "FINALIZED"
	ContestStateCancelled  ContestState = "CANCELLED"
)

// IsTerminal reports whether no further transitions are possible
func (s ContestState) IsTerminal() bool {
	return s == ContestStateFinalized || s == ContestStateCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s ContestState) CanTransitionTo(next ContestState) bool {
	switch s {
	case ContestStatePending:
		return next == ContestStateActive || next == ContestStateCancelled
	case ContestStateActive:
		return next == ContestStateEvaluating || next == ContestStateCancelled
	case ContestStateEvaluating:
		return next == ContestStateFinalized
	default:
		return false
	}
}

// Contest is a time-boxed collection of prediction questions
type Contest struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	StartsAt    time.Time    `json:"starts_at"`
	EndsAt      time.Time    `json:"ends_at"`
	Rules       ScoringRules `json:"rules"`
	PrizePool   PrizePool    `json:"prize_pool"`
	State       ContestState `json:"state"`
	QuestionIDs []uuid.UUID  `json:"question_ids"`
	CreatedAt   time.Time    `json:"created_at"`
	FinalizedAt *time.Time   `json:"finalized_at,omitempty"`
}

// WindowClosed reports whether now is at or past the contest end time
func (c *Contest) WindowClosed(now time.Time) bool {
	return !now.Before(c.EndsAt)
}

// HasStarted reports whether now is at or past the contest start time
func (c *Contest) HasStarted(now time.Time) bool {
	return !now.Before(c.StartsAt)
}

// QuestionStatus tracks resolution of a single question
type QuestionStatus string

const (
	QuestionStatusOpen     QuestionStatus = "OPEN"
	QuestionStatusResolved QuestionStatus = "RESOLVED"
	QuestionStatusVoid     QuestionStatus = "VOID"
)

// PredictionOption is one selectable answer for a question.
// PartialCreditFor lists outcome option IDs for which choosing this option
// earns the partial credit award.
type PredictionOption struct {
	ID               string   `json:"id" yaml:"id" validate:"required,max=64"`
	Label            string   `json:"label" yaml:"label" validate:"required,max=200"`
	PartialCreditFor []string `json:"partial_credit_for,omitempty" yaml:"partial_credit_for"`
}

// PredictionQuestion is a single forecastable event within a contest
type PredictionQuestion struct {
	ID              uuid.UUID          `json:"id"`
	ContestID       uuid.UUID          `json:"contest_id"`
	Ordinal         int                `json:"ordinal"`
	Prompt          string             `json:"prompt"`
	Category        string             `json:"category"`
	Difficulty      string             `json:"difficulty,omitempty"`
	Options         []PredictionOption `json:"options"`
	OracleChoice    string             `json:"oracle_choice"`
	Deadline        *time.Time         `json:"deadline,omitempty"`
	Status          QuestionStatus     `json:"status"`
	ResolvedOutcome *string            `json:"resolved_outcome,omitempty"`
	ResolvedAt      *time.Time         `json:"resolved_at,omitempty"`
	ScoredAt        *time.Time         `json:"scored_at,omitempty"`
}

// Option returns the option with the given ID
func (q *PredictionQuestion) Option(id string) (PredictionOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return PredictionOption{}, false
}

// HasOption reports whether id is one of the question's options
func (q *PredictionQuestion) HasOption(id string) bool {
	_, ok := q.Option(id)
	return ok
}

// IsPartialMatch reports whether choice earns partial credit against the
// resolved outcome. An exact match is never a partial match.
func (q *PredictionQuestion) IsPartialMatch(choice string) bool {
	if q.ResolvedOutcome == nil || choice == *q.ResolvedOutcome {
		return false
	}
	opt, ok := q.Option(choice)
	if !ok {
		return false
	}
	for _, outcome := range opt.PartialCreditFor {
		if outcome == *q.ResolvedOutcome {
			return true
		}
	}
	return false
}

// DeadlinePassed reports whether the per-question deadline has elapsed
func (q *PredictionQuestion) DeadlinePassed(now time.Time) bool {
	return q.Deadline != nil && !now.Before(*q.Deadline)
}

// IsScored reports whether the scoring pass has processed this question
func (q *PredictionQuestion) IsScored() bool {
	return q.ScoredAt != nil
}

// PredictionSubmission is one participant's answer for one question
type PredictionSubmission struct {
	ID            uuid.UUID  `json:"id"`
	ContestID     uuid.UUID  `json:"contest_id"`
	QuestionID    uuid.UUID  `json:"question_id"`
	ParticipantID string     `json:"participant_id"`
	Choice        string     `json:"choice"`
	Confidence    int        `json:"confidence"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	IsLate        bool       `json:"is_late"`
	Score         *int64     `json:"score,omitempty"`
	IsCorrect     *bool      `json:"is_correct,omitempty"`
	BeatOracle    bool       `json:"beat_oracle"`
	StreakBonus   int64      `json:"streak_bonus"`
	ScoredAt      *time.Time `json:"scored_at,omitempty"`
}

// IsScored reports whether a score has been written to the submission
func (s *PredictionSubmission) IsScored() bool {
	return s.ScoredAt != nil
}

// ContestParticipant records when a participant first entered a contest
type ContestParticipant struct {
	ContestID     uuid.UUID `json:"contest_id"`
	ParticipantID string    `json:"participant_id"`
	JoinedAt      time.Time `json:"joined_at"`
}

// StreakState is the running count of consecutive correct resolutions
type StreakState struct {
	ContestID     uuid.UUID `json:"contest_id"`
	ParticipantID string    `json:"participant_id"`
	CurrentStreak int       `json:"current_streak"`
	LastOrdinal   int       `json:"last_ordinal"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResolutionResult describes what a game result did to a contest
type ResolutionResult struct {
	ContestID       uuid.UUID    `json:"contest_id"`
	QuestionID      uuid.UUID    `json:"question_id"`
	Duplicate       bool         `json:"duplicate"`
	Ignored         bool         `json:"ignored"`
	QuestionsScored int          `json:"questions_scored"`
	ContestState    ContestState `json:"contest_state"`
	Finalized       bool         `json:"finalized"`
}
