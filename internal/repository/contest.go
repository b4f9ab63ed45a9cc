package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// ContestFilter narrows ListContests results. A nil State matches every state.
type ContestFilter struct {
	State *domain.ContestState
	Limit int
}

// Contest defines the data access interface for contests, questions and submissions.
// Lookups return (nil, nil) when the record does not exist.
type Contest interface {
	CreateContest(ctx context.Context, contest *domain.Contest, questions []domain.PredictionQuestion) error
	GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error)
	ListContests(ctx context.Context, filter ContestFilter) ([]domain.Contest, error)
	// ListDueContests returns non-terminal contests whose start or end time is at or before now
	ListDueContests(ctx context.Context, now time.Time) ([]domain.Contest, error)

	GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.PredictionQuestion, error)
	GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error)

	GetSubmission(ctx context.Context, questionID uuid.UUID, participantID string) (*domain.PredictionSubmission, error)
	GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error)
	GetParticipantSubmissions(ctx context.Context, contestID uuid.UUID, participantID string) ([]domain.PredictionSubmission, error)

	GetParticipants(ctx context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error)
	GetStreaks(ctx context.Context, contestID uuid.UUID) ([]domain.StreakState, error)
	GetContestResult(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error)

	// UpdateContestStateIfMatches performs a compare-and-swap on the contest state
	UpdateContestStateIfMatches(ctx context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error)

	BeginContestTx(ctx context.Context) (ContestTx, error)
}

// ContestTx groups the writes that must commit atomically during submission,
// resolution, scoring and finalization
type ContestTx interface {
	Tx

	GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error)
	GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error)
	GetQuestionSubmissions(ctx context.Context, questionID uuid.UUID) ([]domain.PredictionSubmission, error)
	GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error)
	GetParticipants(ctx context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error)
	GetStreaks(ctx context.Context, contestID uuid.UUID) ([]domain.StreakState, error)

	// UpsertSubmission inserts or replaces the participant's submission while the
	// question is still OPEN and the existing row is unscored.
	// Returns the number of rows written and whether a prior row was replaced.
	UpsertSubmission(ctx context.Context, sub *domain.PredictionSubmission) (int64, bool, error)
	// EnsureParticipant records the participant's join time if it is not yet known
	EnsureParticipant(ctx context.Context, contestID uuid.UUID, participantID string, joinedAt time.Time) error

	// ResolveQuestionIfOpen sets the outcome only while the question is OPEN
	ResolveQuestionIfOpen(ctx context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (int64, error)
	// VoidOpenQuestions marks every OPEN question in the contest VOID and returns the count
	VoidOpenQuestions(ctx context.Context, contestID uuid.UUID, at time.Time) (int64, error)

	// SaveSubmissionScore writes a score only if the submission is not already scored
	SaveSubmissionScore(ctx context.Context, sub *domain.PredictionSubmission) (int64, error)
	UpsertStreaks(ctx context.Context, streaks []domain.StreakState) error
	MarkQuestionScored(ctx context.Context, questionID uuid.UUID, at time.Time) (int64, error)

	UpdateContestStateIfMatches(ctx context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error)
	// FinalizeContest moves EVALUATING to FINALIZED exactly once
	FinalizeContest(ctx context.Context, contestID uuid.UUID, at time.Time) (int64, error)
	SaveContestResult(ctx context.Context, result *domain.ContestResult) error
}
