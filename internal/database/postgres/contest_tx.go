package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/PredictionContest_Go/internal/database/generated"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

// contestTx implements repository.ContestTx
type contestTx struct {
	tx pgx.Tx
	q  *generated.Queries
}

var _ repository.ContestTx = (*contestTx)(nil)

func (t *contestTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *contestTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *contestTx) GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	return getContest(ctx, t.q, contestID)
}

func (t *contestTx) GetQuestions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionQuestion, error) {
	return getQuestions(ctx, t.q, contestID)
}

func (t *contestTx) GetQuestionSubmissions(ctx context.Context, questionID uuid.UUID) ([]domain.PredictionSubmission, error) {
	rows, err := t.q.ListQuestionSubmissionsForUpdate(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query question submissions: %w", err)
	}
	return mapSubmissions(rows), nil
}

func (t *contestTx) GetContestSubmissions(ctx context.Context, contestID uuid.UUID) ([]domain.PredictionSubmission, error) {
	return getContestSubmissions(ctx, t.q, contestID)
}

func (t *contestTx) GetParticipants(ctx context.Context, contestID uuid.UUID) ([]domain.ContestParticipant, error) {
	return getParticipants(ctx, t.q, contestID)
}

func (t *contestTx) GetStreaks(ctx context.Context, contestID uuid.UUID) ([]domain.StreakState, error) {
	return getStreaks(ctx, t.q, contestID)
}

// UpsertSubmission writes the submission only while its question is OPEN and
// any existing row is unscored. xmax distinguishes an update from an insert,
// which sqlc cannot express, so the statement stays hand-written.
func (t *contestTx) UpsertSubmission(ctx context.Context, sub *domain.PredictionSubmission) (int64, bool, error) {
	var (
		id          uuid.UUID
		submittedAt time.Time
		replaced    bool
	)
	err := t.tx.QueryRow(ctx, `
		INSERT INTO prediction_submissions (submission_id, contest_id, question_id, participant_id, choice,
			confidence, submitted_at, updated_at, is_late)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE EXISTS (SELECT 1 FROM contest_questions WHERE question_id = $3 AND status = 'OPEN')
		ON CONFLICT (question_id, participant_id) DO UPDATE
		SET choice = EXCLUDED.choice,
			confidence = EXCLUDED.confidence,
			updated_at = EXCLUDED.updated_at,
			is_late = EXCLUDED.is_late
		WHERE prediction_submissions.scored_at IS NULL
		RETURNING submission_id, submitted_at, (xmax <> 0)`,
		sub.ID, sub.ContestID, sub.QuestionID, sub.ParticipantID, sub.Choice,
		sub.Confidence, sub.SubmittedAt, sub.UpdatedAt, sub.IsLate).
		Scan(&id, &submittedAt, &replaced)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to upsert submission: %w", err)
	}
	sub.ID = id
	sub.SubmittedAt = submittedAt
	return 1, replaced, nil
}

func (t *contestTx) EnsureParticipant(ctx context.Context, contestID uuid.UUID, participantID string, joinedAt time.Time) error {
	err := t.q.EnsureParticipant(ctx, generated.EnsureParticipantParams{
		ContestID:     contestID,
		ParticipantID: participantID,
		JoinedAt:      timeToPgtimetz(joinedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to record participant: %w", err)
	}
	return nil
}

func (t *contestTx) ResolveQuestionIfOpen(ctx context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (int64, error) {
	rows, err := t.q.ResolveQuestionIfOpen(ctx, generated.ResolveQuestionIfOpenParams{
		QuestionID:      questionID,
		ResolvedOutcome: strToText(outcome),
		ResolvedAt:      timeToPgtimetz(resolvedAt),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to resolve question: %w", err)
	}
	return rows, nil
}

func (t *contestTx) VoidOpenQuestions(ctx context.Context, contestID uuid.UUID, at time.Time) (int64, error) {
	rows, err := t.q.VoidOpenQuestions(ctx, generated.VoidOpenQuestionsParams{
		ContestID:  contestID,
		ResolvedAt: timeToPgtimetz(at),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to void open questions: %w", err)
	}
	return rows, nil
}

func (t *contestTx) SaveSubmissionScore(ctx context.Context, sub *domain.PredictionSubmission) (int64, error) {
	rows, err := t.q.SaveSubmissionScore(ctx, scoreParams(sub))
	if err != nil {
		return 0, fmt.Errorf("failed to save submission score: %w", err)
	}
	return rows, nil
}

func (t *contestTx) UpsertStreaks(ctx context.Context, streaks []domain.StreakState) error {
	if len(streaks) == 0 {
		return nil
	}
	params := make([]generated.UpsertStreaksParams, len(streaks))
	for i, s := range streaks {
		params[i] = generated.UpsertStreaksParams{
			ContestID:     s.ContestID,
			ParticipantID: s.ParticipantID,
			CurrentStreak: int32(s.CurrentStreak),
			LastOrdinal:   int32(s.LastOrdinal),
			UpdatedAt:     timeToPgtimetz(s.UpdatedAt),
		}
	}

	var batchErr error
	t.q.UpsertStreaks(ctx, params).Exec(func(_ int, err error) {
		if err != nil && batchErr == nil {
			batchErr = err
		}
	})
	if batchErr != nil {
		return fmt.Errorf("failed to upsert streaks: %w", batchErr)
	}
	return nil
}

func (t *contestTx) MarkQuestionScored(ctx context.Context, questionID uuid.UUID, at time.Time) (int64, error) {
	rows, err := t.q.MarkQuestionScored(ctx, generated.MarkQuestionScoredParams{
		QuestionID: questionID,
		ScoredAt:   timeToPgtimetz(at),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to mark question scored: %w", err)
	}
	return rows, nil
}

func (t *contestTx) UpdateContestStateIfMatches(ctx context.Context, contestID uuid.UUID, expected, next domain.ContestState) (int64, error) {
	return updateContestStateIfMatches(ctx, t.q, contestID, expected, next)
}

func (t *contestTx) FinalizeContest(ctx context.Context, contestID uuid.UUID, at time.Time) (int64, error) {
	rows, err := t.q.FinalizeContest(ctx, generated.FinalizeContestParams{
		ContestID:   contestID,
		FinalizedAt: timeToPgtimetz(at),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to finalize contest: %w", err)
	}
	return rows, nil
}

func (t *contestTx) SaveContestResult(ctx context.Context, result *domain.ContestResult) error {
	leaderboardJSON, err := json.Marshal(result.Leaderboard)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	payoutsJSON, err := json.Marshal(result.Payouts)
	if err != nil {
		return fmt.Errorf("failed to marshal payouts: %w", err)
	}
	err = t.q.SaveContestResult(ctx, generated.SaveContestResultParams{
		ContestID:   result.ContestID,
		Leaderboard: leaderboardJSON,
		Payouts:     payoutsJSON,
		Total:       decimalToNumeric(result.Total),
		Currency:    result.Currency,
		FinalizedAt: timeToPgtimetz(result.FinalizedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyFinalized
		}
		return fmt.Errorf("failed to save contest result: %w", err)
	}
	return nil
}
