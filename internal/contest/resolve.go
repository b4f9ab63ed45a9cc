package contest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

func (s *service) Resolve(ctx context.Context, questionID uuid.UUID, outcome string, resolvedAt time.Time) (*domain.ResolutionResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgResolveCalled, "question_id", questionID, "outcome", outcome)

	q, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestion, err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}
	ctx = logger.WithContest(ctx, q.ContestID.String())
	if !q.HasOption(outcome) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOption, outcome)
	}

	unlock := s.locks.Lock(q.ContestID)
	defer unlock()

	contest, err := s.GetContest(ctx, q.ContestID)
	if err != nil {
		return nil, err
	}
	result := &domain.ResolutionResult{
		ContestID:    contest.ID,
		QuestionID:   q.ID,
		ContestState: contest.State,
	}

	switch contest.State {
	case domain.ContestStatePending:
		return nil, domain.ErrContestNotOpen
	case domain.ContestStateCancelled, domain.ContestStateFinalized:
		log.Info(LogMsgResultIgnored, "contest_id", contest.ID, "question_id", q.ID, "state", contest.State)
		result.Ignored = true
		return result, nil
	}

	// A result arriving after the window closes the window first, which voids it
	now := s.now()
	if contest.WindowClosed(now) {
		if err := s.closeWindowLocked(ctx, contest.ID, now); err != nil {
			return nil, err
		}
	}

	rec, err := s.recordResolution(ctx, contest.ID, q.ID, outcome, resolvedAt)
	if err != nil {
		return nil, err
	}
	switch {
	case rec.voided:
		log.Info(LogMsgResultIgnored, "contest_id", contest.ID, "question_id", q.ID, "error", domain.ErrQuestionVoided)
		result.Ignored = true
	case rec.duplicate:
		log.Info(LogMsgDuplicateResolution, "contest_id", contest.ID, "question_id", q.ID, "error", domain.ErrDuplicateResolution)
		result.Duplicate = true
	default:
		log.Info(LogMsgQuestionResolved, "contest_id", contest.ID, "question_id", q.ID, "ordinal", rec.question.Ordinal, "outcome", outcome)
		s.publish(ctx, event.NewQuestionResolvedEvent(&rec.question, outcome))
		if rec.moved {
			log.Info(LogMsgContestTransitioned, "contest_id", contest.ID,
				"from", domain.ContestStateActive, "to", domain.ContestStateEvaluating)
			s.publish(ctx, event.NewContestStateChangedEvent(contest.ID.String(), domain.ContestStateActive, domain.ContestStateEvaluating))
		}
	}

	// Replays still run the pass so an interrupted evaluation can complete
	summary, err := s.evaluateLocked(ctx, contest.ID)
	if err != nil {
		return nil, err
	}
	result.QuestionsScored = summary.scored
	result.ContestState = summary.state
	result.Finalized = summary.finalized
	return result, nil
}

type resolution struct {
	question  domain.PredictionQuestion
	duplicate bool
	voided    bool
	moved     bool
}

// recordResolution sets the outcome while the question is OPEN and moves an
// ACTIVE contest to EVALUATING in the same transaction
func (s *service) recordResolution(ctx context.Context, contestID, questionID uuid.UUID, outcome string, resolvedAt time.Time) (*resolution, error) {
	tx, err := s.repo.BeginContestTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	contest, err := tx.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}
	questions, err := tx.GetQuestions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestions, err)
	}

	rec := &resolution{}
	found := false
	for _, q := range questions {
		if q.ID == questionID {
			rec.question = q
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
	}

	switch rec.question.Status {
	case domain.QuestionStatusVoid:
		rec.voided = true
		return rec, nil
	case domain.QuestionStatusResolved:
		rec.duplicate = true
		return rec, nil
	}

	rows, err := tx.ResolveQuestionIfOpen(ctx, questionID, outcome, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToResolve, err)
	}
	if rows == 0 {
		rec.duplicate = true
		return rec, nil
	}
	rec.question.Status = domain.QuestionStatusResolved
	rec.question.ResolvedOutcome = &outcome
	rec.question.ResolvedAt = &resolvedAt

	if contest.State == domain.ContestStateActive {
		rows, err := tx.UpdateContestStateIfMatches(ctx, contestID, domain.ContestStateActive, domain.ContestStateEvaluating)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToTransition, err)
		}
		rec.moved = rows == 1
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return rec, nil
}
