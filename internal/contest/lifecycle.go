package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
	"github.com/osse101/PredictionContest_Go/internal/repository"
)

func (s *service) Activate(ctx context.Context, contestID uuid.UUID) error {
	unlock := s.locks.Lock(contestID)
	defer unlock()
	return s.activateLocked(ctx, contestID, s.now())
}

func (s *service) activateLocked(ctx context.Context, contestID uuid.UUID, now time.Time) error {
	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return err
	}
	if contest.State != domain.ContestStatePending {
		return fmt.Errorf("%w: cannot activate from %s", domain.ErrInvalidTransition, contest.State)
	}
	if !contest.HasStarted(now) {
		return fmt.Errorf("%w: contest starts at %s", domain.ErrInvalidTransition, contest.StartsAt.Format(time.RFC3339))
	}
	return s.transition(ctx, contestID, domain.ContestStatePending, domain.ContestStateActive)
}

func (s *service) Cancel(ctx context.Context, contestID uuid.UUID) error {
	unlock := s.locks.Lock(contestID)
	defer unlock()

	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return err
	}
	if !contest.State.CanTransitionTo(domain.ContestStateCancelled) {
		return fmt.Errorf("%w: cannot cancel from %s", domain.ErrInvalidTransition, contest.State)
	}
	return s.transition(ctx, contestID, contest.State, domain.ContestStateCancelled)
}

// transition performs a compare-and-swap outside any transaction
func (s *service) transition(ctx context.Context, contestID uuid.UUID, from, to domain.ContestState) error {
	rows, err := s.repo.UpdateContestStateIfMatches(ctx, contestID, from, to)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToTransition, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: contest is no longer %s", domain.ErrInvalidTransition, from)
	}
	logger.FromContext(ctx).Info(LogMsgContestTransitioned, "contest_id", contestID, "from", from, "to", to)
	s.publish(ctx, event.NewContestStateChangedEvent(contestID.String(), from, to))
	return nil
}

func (s *service) CloseWindow(ctx context.Context, contestID uuid.UUID) error {
	unlock := s.locks.Lock(contestID)
	defer unlock()

	now := s.now()
	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return err
	}
	if !contest.WindowClosed(now) {
		return fmt.Errorf("%w: window closes at %s", domain.ErrInvalidTransition, contest.EndsAt.Format(time.RFC3339))
	}
	if contest.State != domain.ContestStateActive && contest.State != domain.ContestStateEvaluating {
		return fmt.Errorf("%w: cannot close window from %s", domain.ErrInvalidTransition, contest.State)
	}

	if err := s.closeWindowLocked(ctx, contestID, now); err != nil {
		return err
	}
	_, err = s.evaluateLocked(ctx, contestID)
	return err
}

// closeWindowLocked voids every OPEN question and moves an ACTIVE contest to
// EVALUATING in one transaction. Callers hold the contest lock.
func (s *service) closeWindowLocked(ctx context.Context, contestID uuid.UUID, now time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginContestTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	contest, err := tx.GetContest(ctx, contestID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil {
		return fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}
	if contest.State != domain.ContestStateActive && contest.State != domain.ContestStateEvaluating {
		return nil
	}

	voided, err := tx.VoidOpenQuestions(ctx, contestID, now)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToVoidQuestions, err)
	}

	moved := false
	if contest.State == domain.ContestStateActive {
		rows, err := tx.UpdateContestStateIfMatches(ctx, contestID, domain.ContestStateActive, domain.ContestStateEvaluating)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToTransition, err)
		}
		moved = rows == 1
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	if voided > 0 {
		log.Warn(LogMsgUnresolvedAtWindowClose, "contest_id", contestID, "count", voided,
			"error", domain.ErrUnresolvedQuestionAtWindowClose)
		metrics.QuestionsVoided.Add(float64(voided))
	}
	if moved {
		log.Info(LogMsgContestTransitioned, "contest_id", contestID,
			"from", domain.ContestStateActive, "to", domain.ContestStateEvaluating)
		s.publish(ctx, event.NewContestStateChangedEvent(contestID.String(), domain.ContestStateActive, domain.ContestStateEvaluating))
	}
	return nil
}

func (s *service) AdvanceDue(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	due, err := s.repo.ListDueContests(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToListDue, err)
	}

	advanced := 0
	var errs []error
	for i := range due {
		if err := s.advance(ctx, due[i].ID, now); err != nil {
			log.Error(LogMsgAdvanceDueFailed, "contest_id", due[i].ID, "error", err)
			errs = append(errs, fmt.Errorf("contest %s: %w", due[i].ID, err))
			continue
		}
		advanced++
	}
	return advanced, errors.Join(errs...)
}

// advance walks one contest through every transition due at now
func (s *service) advance(ctx context.Context, contestID uuid.UUID, now time.Time) error {
	ctx = logger.WithContest(ctx, contestID.String())
	unlock := s.locks.Lock(contestID)
	defer unlock()

	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return err
	}

	if contest.State == domain.ContestStatePending {
		if !contest.HasStarted(now) {
			return nil
		}
		if err := s.transition(ctx, contestID, domain.ContestStatePending, domain.ContestStateActive); err != nil {
			return err
		}
		contest.State = domain.ContestStateActive
	}

	switch contest.State {
	case domain.ContestStateActive:
		if !contest.WindowClosed(now) {
			return nil
		}
		if err := s.closeWindowLocked(ctx, contestID, now); err != nil {
			return err
		}
	case domain.ContestStateEvaluating:
		if contest.WindowClosed(now) {
			if err := s.closeWindowLocked(ctx, contestID, now); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	_, err = s.evaluateLocked(ctx, contestID)
	return err
}
