package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
	"github.com/osse101/PredictionContest_Go/internal/payout"
	"github.com/osse101/PredictionContest_Go/internal/repository"
	"github.com/osse101/PredictionContest_Go/internal/scoring"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

type evaluation struct {
	scored    int
	state     domain.ContestState
	finalized bool
}

// evaluateLocked scores the frontier and finalizes once nothing is left.
// Callers hold the contest lock.
func (s *service) evaluateLocked(ctx context.Context, contestID uuid.UUID) (evaluation, error) {
	scored, err := s.scoreFrontier(ctx, contestID)
	if err != nil {
		return evaluation{}, err
	}

	result, err := s.finalizeLocked(ctx, contestID)
	if err != nil {
		return evaluation{scored: scored, state: domain.ContestStateEvaluating}, err
	}

	contest, err := s.GetContest(ctx, contestID)
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{scored: scored, state: contest.State, finalized: result != nil}, nil
}

// scoreFrontier runs one scoring pass over the resolved, unscored questions
// that precede the first OPEN question
func (s *service) scoreFrontier(ctx context.Context, contestID uuid.UUID) (int, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginContestTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	contest, err := tx.GetContest(ctx, contestID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil || contest.State != domain.ContestStateEvaluating {
		return 0, nil
	}
	questions, err := tx.GetQuestions(ctx, contestID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestions, err)
	}
	frontier := scoring.Frontier(questions)
	if len(frontier) == 0 {
		return 0, nil
	}

	start := time.Now()
	results, err := s.engine.ScorePass(ctx, tx, contest, frontier)
	metrics.ScoringPassDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error(LogMsgScoringPassFailed, "contest_id", contestID, "error", err)
		return 0, fmt.Errorf("%s: %w", ErrContextScoringPassFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	submissions := 0
	for i := range results {
		submissions += results[i].Scored
		s.publish(ctx, event.NewQuestionScoredEvent(&results[i].Question, results[i].Scored))
	}
	log.Info(LogMsgScoringPassCompleted, "contest_id", contestID, "questions", len(results),
		"submissions", submissions, "duration", time.Since(start))
	return len(results), nil
}

// readyToFinalize reports whether every question is VOID or resolved and scored
func readyToFinalize(questions []domain.PredictionQuestion) bool {
	for _, q := range questions {
		switch q.Status {
		case domain.QuestionStatusOpen:
			return false
		case domain.QuestionStatusResolved:
			if !q.IsScored() {
				return false
			}
		}
	}
	return true
}

// finalizeLocked moves EVALUATING to FINALIZED and stores the payout snapshot
// in one transaction. The CAS on finalized_at runs before payouts are
// computed, so payouts are computed at most once per contest. Returns nil
// when the contest is not ready or already finalized.
func (s *service) finalizeLocked(ctx context.Context, contestID uuid.UUID) (*domain.ContestResult, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginContestTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	contest, err := tx.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil || contest.State != domain.ContestStateEvaluating {
		return nil, nil
	}
	questions, err := tx.GetQuestions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetQuestions, err)
	}
	if !readyToFinalize(questions) {
		return nil, nil
	}

	now := s.now()
	rows, err := tx.FinalizeContest(ctx, contestID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToFinalize, err)
	}
	if rows == 0 {
		return nil, nil
	}

	board, err := s.finalBoard(ctx, tx, contestID)
	if err != nil {
		return nil, err
	}

	payouts, err := payout.Calculate(contest.PrizePool, board)
	if err != nil {
		if errors.Is(err, domain.ErrPayoutSumMismatch) {
			log.Error(LogMsgPayoutSumMismatch, "contest_id", contestID,
				"total", contest.PrizePool.Total.StringFixed(domain.CentPlaces), "participants", len(board), "error", err)
			metrics.PayoutMismatches.Inc()
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToFinalize, err)
	}

	result := &domain.ContestResult{
		ContestID:   contestID,
		Leaderboard: board,
		Payouts:     payouts,
		Total:       contest.PrizePool.Total,
		Currency:    contest.PrizePool.Currency,
		FinalizedAt: now,
	}
	if err := tx.SaveContestResult(ctx, result); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveResult, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	log.Info(LogMsgContestFinalized, "contest_id", contestID, "participants", len(board),
		"payouts", len(payouts), "total", result.Total.StringFixed(domain.CentPlaces), "currency", result.Currency)
	s.publish(ctx, event.NewContestStateChangedEvent(contestID.String(), domain.ContestStateEvaluating, domain.ContestStateFinalized))
	s.publish(ctx, event.NewContestFinalizedEvent(result))
	return result, nil
}

func (s *service) finalBoard(ctx context.Context, tx repository.ContestTx, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	participants, err := tx.GetParticipants(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBuildBoard, err)
	}
	subs, err := tx.GetContestSubmissions(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBuildBoard, err)
	}
	states, err := tx.GetStreaks(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBuildBoard, err)
	}
	return leaderboard.Build(participants, subs, streak.FromStates(states)), nil
}
