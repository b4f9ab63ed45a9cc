package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/repository"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

// QuestionResult summarizes one question's scoring
type QuestionResult struct {
	Question domain.PredictionQuestion
	Scored   int
	Skipped  int
}

// Engine runs scoring passes inside a contest transaction
type Engine struct {
	now func() time.Time
}

// NewEngine creates a scoring engine using the wall clock
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates a scoring engine with an injected clock
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Frontier returns the questions that may be scored now: resolved and
// unscored questions in ordinal order, up to the first question still OPEN.
// VOID questions neither block the frontier nor get scored.
func Frontier(questions []domain.PredictionQuestion) []domain.PredictionQuestion {
	var out []domain.PredictionQuestion
	for _, q := range questions {
		switch q.Status {
		case domain.QuestionStatusOpen:
			return out
		case domain.QuestionStatusVoid:
			continue
		}
		if !q.IsScored() {
			out = append(out, q)
		}
	}
	return out
}

// ScoreQuestion scores one resolved question in a single pass
func (e *Engine) ScoreQuestion(ctx context.Context, tx repository.ContestTx, contest *domain.Contest, q domain.PredictionQuestion) (*QuestionResult, error) {
	results, err := e.ScorePass(ctx, tx, contest, []domain.PredictionQuestion{q})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// ScorePass scores the given questions in the order given, threading streak
// state from one question to the next, and persists the streaks once at the
// end. Questions must already be in ordinal order. Submissions and questions
// already scored are skipped, so a repeated pass changes nothing.
func (e *Engine) ScorePass(ctx context.Context, tx repository.ContestTx, contest *domain.Contest, questions []domain.PredictionQuestion) ([]QuestionResult, error) {
	states, err := tx.GetStreaks(ctx, contest.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadStreaks, err)
	}
	ledger := streak.NewLedger(contest.ID, states)
	now := e.now()

	results := make([]QuestionResult, 0, len(questions))
	for i := range questions {
		res, err := e.scoreQuestion(ctx, tx, contest, &questions[i], ledger, now)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if err := tx.UpsertStreaks(ctx, ledger.Changes(now)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveStreaks, err)
	}
	return results, nil
}

func (e *Engine) scoreQuestion(ctx context.Context, tx repository.ContestTx, contest *domain.Contest, q *domain.PredictionQuestion, ledger *streak.Ledger, now time.Time) (QuestionResult, error) {
	log := logger.FromContext(ctx)
	res := QuestionResult{Question: *q}

	if q.IsScored() {
		log.Debug(LogMsgQuestionAlreadyDone, "question_id", q.ID)
		return res, nil
	}

	subs, err := tx.GetQuestionSubmissions(ctx, q.ID)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrContextFailedToLoadSubmissions, err)
	}

	for i := range subs {
		sub := &subs[i]
		if sub.IsScored() {
			log.Debug(LogMsgSubmissionSkipped, "question_id", q.ID, "participant_id", sub.ParticipantID)
			res.Skipped++
			continue
		}

		b, err := Score(contest.Rules, q, sub, ledger.Before(sub.ParticipantID))
		if err != nil {
			return res, err
		}

		score := b.Final
		correct := b.IsCorrect
		sub.Score = &score
		sub.IsCorrect = &correct
		sub.BeatOracle = b.BeatOracle
		sub.StreakBonus = b.StreakBonus.Round(0).IntPart()
		sub.ScoredAt = &now

		rows, err := tx.SaveSubmissionScore(ctx, sub)
		if err != nil {
			return res, fmt.Errorf("%s: %w", ErrContextFailedToSaveScore, err)
		}
		if rows == 0 {
			res.Skipped++
			continue
		}
		ledger.Advance(sub.ParticipantID, q.Ordinal, b.StreakAfter)
		res.Scored++
	}

	if _, err := tx.MarkQuestionScored(ctx, q.ID, now); err != nil {
		return res, fmt.Errorf("%s: %w", ErrContextFailedToMarkScored, err)
	}
	res.Question.ScoredAt = &now

	log.Info(LogMsgQuestionScored, "contest_id", contest.ID, "question_id", q.ID,
		"ordinal", q.Ordinal, "scored", res.Scored, "skipped", res.Skipped)
	return res, nil
}
