// Package scoring turns resolved predictions into points.
package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

// Breakdown is every factor that went into one submission's score
type Breakdown struct {
	IsCorrect        bool
	IsPartial        bool
	BeatOracle       bool
	Base             decimal.Decimal
	ConfidenceFactor decimal.Decimal
	CategoryWeight   decimal.Decimal
	DifficultyFactor decimal.Decimal
	StreakBonus      decimal.Decimal
	OracleBonus      decimal.Decimal
	Raw              decimal.Decimal
	Final            int64
	StreakAfter      int
}

// Score computes the points for one submission against a resolved question.
// The raw value is computed in exact decimal arithmetic and rounded once,
// half away from zero.
func Score(rules domain.ScoringRules, q *domain.PredictionQuestion, sub *domain.PredictionSubmission, streakBefore int) (Breakdown, error) {
	if q.ResolvedOutcome == nil {
		return Breakdown{}, fmt.Errorf("%w: question %s is not resolved", domain.ErrInvalidInput, q.ID)
	}

	var b Breakdown
	b.IsCorrect = sub.Choice == *q.ResolvedOutcome
	b.IsPartial = !b.IsCorrect && q.IsPartialMatch(sub.Choice)

	switch {
	case b.IsCorrect:
		b.Base = rules.CorrectPrediction
	case b.IsPartial:
		b.Base = rules.PartialCredit
	default:
		b.Base = decimal.Zero
	}

	b.ConfidenceFactor = decimal.NewFromInt(1)
	if rules.ConfidenceMultiplier {
		b.ConfidenceFactor = decimal.NewFromInt(int64(sub.Confidence)).Div(decimal.NewFromInt(percentDivisor))
	}
	b.CategoryWeight = rules.CategoryWeight(q.Category)
	b.DifficultyFactor = rules.DifficultyFactor(q.Difficulty)

	b.StreakBonus = decimal.Zero
	if b.IsCorrect && !sub.IsLate {
		b.StreakBonus = StreakBonus(rules.Streak, streakBefore)
	}

	b.OracleBonus = decimal.Zero
	if b.IsCorrect && q.OracleChoice != sub.Choice {
		b.BeatOracle = true
		b.OracleBonus = rules.OracleBeatBonus
	}

	b.Raw = b.Base.
		Mul(b.ConfidenceFactor).
		Mul(b.CategoryWeight).
		Mul(b.DifficultyFactor).
		Add(b.StreakBonus).
		Add(b.OracleBonus)

	final := b.Raw.Round(0)
	if final.IsNegative() {
		return b, fmt.Errorf("%w: %s for participant %s on question %s", domain.ErrNegativeScore, final, sub.ParticipantID, q.ID)
	}
	b.Final = final.IntPart()
	b.StreakAfter = streak.After(streakBefore, b.IsCorrect, sub.IsLate)
	return b, nil
}

// StreakBonus returns the bonus for a correct pick made with streakBefore
// consecutive correct picks behind it. The streak including this pick must
// reach MinStreak; the bonus then grows by BonusPerCorrect per additional
// correct pick, capped at MaxBonus when MaxBonus is positive.
func StreakBonus(rules domain.StreakBonusRules, streakBefore int) decimal.Decimal {
	if !rules.Active() {
		return decimal.Zero
	}
	streakNow := streakBefore + 1
	if streakNow < rules.MinStreak {
		return decimal.Zero
	}
	steps := decimal.NewFromInt(int64(streakNow - rules.MinStreak + 1))
	bonus := steps.Mul(rules.BonusPerCorrect)
	if rules.MaxBonus.IsPositive() && bonus.GreaterThan(rules.MaxBonus) {
		return rules.MaxBonus
	}
	return bonus
}
