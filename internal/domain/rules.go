package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// StreakBonusRules configures the bonus awarded for consecutive correct picks.
// A MinStreak of zero turns the bonus off. A MaxBonus of zero leaves it
// uncapped.
type StreakBonusRules struct {
	MinStreak       int             `json:"min_streak" yaml:"min_streak"`
	BonusPerCorrect decimal.Decimal `json:"bonus_per_correct" yaml:"bonus_per_correct"`
	MaxBonus        decimal.Decimal `json:"max_bonus" yaml:"max_bonus"`
}

// Active reports whether streak bonuses are awarded at all
func (r StreakBonusRules) Active() bool {
	return r.MinStreak >= 1
}

// ScoringRules are the immutable per-contest scoring parameters.
// Category and difficulty keys are matched case-insensitively.
type ScoringRules struct {
	CorrectPrediction     decimal.Decimal            `json:"correct_prediction" yaml:"correct_prediction"`
	PartialCredit         decimal.Decimal            `json:"partial_credit" yaml:"partial_credit"`
	ConfidenceMultiplier  bool                       `json:"confidence_multiplier" yaml:"confidence_multiplier"`
	Streak                StreakBonusRules           `json:"streak" yaml:"streak"`
	CategoryWeights       map[string]decimal.Decimal `json:"category_weights,omitempty" yaml:"category_weights"`
	DifficultyMultipliers map[string]decimal.Decimal `json:"difficulty_multipliers,omitempty" yaml:"difficulty_multipliers"`
	OracleBeatBonus       decimal.Decimal            `json:"oracle_beat_bonus" yaml:"oracle_beat_bonus"`
	AllowLateEntries      bool                       `json:"allow_late_entries" yaml:"allow_late_entries"`
	PerQuestionDeadlines  bool                       `json:"per_question_deadlines" yaml:"per_question_deadlines"`
}

var keyFolder = cases.Fold()

// NormalizeKey folds a category or difficulty tag for map lookups
func NormalizeKey(key string) string {
	return keyFolder.String(strings.TrimSpace(key))
}

// Normalized returns a copy of the rules with folded map keys
func (r ScoringRules) Normalized() ScoringRules {
	out := r
	out.CategoryWeights = normalizeWeights(r.CategoryWeights)
	out.DifficultyMultipliers = normalizeWeights(r.DifficultyMultipliers)
	return out
}

func normalizeWeights(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[NormalizeKey(k)] = v
	}
	return out
}

// CategoryWeight returns the configured weight for category or 1
func (r ScoringRules) CategoryWeight(category string) decimal.Decimal {
	return lookupWeight(r.CategoryWeights, category)
}

// DifficultyFactor returns the configured multiplier for difficulty or 1
func (r ScoringRules) DifficultyFactor(difficulty string) decimal.Decimal {
	return lookupWeight(r.DifficultyMultipliers, difficulty)
}

func lookupWeight(weights map[string]decimal.Decimal, key string) decimal.Decimal {
	if key == "" || len(weights) == 0 {
		return decimal.NewFromInt(1)
	}
	if w, ok := weights[key]; ok {
		return w
	}
	if w, ok := weights[NormalizeKey(key)]; ok {
		return w
	}
	return decimal.NewFromInt(1)
}

// Validate rejects rule sets that could produce negative scores
func (r ScoringRules) Validate() error {
	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"correct_prediction", r.CorrectPrediction},
		{"partial_credit", r.PartialCredit},
		{"oracle_beat_bonus", r.OracleBeatBonus},
		{"streak.bonus_per_correct", r.Streak.BonusPerCorrect},
		{"streak.max_bonus", r.Streak.MaxBonus},
	}
	for _, c := range checks {
		if c.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidScoringRules, c.name)
		}
	}
	if r.Streak.MinStreak < 0 {
		return fmt.Errorf("%w: streak.min_streak must not be negative", ErrInvalidScoringRules)
	}
	if !r.Streak.Active() && (r.Streak.BonusPerCorrect.IsPositive() || r.Streak.MaxBonus.IsPositive()) {
		return fmt.Errorf("%w: streak bonus set without streak.min_streak", ErrInvalidScoringRules)
	}
	for k, w := range r.CategoryWeights {
		if w.IsNegative() {
			return fmt.Errorf("%w: category weight %q must not be negative", ErrInvalidScoringRules, k)
		}
	}
	for k, w := range r.DifficultyMultipliers {
		if w.IsNegative() {
			return fmt.Errorf("%w: difficulty multiplier %q must not be negative", ErrInvalidScoringRules, k)
		}
	}
	return nil
}
