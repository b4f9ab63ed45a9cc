package domain

import (
	"fmt"
	"time"
)

// QuestionConfig describes a question supplied at contest creation
type QuestionConfig struct {
	Ordinal      int                `json:"ordinal" yaml:"ordinal" validate:"gte=1"`
	Prompt       string             `json:"prompt" yaml:"prompt" validate:"required,max=500"`
	Category     string             `json:"category" yaml:"category" validate:"required,max=64"`
	Difficulty   string             `json:"difficulty,omitempty" yaml:"difficulty" validate:"max=32"`
	Options      []PredictionOption `json:"options" yaml:"options" validate:"min=2,dive"`
	OracleChoice string             `json:"oracle_choice" yaml:"oracle_choice" validate:"required"`
	Deadline     *time.Time         `json:"deadline,omitempty" yaml:"deadline"`
}

// ContestConfig is everything the contest configuration collaborator supplies
type ContestConfig struct {
	Name      string           `json:"name" yaml:"name" validate:"required,max=200"`
	StartsAt  time.Time        `json:"starts_at" yaml:"starts_at" validate:"required"`
	EndsAt    time.Time        `json:"ends_at" yaml:"ends_at" validate:"required"`
	Rules     ScoringRules     `json:"rules" yaml:"rules"`
	PrizePool PrizePool        `json:"prize_pool" yaml:"prize_pool"`
	Questions []QuestionConfig `json:"questions" yaml:"questions" validate:"min=1,dive"`
}

// Validate performs the cross-field checks struct tags cannot express
func (c *ContestConfig) Validate() error {
	if !c.EndsAt.After(c.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalidContestConfig)
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if err := c.PrizePool.Validate(); err != nil {
		return err
	}

	ordinals := make(map[int]bool, len(c.Questions))
	for _, q := range c.Questions {
		if ordinals[q.Ordinal] {
			return fmt.Errorf("%w: duplicate question ordinal %d", ErrInvalidContestConfig, q.Ordinal)
		}
		ordinals[q.Ordinal] = true

		optionIDs := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if optionIDs[opt.ID] {
				return fmt.Errorf("%w: question %d has duplicate option %q", ErrInvalidContestConfig, q.Ordinal, opt.ID)
			}
			optionIDs[opt.ID] = true
		}
		if !optionIDs[q.OracleChoice] {
			return fmt.Errorf("%w: question %d oracle choice %q is not an option", ErrInvalidContestConfig, q.Ordinal, q.OracleChoice)
		}
		for _, opt := range q.Options {
			for _, target := range opt.PartialCreditFor {
				if !optionIDs[target] || target == opt.ID {
					return fmt.Errorf("%w: question %d option %q has invalid partial credit target %q", ErrInvalidContestConfig, q.Ordinal, opt.ID, target)
				}
			}
		}
		if q.Deadline != nil && q.Deadline.After(c.EndsAt) {
			return fmt.Errorf("%w: question %d deadline is after contest end", ErrInvalidContestConfig, q.Ordinal)
		}
	}
	return nil
}
