package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CentPlaces is the number of decimal places money amounts carry
const CentPlaces = 2

// PrizeTier awards Percentage of the pool to the participant ranked Rank
type PrizeTier struct {
	Rank       int             `json:"rank" yaml:"rank"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
}

// PrizePool is the total amount distributed when a contest finalizes
type PrizePool struct {
	Total    decimal.Decimal `json:"total" yaml:"total"`
	Currency string          `json:"currency" yaml:"currency"`
	Tiers    []PrizeTier     `json:"tiers" yaml:"tiers"`
}

// Validate enforces tier percentages summing to exactly 100
func (p PrizePool) Validate() error {
	if p.Total.IsNegative() {
		return fmt.Errorf("%w: total must not be negative", ErrInvalidPrizePool)
	}
	if !p.Total.Equal(p.Total.Round(CentPlaces)) {
		return fmt.Errorf("%w: total %s has sub-cent precision", ErrInvalidPrizePool, p.Total)
	}
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidPrizePool)
	}

	seen := make(map[int]bool, len(p.Tiers))
	sum := decimal.Zero
	for _, tier := range p.Tiers {
		if tier.Rank < 1 {
			return fmt.Errorf("%w: tier rank %d must be positive", ErrInvalidPrizePool, tier.Rank)
		}
		if seen[tier.Rank] {
			return fmt.Errorf("%w: duplicate tier rank %d", ErrInvalidPrizePool, tier.Rank)
		}
		seen[tier.Rank] = true
		if !tier.Percentage.IsPositive() {
			return fmt.Errorf("%w: tier %d percentage must be positive", ErrInvalidPrizePool, tier.Rank)
		}
		sum = sum.Add(tier.Percentage)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tier percentages sum to %s, expected 100", ErrInvalidPrizePool, sum)
	}
	return nil
}

// Payout is the amount awarded to one ranked participant
type Payout struct {
	ParticipantID string          `json:"participant_id"`
	Rank          int             `json:"rank"`
	Amount        decimal.Decimal `json:"amount"`
}

// ContestResult is the finalized leaderboard snapshot and its payouts
type ContestResult struct {
	ContestID   uuid.UUID          `json:"contest_id"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Payouts     []Payout           `json:"payouts"`
	Total       decimal.Decimal    `json:"total"`
	Currency    string             `json:"currency"`
	FinalizedAt time.Time          `json:"finalized_at"`
}

// PayoutSum adds every payout amount
func (r *ContestResult) PayoutSum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.Payouts {
		sum = sum.Add(p.Amount)
	}
	return sum
}
