// Package payout distributes a prize pool over a final leaderboard in whole
// cents with an exact-sum guarantee.
package payout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// FloorToCents truncates an amount toward negative infinity at cent precision
func FloorToCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundFloor(domain.CentPlaces)
}

// TierAmounts returns the floored amount of every tier keyed by rank
func TierAmounts(pool domain.PrizePool) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(pool.Tiers))
	for _, tier := range pool.Tiers {
		out[tier.Rank] = FloorToCents(pool.Total.Mul(tier.Percentage).Div(hundred))
	}
	return out
}

// Calculate splits the pool over the ranked board. Participants tied at rank
// r with k members pool the tiers r..r+k-1 and split them evenly. Every cent
// lost to flooring, plus tiers nobody reached, goes to the first participant
// ranked 1. The result always sums to the pool total or an error is returned.
func Calculate(pool domain.PrizePool, board []domain.LeaderboardEntry) ([]domain.Payout, error) {
	if len(board) == 0 {
		if pool.Total.IsZero() {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: no ranked participants for a pool of %s", domain.ErrPayoutSumMismatch, pool.Total)
	}

	tiers := TierAmounts(pool)
	groups := groupByRank(board)

	amounts := make([]decimal.Decimal, len(board))
	for _, g := range groups {
		pooled := decimal.Zero
		for rank := g.rank; rank < g.rank+len(g.indexes); rank++ {
			if amount, ok := tiers[rank]; ok {
				pooled = pooled.Add(amount)
			}
		}
		if pooled.IsZero() {
			continue
		}
		share := FloorToCents(pooled.Div(decimal.NewFromInt(int64(len(g.indexes)))))
		for _, idx := range g.indexes {
			amounts[idx] = share
		}
	}

	first := -1
	for i, entry := range board {
		if entry.Rank == 1 {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("%w: leaderboard has no rank 1 to receive the remainder", domain.ErrPayoutSumMismatch)
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	remainder := pool.Total.Sub(sum)
	amounts[first] = amounts[first].Add(remainder)

	var payouts []domain.Payout
	for i, entry := range board {
		if amounts[i].IsZero() {
			continue
		}
		if amounts[i].IsNegative() {
			return nil, fmt.Errorf("%w: negative amount %s for %s", domain.ErrPayoutSumMismatch, amounts[i], entry.ParticipantID)
		}
		payouts = append(payouts, domain.Payout{
			ParticipantID: entry.ParticipantID,
			Rank:          entry.Rank,
			Amount:        amounts[i],
		})
	}

	if err := Verify(pool, payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}

// Verify checks that payouts sum to exactly the pool total
func Verify(pool domain.PrizePool, payouts []domain.Payout) error {
	sum := decimal.Zero
	for _, p := range payouts {
		sum = sum.Add(p.Amount)
	}
	if !sum.Equal(pool.Total) {
		return fmt.Errorf("%w: payouts sum to %s, pool is %s", domain.ErrPayoutSumMismatch, sum, pool.Total)
	}
	return nil
}

type rankGroup struct {
	rank    int
	indexes []int
}

// groupByRank collects consecutive entries sharing a rank. The board is
// already sorted, so tied entries are adjacent.
func groupByRank(board []domain.LeaderboardEntry) []rankGroup {
	var groups []rankGroup
	for i, entry := range board {
		if n := len(groups); n > 0 && groups[n-1].rank == entry.Rank {
			groups[n-1].indexes = append(groups[n-1].indexes, i)
			continue
		}
		groups = append(groups, rankGroup{rank: entry.Rank, indexes: []int{i}})
	}
	return groups
}
