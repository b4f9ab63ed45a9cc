// Package streak exposes per-participant streak state. Streaks only change
// inside the scoring pass transaction; this package reads them and computes
// transitions.
package streak

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/repository"
)

// Tracker reads the streak state of contest participants
type Tracker interface {
	// Get returns the participant's current streak, 0 when unknown
	Get(ctx context.Context, contestID uuid.UUID, participantID string) (int, error)

	// Snapshot returns every participant's current streak in the contest
	Snapshot(ctx context.Context, contestID uuid.UUID) (map[string]int, error)
}

type tracker struct {
	repo repository.Contest
}

// NewTracker creates a streak tracker over the contest store
func NewTracker(repo repository.Contest) Tracker {
	return &tracker{repo: repo}
}

func (t *tracker) Get(ctx context.Context, contestID uuid.UUID, participantID string) (int, error) {
	snap, err := t.Snapshot(ctx, contestID)
	if err != nil {
		return 0, err
	}
	return snap[participantID], nil
}

func (t *tracker) Snapshot(ctx context.Context, contestID uuid.UUID) (map[string]int, error) {
	streaks, err := t.repo.GetStreaks(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadStreaks, err)
	}
	return FromStates(streaks), nil
}
