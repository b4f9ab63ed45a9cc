package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/PredictionContest_Go/internal/contest"
)

// SeedContests creates every contest defined in dir that does not exist yet.
// An empty dir disables seeding.
func SeedContests(ctx context.Context, dir string, svc contest.Service) error {
	if dir == "" {
		return nil
	}
	created, err := contest.NewLoader(dir).Seed(ctx, svc)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedContests, err)
	}
	slog.Info(LogMsgContestsSeeded, "dir", dir, "created", created)
	return nil
}
