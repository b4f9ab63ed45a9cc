package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// SweepJob applies every overdue contest transition. It backs up the timers
// in ContestWorker and retries contests left in EVALUATING.
type SweepJob struct {
	service contest.Service
	now     func() time.Time
}

// NewSweepJob creates a new SweepJob
func NewSweepJob(service contest.Service) *SweepJob {
	return &SweepJob{service: service, now: time.Now}
}

// Name labels the sweep in logs and metrics
func (j *SweepJob) Name() string { return SweepJobName }

// Process advances every contest whose window boundary has passed
func (j *SweepJob) Process(ctx context.Context) error {
	n, err := j.service.AdvanceDue(ctx, j.now())
	if err != nil {
		return fmt.Errorf("%s after %d contests: %w", ErrMsgSweepFailed, n, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgSweepCompleted, "contests", n)
	}
	return nil
}
