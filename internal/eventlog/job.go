package eventlog

import (
	"context"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// PruneJob trims the audit trail on the scheduler's cadence
type PruneJob struct {
	svc       Service
	retention time.Duration
}

// NewPruneJob creates a job keeping retention worth of entries
func NewPruneJob(svc Service, retention time.Duration) *PruneJob {
	return &PruneJob{svc: svc, retention: retention}
}

// Name labels the job in logs and metrics
func (j *PruneJob) Name() string { return PruneJobName }

// Process deletes entries older than the retention window
func (j *PruneJob) Process(ctx context.Context) error {
	start := time.Now()
	deleted, err := j.svc.Prune(ctx, j.retention)
	log := logger.FromContext(ctx).With("retention", j.retention, "took", time.Since(start))
	if err != nil {
		log.Error(LogMsgPruneFailed, "error", err)
		return err
	}
	if deleted > 0 {
		log.Info(LogMsgPruned, "deleted", deleted)
	}
	return nil
}
