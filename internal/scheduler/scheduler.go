// Package scheduler feeds periodic jobs to a worker pool.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
	"github.com/osse101/PredictionContest_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking; *worker.Pool satisfies it
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Option adjusts a single schedule
type Option func(*entry)

// Immediately also enqueues the job when it is scheduled
func Immediately() Option {
	return func(e *entry) { e.immediate = true }
}

// Scheduler enqueues jobs on fixed intervals. A job is never queued again
// while its previous run is still queued or running; that tick is skipped.
type Scheduler struct {
	pool   Enqueuer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type entry struct {
	job       worker.Job
	name      string
	interval  time.Duration
	immediate bool
	busy      atomic.Bool
}

// New creates a scheduler feeding pool
func New(pool Enqueuer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Every enqueues job once per interval until Stop
func (s *Scheduler) Every(interval time.Duration, job worker.Job, opts ...Option) {
	e := &entry{job: job, name: worker.JobName(job), interval: interval}
	for _, opt := range opts {
		opt(e)
	}
	logger.Info(LogMsgScheduled, "job", e.name, "interval", interval, "immediate", e.immediate)

	if e.immediate {
		s.fire(e)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.fire(e)
			}
		}
	}()
}

// fire enqueues one run of e unless the previous run is still outstanding
func (s *Scheduler) fire(e *entry) {
	if !e.busy.CompareAndSwap(false, true) {
		metrics.WorkerJobs.WithLabelValues(e.name, metrics.JobSkipped).Inc()
		return
	}
	run := &trackedJob{entry: e}
	if !s.pool.Enqueue(run) {
		e.busy.Store(false)
	}
}

// Stop halts every schedule. Runs already handed to the pool are unaffected.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// trackedJob clears its entry's busy flag once the run finishes
type trackedJob struct {
	entry *entry
}

func (t *trackedJob) Name() string { return t.entry.name }

func (t *trackedJob) Process(ctx context.Context) error {
	defer t.entry.busy.Store(false)
	return t.entry.job.Process(ctx)
}
