// Package worker runs contest background work: a bounded job pool and the
// timers that fire contest start and end transitions.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs are labelled by name in logs and metrics
type Named interface {
	Name() string
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// JobName is the label used for job in logs and metrics
func JobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", job)
}

// Pool runs jobs on a fixed set of goroutines fed by a bounded queue
type Pool struct {
	size    int
	queue   chan Job
	timeout time.Duration

	quit      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool creates a pool of size goroutines. Each job run is bounded by
// DefaultJobTimeout.
func NewPool(size, queueSize int) *Pool {
	return &Pool{
		size:    max(size, 1),
		queue:   make(chan Job, queueSize),
		timeout: DefaultJobTimeout,
		quit:    make(chan struct{}),
	}
}

// Start launches the goroutines; later calls do nothing
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(p.size)
		for range p.size {
			go p.loop()
		}
	})
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.queue:
			p.run(job)
		}
	}
}

// run executes one job, converting a panic into a failed run
func (p *Pool) run(job Job) {
	name := JobName(job)
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	result := metrics.JobSucceeded
	defer func() {
		if r := recover(); r != nil {
			result = metrics.JobPanicked
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "job", name, "panic", r, "stack", string(debug.Stack()))
		}
		metrics.WorkerJobs.WithLabelValues(name, result).Inc()
		metrics.WorkerJobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	if err := job.Process(ctx); err != nil {
		result = metrics.JobFailed
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", name, "error", err)
	}
}

// Enqueue hands job to the pool without blocking. It returns false, dropping
// the job, when the queue is full or the pool has stopped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.queue <- job:
		return true
	default:
		metrics.WorkerJobs.WithLabelValues(JobName(job), metrics.JobDropped).Inc()
		logger.Warn(LogMsgWorkerQueueFull, "job", JobName(job), "queue_size", cap(p.queue))
		return false
	}
}

// Pending is the number of queued jobs not yet picked up
func (p *Pool) Pending() int { return len(p.queue) }

// Stop waits for running jobs to finish. Queued jobs that have not started
// are abandoned.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
