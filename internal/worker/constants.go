package worker

import "time"

// DefaultJobTimeout bounds a single pooled job
const DefaultJobTimeout = 2 * time.Minute

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, dropping job"
)

// ============================================================================
// Log Messages - Timer Workers
// ============================================================================

// Log messages shared by timer-driven workers
const (
	LogMsgWorkerShuttingDown     = "Shutting down worker"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timeout, some executions may still be running"
	LogMsgTimerCancelled         = "Cancelled pending contest timer"
)

// ============================================================================
// Log Messages - Contest Worker
// ============================================================================

// Log messages for contest worker operations
const (
	LogMsgFailedToLoadContestsOnStartup = "Failed to load open contests on startup"
	LogMsgSchedulingContestTransition   = "Scheduling contest transition"
	LogMsgRunningContestTransition      = "Running scheduled contest transition"
	LogMsgContestTransitionFailed       = "Scheduled contest transition failed"
	LogMsgInvalidContestEvent           = "Ignoring contest event without a valid contest id"
)

// ============================================================================
// Log Messages - Sweep Job
// ============================================================================

// Log messages for the periodic sweep
const (
	LogMsgSweepCompleted = "Contest sweep completed"
	ErrMsgSweepFailed    = "contest sweep failed"
)

// Names used in logs and job metrics
const (
	ContestWorkerName = "contest worker"
	SweepJobName      = "contest_sweep"
)
