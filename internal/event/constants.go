package event

import "time"

// EventSchemaVersion is stamped on every event built by the New*Event helpers
const EventSchemaVersion = "1.0"

// Retry queue
const (
	RetryQueueBufferSize = 1000
	RetryMaxAttempts     = 5
	// MaxRetryDelay caps the doubling backoff between attempts
	MaxRetryDelay = time.Minute
)

// deadLetterFileMode applies when the dead-letter file is created
const deadLetterFileMode = 0o644

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, dead-lettering event"
	LogMsgDeadLetterWriteFailed = "Failed to write dead-letter entry"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retries exhausted"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	ErrMsgHandlersFailed = "%d handler(s) failed for %s: %w"
	ErrMsgDecodePayload  = "decode %s payload"
)

// retryBackoff returns base doubled once per attempt after the first,
// capped at MaxRetryDelay
func retryBackoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return min(d, MaxRetryDelay)
}
