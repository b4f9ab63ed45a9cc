package eventlog

import "time"

// DefaultRetention is how long audit entries are kept
const DefaultRetention = 90 * 24 * time.Hour

// PruneJobName labels the prune job in logs and metrics
const PruneJobName = "audit_prune"

const (
	LogMsgPayloadSkipped = "Event payload is not an object, not recorded"
	LogMsgAppendFailed   = "Failed to record event"
	LogMsgPruneFailed    = "Audit trail prune failed"
	LogMsgPruned         = "Audit trail pruned"

	ErrMsgAppend       = "failed to append audit entry"
	ErrMsgBadRetention = "retention must be positive"
)
