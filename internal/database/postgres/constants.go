package postgres

const pgCodeUniqueViolation = "23505"

const (
	ErrMsgBeginTx       = "failed to begin contest transaction"
	ErrMsgEncodePayload = "failed to encode event payload"
	ErrMsgAppendEvent   = "failed to append event"
	ErrMsgListEvents    = "failed to list events"
	ErrMsgPruneEvents   = "failed to prune events"
)
