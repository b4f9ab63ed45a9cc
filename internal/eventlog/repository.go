package eventlog

import (
	"context"
	"time"
)

// Entry is one row of a contest's audit trail
type Entry struct {
	ID        int64          `json:"id"`
	EventType string         `json:"event_type"`
	ContestID *string        `json:"contest_id,omitempty"`
	Payload   map[string]any `json:"payload"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Query selects entries. Nil fields do not filter; Limit <= 0 means no limit.
type Query struct {
	ContestID *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository stores the audit trail
type Repository interface {
	// Append stores entry. ID and CreatedAt are assigned by the store.
	Append(ctx context.Context, entry Entry) error

	// List returns matching entries, newest first
	List(ctx context.Context, q Query) ([]Entry, error)

	// DeleteBefore removes entries created before cutoff
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
