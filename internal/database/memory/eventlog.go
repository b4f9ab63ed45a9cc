package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/eventlog"
)

// EventLog is an eventlog.Repository kept in process memory
type EventLog struct {
	mu      sync.RWMutex
	lastID  int64
	entries []eventlog.Entry
	now     func() time.Time
}

var _ eventlog.Repository = (*EventLog)(nil)

// NewEventLog creates an empty in-memory audit trail
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

func (l *EventLog) Append(_ context.Context, entry eventlog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastID++
	entry.ID = l.lastID
	entry.CreatedAt = l.now()
	l.entries = append(l.entries, entry)
	return nil
}

func matches(e eventlog.Entry, q eventlog.Query) bool {
	switch {
	case q.ContestID != nil && (e.ContestID == nil || *e.ContestID != *q.ContestID):
		return false
	case q.EventType != nil && e.EventType != *q.EventType:
		return false
	case q.Since != nil && e.CreatedAt.Before(*q.Since):
		return false
	case q.Until != nil && e.CreatedAt.After(*q.Until):
		return false
	}
	return true
}

// List walks the log backwards so results come out newest first
func (l *EventLog) List(_ context.Context, q eventlog.Query) ([]eventlog.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]eventlog.Entry, 0)
	for i := len(l.entries) - 1; i >= 0; i-- {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		if matches(l.entries[i], q) {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

func (l *EventLog) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.entries)
	l.entries = slices.DeleteFunc(l.entries, func(e eventlog.Entry) bool {
		return e.CreatedAt.Before(cutoff)
	})
	return int64(before - len(l.entries)), nil
}
