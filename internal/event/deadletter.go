package event

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// DeadLetterSchemaVersion versions the DeadLetterEntry line format
const DeadLetterSchemaVersion = "1.1"

// DeadLetterEntry is one JSON line in the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	WrittenAt     time.Time `json:"written_at"`
	ContestID     string    `json:"contest_id,omitempty"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
	Event         Event     `json:"event"`
}

// DeadLetterWriter appends events that could not be delivered to a JSONL file
type DeadLetterWriter struct {
	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	written int
	closed  bool
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, deadLetterFileMode)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write records evt along with how many deliveries were tried
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		WrittenAt:     time.Now().UTC(),
		ContestID:     ContestIDFromEvent(evt),
		Attempts:      attempts,
		Event:         evt,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type,
		"contest_id", entry.ContestID,
		"attempts", attempts,
		"error", lastErr)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	if err := w.enc.Encode(entry); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written reports how many entries this writer has appended
func (w *DeadLetterWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close closes the underlying file. Later calls are no-ops.
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
