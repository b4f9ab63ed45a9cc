package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// LoggedEventTypes are the contest events persisted to the audit log
var LoggedEventTypes = []event.Type{
	event.ContestCreated,
	event.ContestStateChanged,
	event.ContestFinalized,
	event.PredictionSubmitted,
	event.QuestionResolved,
	event.QuestionScored,
}

// Service records contest events and serves them back per contest
type Service interface {
	Subscribe(bus event.Bus) error

	// ContestTrail returns up to limit entries for one contest, newest first
	ContestTrail(ctx context.Context, contestID string, limit int) ([]Entry, error)

	// Prune deletes entries older than retention
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the audit trail service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, t := range LoggedEventTypes {
		bus.Subscribe(t, s.record)
	}
	return nil
}

// record stores evt. A payload that cannot be flattened into a JSON object
// is skipped rather than failing the publish.
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := asObject(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadSkipped, "type", evt.Type, "error", err)
		return nil
	}
	metadata, _ := asObject(evt.Metadata)

	entry := Entry{EventType: string(evt.Type), Payload: payload, Metadata: metadata}
	if id := event.ContestIDFromEvent(evt); id != "" {
		entry.ContestID = &id
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		log.Error(LogMsgAppendFailed, "type", evt.Type, "contest_id", entry.ContestID, "error", err)
		return fmt.Errorf("%s: %w", ErrMsgAppend, err)
	}
	return nil
}

func asObject(v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return m, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ContestTrail(ctx context.Context, contestID string, limit int) ([]Entry, error) {
	return s.repo.List(ctx, Query{ContestID: &contestID, Limit: limit})
}

func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("%s: %s", ErrMsgBadRetention, retention)
	}
	return s.repo.DeleteBefore(ctx, s.now().Add(-retention))
}
