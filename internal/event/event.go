package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Contest event types
const (
	ContestCreated      Type = domain.EventTypeContestCreated
	ContestStateChanged Type = domain.EventTypeContestStateChanged
	ContestFinalized    Type = domain.EventTypeContestFinalized
	PredictionSubmitted Type = domain.EventTypePredictionSubmitted
	QuestionResolved    Type = domain.EventTypeQuestionResolved
	QuestionScored      Type = domain.EventTypeQuestionScored
)

// Type-safe event constructors

// NewContestCreatedEvent creates a contest.created event
func NewContestCreatedEvent(c *domain.Contest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestCreated,
		Payload: domain.ContestCreatedPayload{
			ContestID:     c.ID.String(),
			Name:          c.Name,
			QuestionCount: len(c.QuestionIDs),
			StartsAt:      c.StartsAt.Unix(),
			EndsAt:        c.EndsAt.Unix(),
		},
	}
}

// NewContestStateChangedEvent creates a contest.state_changed event
func NewContestStateChangedEvent(contestID string, from, to domain.ContestState) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestStateChanged,
		Payload: domain.ContestStateChangedPayload{
			ContestID: contestID,
			From:      from,
			To:        to,
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"contest_id": contestID,
		},
	}
}

// NewContestFinalizedEvent creates a contest.finalized event
func NewContestFinalizedEvent(result *domain.ContestResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestFinalized,
		Payload: domain.ContestFinalizedPayload{
			ContestID:        result.ContestID.String(),
			ParticipantCount: len(result.Leaderboard),
			PayoutCount:      len(result.Payouts),
			Total:            result.Total.StringFixed(domain.CentPlaces),
			Currency:         result.Currency,
			Timestamp:        result.FinalizedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			"contest_id": result.ContestID.String(),
		},
	}
}

// NewPredictionSubmittedEvent creates a prediction.submitted event
func NewPredictionSubmittedEvent(sub *domain.PredictionSubmission, replaced bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PredictionSubmitted,
		Payload: domain.PredictionSubmittedPayload{
			ContestID:     sub.ContestID.String(),
			QuestionID:    sub.QuestionID.String(),
			ParticipantID: sub.ParticipantID,
			Confidence:    sub.Confidence,
			IsLate:        sub.IsLate,
			Replaced:      replaced,
			Timestamp:     sub.UpdatedAt.Unix(),
		},
		Metadata: map[string]interface{}{
			"contest_id": sub.ContestID.String(),
		},
	}
}

// NewQuestionResolvedEvent creates a question.resolved event
func NewQuestionResolvedEvent(q *domain.PredictionQuestion, outcome string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestionResolved,
		Payload: domain.QuestionResolvedPayload{
			ContestID:  q.ContestID.String(),
			QuestionID: q.ID.String(),
			Ordinal:    q.Ordinal,
			Outcome:    outcome,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"contest_id": q.ContestID.String(),
		},
	}
}

// NewQuestionScoredEvent creates a question.scored event
func NewQuestionScoredEvent(q *domain.PredictionQuestion, submissionCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestionScored,
		Payload: domain.QuestionScoredPayload{
			ContestID:       q.ContestID.String(),
			QuestionID:      q.ID.String(),
			Ordinal:         q.Ordinal,
			SubmissionCount: submissionCount,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"contest_id": q.ContestID.String(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrMsgHandlersFailed, len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// ContestIDFromEvent returns the contest_id carried in metadata or payload
func ContestIDFromEvent(e Event) string {
	if id, ok := e.GetMetadataValue("contest_id").(string); ok {
		return id
	}
	switch p := e.Payload.(type) {
	case domain.ContestCreatedPayload:
		return p.ContestID
	case domain.ContestStateChangedPayload:
		return p.ContestID
	case domain.ContestFinalizedPayload:
		return p.ContestID
	case domain.PredictionSubmittedPayload:
		return p.ContestID
	case domain.QuestionResolvedPayload:
		return p.ContestID
	case domain.QuestionScoredPayload:
		return p.ContestID
	}
	return ""
}
