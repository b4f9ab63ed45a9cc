package metrics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all contest events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ContestCreated,
		event.ContestStateChanged,
		event.ContestFinalized,
		event.PredictionSubmitted,
		event.QuestionResolved,
		event.QuestionScored,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.PredictionSubmittedPayload:
		switch {
		case p.IsLate:
			Submissions.WithLabelValues(SubmissionLate).Inc()
		case p.Replaced:
			Submissions.WithLabelValues(SubmissionReplaced).Inc()
		default:
			Submissions.WithLabelValues(SubmissionAccepted).Inc()
		}

	case domain.QuestionResolvedPayload:
		QuestionsResolved.Inc()

	case domain.QuestionScoredPayload:
		SubmissionsScored.Add(float64(p.SubmissionCount))

	case domain.ContestStateChangedPayload:
		ContestTransitions.WithLabelValues(string(p.To)).Inc()

	case domain.ContestFinalizedPayload:
		ContestsFinalized.Inc()
		total, err := decimal.NewFromString(p.Total)
		if err != nil {
			log.Debug(LogMsgInvalidTotal, "total", p.Total)
			return nil
		}
		PrizeMoneyDistributed.WithLabelValues(p.Currency).Add(total.InexactFloat64())

	case domain.ContestCreatedPayload:
		// counted by EventsPublished only

	default:
		log.Debug(LogMsgUnknownPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
