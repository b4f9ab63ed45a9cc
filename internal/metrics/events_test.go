package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
)

func TestEventMetricsCollector_Submissions(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()

	before := testutil.ToFloat64(Submissions.WithLabelValues(SubmissionLate))
	err := c.HandleEvent(ctx, event.Event{
		Type:    event.PredictionSubmitted,
		Payload: domain.PredictionSubmittedPayload{IsLate: true},
	})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(Submissions.WithLabelValues(SubmissionLate)))
}

func TestEventMetricsCollector_Finalized(t *testing.T) {
	c := NewEventMetricsCollector()
	ctx := context.Background()

	before := testutil.ToFloat64(PrizeMoneyDistributed.WithLabelValues("EUR"))
	err := c.HandleEvent(ctx, event.Event{
		Type:    event.ContestFinalized,
		Payload: domain.ContestFinalizedPayload{Total: "250.50", Currency: "EUR"},
	})
	assert.NoError(t, err)
	assert.InDelta(t, before+250.50, testutil.ToFloat64(PrizeMoneyDistributed.WithLabelValues("EUR")), 0.001)
}

func TestEventMetricsCollector_UnknownPayloadIgnored(t *testing.T) {
	c := NewEventMetricsCollector()
	err := c.HandleEvent(context.Background(), event.Event{Type: "other", Payload: 42})
	assert.NoError(t, err)
}
