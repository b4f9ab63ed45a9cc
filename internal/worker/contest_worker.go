package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// ContestWorker fires the time-driven contest transitions: activation at
// StartsAt and window close at EndsAt
type ContestWorker struct {
	timers  *timerSet
	service contest.Service
	now     func() time.Time
}

// NewContestWorker creates a new ContestWorker
func NewContestWorker(service contest.Service) *ContestWorker {
	return NewContestWorkerWithClock(service, time.Now)
}

// NewContestWorkerWithClock creates a ContestWorker with an injected clock
func NewContestWorkerWithClock(service contest.Service, now func() time.Time) *ContestWorker {
	return &ContestWorker{timers: newTimerSet(), service: service, now: now}
}

// Start schedules every contest that is waiting on a start or end time
func (w *ContestWorker) Start(ctx context.Context) {
	log := logger.FromContext(ctx)

	for _, state := range []domain.ContestState{
		domain.ContestStatePending,
		domain.ContestStateActive,
		domain.ContestStateEvaluating,
	} {
		contests, err := w.service.ListContests(ctx, &state, 0)
		if err != nil {
			log.Error(LogMsgFailedToLoadContestsOnStartup, "state", state, "error", err)
			continue
		}
		for i := range contests {
			w.schedule(&contests[i])
		}
	}
}

// Subscribe subscribes the worker to contest events
func (w *ContestWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ContestCreated, w.handleContestCreated)
	bus.Subscribe(event.ContestStateChanged, w.handleStateChanged)
}

func (w *ContestWorker) handleContestCreated(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[domain.ContestCreatedPayload](e)
	if err != nil {
		return err
	}
	return w.reschedule(ctx, payload.ContestID)
}

func (w *ContestWorker) handleStateChanged(ctx context.Context, e event.Event) error {
	payload, err := event.DecodePayload[domain.ContestStateChangedPayload](e)
	if err != nil {
		return err
	}

	switch {
	case payload.To.IsTerminal():
		id, err := uuid.Parse(payload.ContestID)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgInvalidContestEvent, "contest_id", payload.ContestID)
			return nil
		}
		w.timers.disarm(id)
	case payload.To == domain.ContestStateActive:
		return w.reschedule(ctx, payload.ContestID)
	}
	return nil
}

func (w *ContestWorker) reschedule(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidContestEvent, "contest_id", rawID)
		return nil
	}
	c, err := w.service.GetContest(ctx, id)
	if err != nil {
		return err
	}
	w.schedule(c)
	return nil
}

// schedule arms the timer for the contest's next time-driven transition
func (w *ContestWorker) schedule(c *domain.Contest) {
	var (
		at  time.Time
		run func(ctx context.Context, id uuid.UUID) error
	)
	switch c.State {
	case domain.ContestStatePending:
		at, run = c.StartsAt, w.service.Activate
	case domain.ContestStateActive, domain.ContestStateEvaluating:
		at, run = c.EndsAt, w.service.CloseWindow
	default:
		return
	}

	id := c.ID
	delay := at.Sub(w.now())
	logger.FromContext(context.Background()).Info(LogMsgSchedulingContestTransition,
		"contest_id", id, "state", c.State, "delay", delay)

	w.timers.arm(id, delay, func() {
		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgRunningContestTransition, "contest_id", id, "state", c.State)
		if err := run(ctx, id); err != nil {
			log.Error(LogMsgContestTransitionFailed, "contest_id", id, "error", err)
		}
	})
}

// Shutdown cancels pending timers and waits for running transitions
func (w *ContestWorker) Shutdown(ctx context.Context) error {
	return w.timers.close(ctx, ContestWorkerName)
}

func (w *ContestWorker) pending() int {
	return w.timers.len()
}
