package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/metrics"
	"github.com/osse101/PredictionContest_Go/internal/worker"
)

// EventHandlerDependencies holds the subscribers wired to the event bus
type EventHandlerDependencies struct {
	EventBus           event.Bus
	EventLogService    eventlog.Service
	LeaderboardService leaderboard.Service
	ContestWorker      *worker.ContestWorker
}

// RegisterEventHandlers subscribes the metrics collector, the audit log,
// leaderboard cache invalidation and the contest timer worker
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsRegistered)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSubscribeAuditTrail, err)
	}
	slog.Info(LogMsgAuditTrailSubscribed)

	deps.LeaderboardService.Subscribe(deps.EventBus)
	slog.Info(LogMsgLeaderboardSubscribed)

	if deps.ContestWorker != nil {
		deps.ContestWorker.Subscribe(deps.EventBus)
		slog.Info(LogMsgContestWorkerSubscribed)
	}
	return nil
}
