package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/scheduler"
	"github.com/osse101/PredictionContest_Go/internal/server"
	"github.com/osse101/PredictionContest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ContestWorker      *worker.ContestWorker
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
	CloseCache         func()
}

// GracefulShutdown stops components in dependency order: the HTTP server,
// then background work, then the event publisher so pending events flush,
// then storage and cache connections. Errors are logged and do not stop the
// sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}
	if c.ContestWorker != nil {
		shutdownService(ctx, ServiceNameContestWorker, c.ContestWorker)
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgDrainingEvents)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgPublisherShutdownFailed, "error", err)
		}
	}

	if c.CloseCache != nil {
		c.CloseCache()
	}
	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
