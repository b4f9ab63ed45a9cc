package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PredictionContest_Go/internal/bootstrap"
	"github.com/osse101/PredictionContest_Go/internal/concurrency"
	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/handler"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/ledger"
	"github.com/osse101/PredictionContest_Go/internal/scheduler"
	"github.com/osse101/PredictionContest_Go/internal/scoring"
	"github.com/osse101/PredictionContest_Go/internal/server"
	"github.com/osse101/PredictionContest_Go/internal/streak"
	"github.com/osse101/PredictionContest_Go/internal/worker"
)

const (
	shutdownTimeout   = 30 * time.Second
	backgroundWorkers = 2
	backgroundQueue   = 16
	auditPrunePeriod  = 24 * time.Hour
)

// @title Prediction Contest API
// @version 1.0
// @description Scoring engine for prediction contests: submissions, live standings and prize payouts.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.CheckEnv(os.LookupEnv)
	if err != nil {
		return fmt.Errorf("environment check failed: %w", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if cfg.Version != "" {
		handler.Version = cfg.Version
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := bootstrap.NewEventSystem(cfg)
	if err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	cache, closeCache, err := bootstrap.InitializeLeaderboardCache(ctx, cfg)
	if err != nil {
		storage.Close()
		return err
	}

	contestSvc := contest.NewService(storage.Contest, events.Publisher, scoring.NewEngine(), concurrency.NewLockManager())
	ledgerSvc := ledger.NewService(storage.Contest, events.Publisher)
	leaderboardSvc := leaderboard.NewService(storage.Contest, streak.NewTracker(storage.Contest), cache)
	eventLogSvc := eventlog.NewService(storage.EventLog)

	contestWorker := worker.NewContestWorker(contestSvc)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           events.Bus,
		EventLogService:    eventLogSvc,
		LeaderboardService: leaderboardSvc,
		ContestWorker:      contestWorker,
	}); err != nil {
		return err
	}

	if err := bootstrap.SeedContests(ctx, cfg.ContestsDir, contestSvc); err != nil {
		return err
	}
	contestWorker.Start(ctx)

	pool := worker.NewPool(backgroundWorkers, backgroundQueue)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Every(cfg.SweepInterval, worker.NewSweepJob(contestSvc), scheduler.Immediately())
	sched.Every(auditPrunePeriod, eventlog.NewPruneJob(eventLogSvc, eventlog.DefaultRetention))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, storage.Health, server.Services{
		Contest:     contestSvc,
		Ledger:      ledgerSvc,
		Leaderboard: leaderboardSvc,
		EventLog:    eventLogSvc,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			Scheduler:          sched,
			WorkerPool:         pool,
			ContestWorker:      contestWorker,
			ResilientPublisher: events.Publisher,
			Storage:            storage,
			CloseCache:         closeCache,
		})
		return nil
	})

	return g.Wait()
}
