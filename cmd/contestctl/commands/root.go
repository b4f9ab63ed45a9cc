// Package commands implements contestctl, the operator CLI. Commands talk to
// storage directly and never go through the HTTP API.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/PredictionContest_Go/internal/bootstrap"
	"github.com/osse101/PredictionContest_Go/internal/concurrency"
	"github.com/osse101/PredictionContest_Go/internal/config"
	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/event"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/logger"
	"github.com/osse101/PredictionContest_Go/internal/scoring"
	"github.com/osse101/PredictionContest_Go/internal/streak"
)

var (
	backendOverride string
	logLevel        string
)

var rootCmd = &cobra.Command{
	Use:   "contestctl",
	Short: "Operate prediction contests from the command line",
	Long: `contestctl inspects and drives contests against the configured storage.

Configuration is read from the environment and .env, the same as the server.

Examples:
  contestctl migrate
  contestctl contests --state ACTIVE
  contestctl standings 5f0c...
  contestctl resolve <question-id> home`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Level: logLevel, Format: logger.FormatText, Service: "contestctl"}, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendOverride, "storage", "", "override STORAGE_BACKEND (postgres or memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
}

// Execute runs the root command, cancelling on interrupt
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// app is the slice of the service graph the CLI needs
type app struct {
	cfg         *config.Config
	storage     *bootstrap.Storage
	contests    contest.Service
	leaderboard leaderboard.Service
}

func (a *app) Close() {
	a.storage.Close()
}

// openApp connects storage and builds services without a cache or event
// subscribers. migrate forces RUN_MIGRATIONS on.
func openApp(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.LoadForTools()
	if err != nil {
		return nil, err
	}
	if backendOverride != "" {
		cfg.StorageBackend = backendOverride
	}
	cfg.RunMigrations = cfg.RunMigrations || migrate

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus := event.NewMemoryBus()
	return &app{
		cfg:         cfg,
		storage:     storage,
		contests:    contest.NewService(storage.Contest, bus, scoring.NewEngine(), concurrency.NewLockManager()),
		leaderboard: leaderboard.NewService(storage.Contest, streak.NewTracker(storage.Contest), leaderboard.NewNoopCache()),
	}, nil
}

// withApp wraps a command body with openApp and Close
func withApp(fn func(ctx context.Context, a *app, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), false)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer a.Close()
		return fn(cmd.Context(), a, cmd.OutOrStdout(), args)
	}
}
