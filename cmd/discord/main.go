// Command discord runs the Discord front end for the prediction contest API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/PredictionContest_Go/internal/discord"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

const serviceName = "prediction-contest-discord"

func main() {
	_ = godotenv.Load()

	cfg, err := discord.ConfigFromEnv(os.LookupEnv)
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: serviceName}, os.Stdout)
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, contest API calls will be rejected")
	}
	slog.Info("Starting Discord bot", "api_url", cfg.APIURL, "announce_channel", cfg.AnnounceChannel)

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// A failed sync leaves the previously published commands in place
	if err := bot.SyncCommands(cfg.ForceCommandUpdate); err != nil {
		slog.Error("Failed to sync slash commands", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Run(ctx) })
	g.Go(func() error { return discord.NewHTTPServer(cfg.WebhookAddr, cfg.APIKey, bot).Serve(ctx) })

	if err := g.Wait(); err != nil {
		slog.Error("Discord bot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Discord bot stopped")
}
