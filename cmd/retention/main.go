package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/turfvote/internal/adapters/repository"
	"github.com/vncsmyrnk/turfvote/internal/config"
	"github.com/vncsmyrnk/turfvote/internal/core/services"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// Use a timeout for the job so a stuck store cannot hang it forever.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	retention := services.NewRetentionService(stores.Events, cfg.RetentionPeriod, logger)

	logger.Info("starting retention job", "period", cfg.RetentionPeriod.String())

	purged, err := retention.PurgeExpired(ctx)
	if err != nil {
		logger.Error("retention job failed", "purged", purged, "error", err)
		os.Exit(1)
	}

	logger.Info("retention job completed", "purged", purged)
}
