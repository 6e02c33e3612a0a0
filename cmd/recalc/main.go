package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ligadatos/liga-stats/internal/app"
	"github.com/ligadatos/liga-stats/internal/config"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

func main() {
	var (
		seasonID   = flag.String("season", "", "season public id to recompute")
		matchday   = flag.Int("matchday", 0, "matchday to recompute up to")
		withPoints = flag.Bool("with-points", false, "also rerun the player and club points engines")
		force      = flag.Bool("force", false, "recompute matchdays that already have stored points")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync()

	if *seasonID == "" {
		logger.Error("-season is required")
		flag.Usage()
		os.Exit(2)
	}
	if *matchday < 1 {
		logger.Error("-matchday must be >= 1")
		flag.Usage()
		os.Exit(2)
	}

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := services.Batch.RecomputeSeason(ctx, *seasonID, *matchday, *withPoints, *force)
	if err != nil {
		logger.Error("season recompute failed",
			"error", err, "season_id", *seasonID, "matchday", *matchday)
		os.Exit(1)
	}

	for _, failure := range result.Failures {
		logger.Error("group recompute failed", "group_id", failure.GroupID, "error", failure.Err)
	}

	logger.Info("season recompute finished",
		"season_id", *seasonID,
		"matchday", *matchday,
		"groups", result.GroupCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
	)

	if result.FailedCount > 0 {
		os.Exit(1)
	}
}
