package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"fitcoach/internal/api"
	"fitcoach/internal/config"
	"fitcoach/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing container: %v", err)
	}
	defer c.Close()

	var progress *api.ProgressHandler
	if c.WeighInRepo != nil {
		progress = api.NewProgressHandler(c.AssessmentService, c.WeighInRepo, c.Log)
	}

	srv := api.NewServer(
		cfg.Server,
		api.NewAssessmentHandler(c.AssessmentService, c.WorkoutService, c.ReportWriter, c.Log),
		progress,
		c.Log,
	)
	if err := srv.Run(ctx); err != nil {
		c.Log.Errorw("server exited", "error", err)
	}
}
