package main

import (
	"context"
	"log"

	"fitcoach/internal/config"
	"fitcoach/internal/container"
	"fitcoach/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("initializing container: %v", err)
	}
	defer c.Close()

	uiApp, err := ui.NewApp(ui.Config{Port: cfg.Server.UIPort}, c.AssessmentService, c.Log)
	if err != nil {
		log.Fatalf("initializing ui: %v", err)
	}

	if err := uiApp.Start(); err != nil {
		log.Fatalf("ui server failed: %v", err)
	}
}
