package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/travelcraft/travelcraft/app/travelcraft"
	"github.com/travelcraft/travelcraft/core/config"
	"github.com/travelcraft/travelcraft/core/logger"
)

func main() {
	var cfg travelcraft.Config
	config.MustLoad(&cfg)

	log := logger.New(cfg.Logger).With(slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := travelcraft.New(ctx, cfg, travelcraft.WithLogger(log))
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
