package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"worktracker/internal/app/server"
	"worktracker/internal/platform/config"
	"worktracker/internal/platform/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	log.Logger = logger

	app, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("server setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
