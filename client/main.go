// Command client serves the web client without the setup tooling.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/phillip-england/shipdesk/internal/clientapp"
	"github.com/phillip-england/shipdesk/internal/config"
	"github.com/phillip-england/shipdesk/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "error"}).Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := clientapp.Run(ctx, clientapp.ConfigFrom(cfg), log.Zerolog()); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("client stopped")
		os.Exit(1)
	}
}
