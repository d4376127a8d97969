package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/app"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Opts{})

	application := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for interrupt or for the one-shot run to ask for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-application.Done():
	}

	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
