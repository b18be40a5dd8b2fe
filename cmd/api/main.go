package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-realm/backend/config"
	"github.com/pageza/recipe-realm/backend/internal/logger"
	"github.com/pageza/recipe-realm/backend/internal/server"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Env == config.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Stop on an interrupt or terminate signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := server.Bootstrap(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize server", zap.Error(err))
	}
	defer cleanup()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server error", zap.Error(err))
	}
}
