package server

import (
	"context"
	"fmt"

	"github.com/pageza/recipe-realm/backend/config"
	"github.com/pageza/recipe-realm/backend/internal/database"
	"go.uber.org/zap"
)

var runMigrations = database.RunMigrations

// Bootstrap connects to the configured stores, applies migrations and
// builds the server. The returned cleanup closes the connections.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, func(), error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := runMigrations(db, cfg.DBName, logger); err != nil {
		closeDB()
		return nil, nil, err
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, using in-process cache and limiters", zap.Error(err))
		redisClient = nil
	}

	var s3Config *config.S3Config
	if cfg.S3Bucket != "" {
		s3Config, err = config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Warn("image storage disabled", zap.Error(err))
			s3Config = nil
		}
	}

	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		closeDB()
	}
	return New(cfg, db, redisClient, s3Config, logger), cleanup, nil
}
