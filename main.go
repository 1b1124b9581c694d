package main

import (
	"time"

	"go.uber.org/zap"

	"acquisitions/internal/config"
	"acquisitions/internal/repository"
	"acquisitions/internal/server"
	"acquisitions/internal/shield"
)

func main() {
	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Protection service: remote decision service when configured, the
	// in-process sliding-window evaluator otherwise.
	var protector shield.Protector
	if cfg.Shield.URL != "" {
		protector = shield.NewClient(shield.ClientConfig{
			BaseURL: cfg.Shield.URL,
			APIKey:  cfg.Shield.APIKey,
			Timeout: time.Duration(cfg.Shield.TimeoutSeconds) * time.Second,
		}, logger)
		logger.Info("Using remote decision service", zap.String("url", cfg.Shield.URL))
	} else {
		protector = shield.NewLocal()
		logger.Info("No SHIELD_URL configured, using in-process rate limiting")
	}

	srv := server.NewServer(cfg, db, protector, logger)
	srv.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
