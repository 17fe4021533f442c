package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/victorlai/deliverydesk/internal/common"
	"github.com/victorlai/deliverydesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, closeDB, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening DB", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	if err := repository.HealthCheck(ctx, db, cfg.Database.HealthTimeout, logger); err != nil {
		logger.Error("DB health: FAIL", "error", err)
		os.Exit(1)
	}
	logger.Info("DB health: OK", "dialect", db.Dialect)
}
