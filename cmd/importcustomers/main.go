package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/victorlai/deliverydesk/internal/common"
	"github.com/victorlai/deliverydesk/internal/importer"
	"github.com/victorlai/deliverydesk/internal/repository"
)

// importcustomers runs the bulk import pipeline against a workbook on disk.
// Usage: importcustomers <file.xlsx> [mapping.json]
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		logger.Error("usage", "cmd", "importcustomers <file.xlsx> [mapping.json]")
		os.Exit(2)
	}

	mapping := importer.DefaultMapping()
	if len(os.Args) == 3 {
		mf, err := os.Open(os.Args[2])
		if err != nil {
			logger.Error("opening mapping file", "path", os.Args[2], "error", err)
			os.Exit(2)
		}
		mapping, err = importer.LoadMapping(mf)
		mf.Close()
		if err != nil {
			logger.Error("invalid mapping file", "path", os.Args[2], "error", err)
			os.Exit(2)
		}
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

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

	if err := repository.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensuring schema", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		logger.Error("opening workbook", "path", os.Args[1], "error", err)
		os.Exit(1)
	}
	defer f.Close()

	svc := importer.NewService(repository.NewCustomerRepository(db, logger), mapping, logger)

	start := time.Now()
	result, err := svc.Import(ctx, f)
	if err != nil {
		logger.Error("import failed",
			"error", err,
			"duplicate_codes", result.DuplicateCodes,
			"conflict_codes", result.ConflictCodes,
		)
		os.Exit(1)
	}

	logger.Info("import OK",
		"inserted", result.Inserted,
		"rows_read", result.RowsRead,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
