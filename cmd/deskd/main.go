package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/victorlai/deliverydesk/internal/common"
	"github.com/victorlai/deliverydesk/internal/customers"
	"github.com/victorlai/deliverydesk/internal/export"
	"github.com/victorlai/deliverydesk/internal/importer"
	"github.com/victorlai/deliverydesk/internal/ocr"
	"github.com/victorlai/deliverydesk/internal/receiptform"
	"github.com/victorlai/deliverydesk/internal/repository"
	"github.com/victorlai/deliverydesk/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
		logger.Error("DB health failed", "error", err)
		os.Exit(1)
	}
	logger.Info("DB health OK", "dialect", db.Dialect)

	if err := repository.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensuring schema", "error", err)
		os.Exit(1)
	}

	customerRepo := repository.NewCustomerRepository(db, logger)

	engine := ocr.NewTesseract(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
		Language:    cfg.OCR.Language,
		PSM:         cfg.OCR.PSM,
		WorkDir:     cfg.OCR.WorkDir,
	}, logger)

	store := receiptform.NewEntryStore()
	form := receiptform.NewWorkflow(store, engine, cfg.OCR.Language, logger)

	srv := server.New(
		customers.NewService(customerRepo, logger),
		importer.NewService(customerRepo, importer.DefaultMapping(), logger),
		export.NewService(customerRepo, logger),
		store,
		form,
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("HTTP serving", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	// Let in-flight recognitions land before the process exits.
	form.Wait()
	logger.Info("stopped")
}
