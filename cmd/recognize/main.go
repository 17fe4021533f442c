package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/victorlai/deliverydesk/internal/common"
	"github.com/victorlai/deliverydesk/internal/ocr"
)

// recognize runs the OCR engine on one image file and prints the text.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "recognize <image-file>")
		os.Exit(2)
	}

	image, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("reading image", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	engine := ocr.NewTesseract(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		TessdataDir: cfg.OCR.TessdataDir,
		Language:    cfg.OCR.Language,
		PSM:         cfg.OCR.PSM,
		WorkDir:     cfg.OCR.WorkDir,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	text, err := engine.Recognize(ctx, image, cfg.OCR.Language)
	if err != nil {
		logger.Error("recognition failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("recognition OK", "bytes", len(text), "duration_ms", time.Since(start).Milliseconds())
	fmt.Println(text)
}
