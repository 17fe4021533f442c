package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Engine recognizes text in a photographed receipt. Implementations are black
// boxes: image in, text out. Latency is unbounded; callers decide whether to
// bound the context.
type Engine interface {
	Recognize(ctx context.Context, image []byte, lang string) (string, error)
}

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Language    string // default language when the caller passes none
	PSM         int    // e.g. 6 for a uniform block of text; 0 = tesseract default
	WorkDir     string // scratch dir for temp images; empty -> os.TempDir
}

// Tesseract shells out to the tesseract binary through a stubbable Runner.
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewTesseract(cfg Config, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Tesseract{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Recognize writes the image to a scratch file and runs
// `tesseract <file> stdout -l <lang>`.
func (t *Tesseract) Recognize(ctx context.Context, image []byte, lang string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}
	if lang == "" {
		lang = t.cfg.Language
	}

	tmp, err := os.CreateTemp(t.cfg.WorkDir, "receipt-*.img")
	if err != nil {
		return "", fmt.Errorf("scratch file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("scratch file: %w", err)
	}

	args := []string{tmp.Name(), "stdout", "-l", lang}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	start := time.Now()
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, args...)
	if err != nil {
		t.logger.Error("tesseract failed", "lang", lang, "stderr_bytes", len(errb), "error", err)
		return "", fmt.Errorf("tesseract: %w", err)
	}

	t.logger.Debug("tesseract ok", "lang", lang, "bytes", len(out), "duration_ms", time.Since(start).Milliseconds())
	return string(out), nil
}
