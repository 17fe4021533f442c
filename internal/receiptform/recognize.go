package receiptform

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/constants"
	"github.com/victorlai/deliverydesk/internal/ocr"
)

// Workflow drives the token-guarded recognition flow for receipt entries.
//
// Each trigger issues a fresh token and launches the engine call on its own
// goroutine; a later trigger for the same entry supersedes the earlier one by
// replacing the token. The in-flight call is never interrupted — its result
// simply fails the token comparison on return and is discarded. Recognition
// for distinct entries runs independently.
type Workflow struct {
	store  *EntryStore
	engine ocr.Engine
	lang   string
	logger *slog.Logger

	wg sync.WaitGroup
}

func NewWorkflow(store *EntryStore, engine ocr.Engine, lang string, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	if lang == "" {
		lang = constants.RecognitionLanguage
	}
	return &Workflow{store: store, engine: engine, lang: lang, logger: logger}
}

// AttachImage stores an uploaded image on the entry and triggers recognition.
func (w *Workflow) AttachImage(ctx context.Context, id string, data []byte) error {
	dataURL, err := EncodeImage(data)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "image: %v", err)
	}
	return w.attach(ctx, id, dataURL)
}

// AttachDataURL stores a pasted data-URL image on the entry and triggers
// recognition.
func (w *Workflow) AttachDataURL(ctx context.Context, id, dataURL string) error {
	normalized, err := NormalizeDataURL(dataURL)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "image: %v", err)
	}
	return w.attach(ctx, id, normalized)
}

func (w *Workflow) attach(ctx context.Context, id, dataURL string) error {
	if !w.store.setImage(id, dataURL) {
		return status.Error(codes.NotFound, "entry not found")
	}
	return w.Recognize(ctx, id)
}

// Recognize re-runs recognition against the entry's current image. An entry
// without an image cannot be recognized.
func (w *Workflow) Recognize(ctx context.Context, id string) error {
	token, image, ok := w.store.beginRecognition(id)
	if !ok {
		return status.Error(codes.FailedPrecondition, "entry has no image to recognize")
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx, id, token, image)
	}()
	return nil
}

func (w *Workflow) run(ctx context.Context, id, token, image string) {
	data, _, err := DecodeDataURL(image)
	if err != nil {
		// The store only holds normalized data URLs, so this is an engine-
		// equivalent failure, not a caller error.
		w.logger.Error("stored image unreadable", "entry_id", id, "error", err)
		w.store.applyRecognition(id, token, "", true)
		return
	}

	text, err := w.engine.Recognize(ctx, data, w.lang)
	if err != nil {
		w.logger.Warn("recognition failed", "entry_id", id, "error", err)
		w.store.applyRecognition(id, token, "", true)
		return
	}
	w.store.applyRecognition(id, token, strings.TrimSpace(text), false)
}

// Wait blocks until all in-flight recognitions have completed. Used on
// shutdown and in tests; the workflow itself never waits.
func (w *Workflow) Wait() {
	w.wg.Wait()
}
