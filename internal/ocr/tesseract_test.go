package ocr

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	name   string
	args   []string
	stdout []byte
	err    error
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return s.stdout, nil, s.err
}

func newStubbed(cfg Config, r Runner) *Tesseract {
	t := NewTesseract(cfg, slog.New(slog.DiscardHandler))
	t.runner = r
	return t
}

func TestRecognizeBuildsTesseractInvocation(t *testing.T) {
	stub := &stubRunner{stdout: []byte("收訖 OK\n")}
	eng := newStubbed(Config{Tesseract: "/opt/bin/tesseract", TessdataDir: "/data", PSM: 6}, stub)

	text, err := eng.Recognize(context.Background(), []byte{0x89, 0x50}, "chi_tra+eng")
	require.NoError(t, err)
	assert.Equal(t, "收訖 OK\n", text)

	assert.Equal(t, "/opt/bin/tesseract", stub.name)
	require.GreaterOrEqual(t, len(stub.args), 4)
	assert.Equal(t, "stdout", stub.args[1])
	assert.Equal(t, "-l", stub.args[2])
	assert.Equal(t, "chi_tra+eng", stub.args[3])
	assert.Contains(t, stub.args, "--psm")
	assert.Contains(t, stub.args, "--tessdata-dir")
}

func TestRecognizeDefaultsLanguage(t *testing.T) {
	stub := &stubRunner{stdout: []byte("x")}
	eng := newStubbed(Config{Language: "chi_tra+eng"}, stub)

	_, err := eng.Recognize(context.Background(), []byte{1}, "")
	require.NoError(t, err)
	assert.Equal(t, "chi_tra+eng", stub.args[3])
}

func TestRecognizeRejectsEmptyImage(t *testing.T) {
	eng := newStubbed(Config{}, &stubRunner{})
	_, err := eng.Recognize(context.Background(), nil, "eng")
	assert.Error(t, err)
}

func TestRecognizePropagatesEngineFailure(t *testing.T) {
	stub := &stubRunner{err: errors.New("exit status 1")}
	eng := newStubbed(Config{}, stub)

	_, err := eng.Recognize(context.Background(), []byte{1}, "eng")
	assert.Error(t, err)
}
