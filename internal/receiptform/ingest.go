package receiptform

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/victorlai/deliverydesk/constants"
)

// EncodeImage sniffs raw image bytes, rejects non-images, and returns a
// normalized data URL. Both upload and clipboard paste paths land here.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	mime := http.DetectContentType(data)
	if !constants.IsAllowedImageType(mime) {
		return "", fmt.Errorf("unsupported content type %q", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL extracts the raw bytes and MIME type from a
// "data:<mime>;base64,<payload>" URL.
func DecodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	mime, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return nil, "", fmt.Errorf("unsupported data URL encoding %q", enc)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URL: %w", err)
	}
	return data, mime, nil
}

// NormalizeDataURL validates a pasted data URL and re-encodes it from the
// decoded bytes, so stored images always carry a sniffed MIME type.
func NormalizeDataURL(s string) (string, error) {
	data, _, err := DecodeDataURL(s)
	if err != nil {
		return "", err
	}
	return EncodeImage(data)
}
