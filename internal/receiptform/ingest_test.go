package receiptform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageProducesDataURL(t *testing.T) {
	url, err := EncodeImage(pngBytes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)

	data, mime, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngBytes, data)
}

func TestEncodeImageRejectsNonImage(t *testing.T) {
	_, err := EncodeImage([]byte("<html>hi</html>"))
	assert.Error(t, err)

	_, err = EncodeImage(nil)
	assert.Error(t, err)
}

func TestDecodeDataURLErrors(t *testing.T) {
	cases := []string{
		"http://example.com/a.png",
		"data:image/png;base64",          // no comma
		"data:image/png;utf8,oops",       // wrong encoding
		"data:image/png;base64,@@not64@@", // bad payload
	}
	for _, in := range cases {
		_, _, err := DecodeDataURL(in)
		assert.Error(t, err, in)
	}
}

func TestNormalizeDataURLRoundTrips(t *testing.T) {
	url, err := EncodeImage(pngBytes)
	require.NoError(t, err)

	normalized, err := NormalizeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, url, normalized)
}

func TestNormalizeDataURLRejectsNonImagePayload(t *testing.T) {
	// Valid base64, but the payload does not sniff as an image.
	_, err := NormalizeDataURL("data:image/png;base64,aGVsbG8gd29ybGQ=")
	assert.Error(t, err)
}
