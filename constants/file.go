package constants

import "strings"

// AllowedImageTypes holds the MIME types accepted for receipt images.
var AllowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedImageType reports whether the sniffed MIME type is an accepted image.
func IsAllowedImageType(mime string) bool {
	_, ok := AllowedImageTypes[strings.ToLower(mime)]
	return ok
}
