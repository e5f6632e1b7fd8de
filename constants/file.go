package constants

import "strings"

// AllowedContentTypes is the upload MIME whitelist. Identity cards arrive as
// phone photos, so only JPEG and PNG are accepted.
var AllowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// AllowedExtensions holds the allowed file extensions for uploads.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedContentType reports whether ct (possibly with parameters) is an
// accepted upload MIME type.
func IsAllowedContentType(ct string) bool {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	_, ok := AllowedContentTypes[strings.ToLower(strings.TrimSpace(ct))]
	return ok
}

// IsAllowedExtension reports whether ext (with or without dot) is accepted.
func IsAllowedExtension(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
