package mediatypes

import (
	"path/filepath"
	"strings"
)

// ImageExtensions is the whitelist of supported image extensions
// (lowercase, without the leading dot).
var ImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
	"svg":  true,
}

// VectorExtensions are formats whose dimensions are left to the UI layer.
var VectorExtensions = map[string]bool{
	"svg": true,
}

// MimeTypes maps supported extensions to their MIME types.
var MimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
}

// Extension returns the lowercase extension of path without the dot.
// A name whose only dot is the leading one (".hidden") has no extension.
func Extension(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return "", false
	}
	ext = strings.ToLower(ext[1:])
	if ext == "" {
		return "", false
	}
	return ext, true
}

// IsSupportedImage reports whether path has a whitelisted image extension.
// The check is case-insensitive and does no I/O.
func IsSupportedImage(path string) bool {
	ext, ok := Extension(path)
	return ok && ImageExtensions[ext]
}

// IsVectorExtension reports whether ext (lowercase, no dot) is a vector format.
func IsVectorExtension(ext string) bool {
	return VectorExtensions[ext]
}

// FormatTag returns the canonical lowercase format tag for an extension
// or decoder name, e.g. "jpg" -> "jpeg".
func FormatTag(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "jpg" {
		return "jpeg"
	}
	return ext
}

// GetMimeType returns the MIME type for a given extension (lowercase, no dot).
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
