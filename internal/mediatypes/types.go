package mediatypes

import (
	"mime"
	"path/filepath"
	"strings"
)

// Kind is the media classification of a file.
type Kind string

const (
	// KindImage represents an image file.
	KindImage Kind = "image"
	// KindVideo represents a video file.
	KindVideo Kind = "video"
	// KindOther represents anything that is neither an image nor a video.
	KindOther Kind = "other"
)

// DefaultMimeType is reported for files whose type cannot be determined.
const DefaultMimeType = "application/octet-stream"

// Classify maps a MIME type to a media Kind by prefix.
// It never fails: unknown or empty types are KindOther.
func Classify(mimeType string) Kind {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return KindImage
	case strings.HasPrefix(mt, "video/"):
		return KindVideo
	default:
		return KindOther
	}
}

// IsNavigable returns true for kinds that can be shown in the grid and carousel.
func IsNavigable(k Kind) bool {
	return k == KindImage || k == KindVideo
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",

	// Videos
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
// Extensions outside the table fall back to the system MIME database, then
// to DefaultMimeType.
func GetMimeType(ext string) string {
	if mt, ok := MimeTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return DefaultMimeType
}

// MimeTypeForName returns the MIME type for a file name based on its extension.
func MimeTypeForName(name string) string {
	return GetMimeType(strings.ToLower(filepath.Ext(name)))
}
