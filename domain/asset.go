package domain

import (
	"path/filepath"
	"strings"
)

// Asset is a binary attachment (an image from the export archive or a loose
// upload) addressed either by name or by position in the catalog.
type Asset struct {
	Name string
	Data []byte
}

// imageExtensions is the attachment allow-list shared by the resolver and
// the upload handlers.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// IsImageName reports whether name carries a supported image extension.
func IsImageName(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ImageMIME maps a filename to the MIME type used for inline data URLs.
func ImageMIME(name string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "":
		return "application/octet-stream"
	default:
		return "image/" + ext
	}
}
