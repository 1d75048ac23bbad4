package constants

import "strings"

// File formats the scanner accepts.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedExtensions holds the file extensions the scan surfaces accept.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"gif":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a coarse format.
func MapExtToFormat(ext string) string {
	if NormalizeExt(ext) == "pdf" {
		return PDF
	}
	return IMAGE
}

// MIMEForExt returns the MIME type used when attaching a payload inline.
func MIMEForExt(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "bmp":
		return "image/bmp"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// IsAllowedExt reports whether the extension is accepted by the scan surfaces.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
