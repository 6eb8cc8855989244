package domain

import (
	"encoding/json"
	"path"
	"strings"
	"time"
)

// supportedExtensions is the closed set of image formats the scanner lists.
var supportedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
	"tiff": true,
	"svg":  true,
}

// ImageFile is a snapshot of one image discovered under a workspace root.
type ImageFile struct {
	Name         string
	RelativePath string
	FileSize     int64
	CreatedAt    time.Time
	ModifiedAt   time.Time
	Extension    string
	TakenAt      *time.Time
}

type imageFileJSON struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`
	FileSize     int64  `json:"file_size"`
	CreatedAt    string `json:"created_at"`
	ModifiedAt   string `json:"modified_at"`
	Extension    string `json:"extension"`
	TakenAt      string `json:"taken_at,omitempty"`
}

func NewImageFile(relativePath string, size int64, createdAt, modifiedAt time.Time) ImageFile {
	name := path.Base(relativePath)
	return ImageFile{
		Name:         name,
		RelativePath: relativePath,
		FileSize:     size,
		CreatedAt:    createdAt,
		ModifiedAt:   modifiedAt,
		Extension:    NormalizeExtension(path.Ext(name)),
	}
}

// MarshalJSON renders timestamps as RFC3339 strings.
func (f ImageFile) MarshalJSON() ([]byte, error) {
	wire := imageFileJSON{
		Name:         f.Name,
		RelativePath: f.RelativePath,
		FileSize:     f.FileSize,
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
		ModifiedAt:   f.ModifiedAt.Format(time.RFC3339),
		Extension:    f.Extension,
	}
	if f.TakenAt != nil {
		wire.TakenAt = f.TakenAt.Format(time.RFC3339)
	}
	return json.Marshal(wire)
}

// NormalizeExtension lowercases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupportedExtension accepts extensions with or without the dot, in any case.
func IsSupportedExtension(ext string) bool {
	return supportedExtensions[NormalizeExtension(ext)]
}

// SupportedExtensions returns the allow-list in a stable order.
func SupportedExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "tiff", "svg"}
}

// MimeType maps a supported extension onto its media type.
func MimeType(ext string) string {
	switch NormalizeExtension(ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "webp":
		return "image/webp"
	case "tiff":
		return "image/tiff"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
