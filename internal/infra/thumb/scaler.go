package thumb

import (
	"bytes"

	"github.com/disintegration/imaging"

	"imgspace/internal/domain"
)

const DefaultQuality = 80

// Scaler shrinks raster images so their longer side is at most MaxSize,
// applying EXIF orientation on the way. A zero MaxSize disables scaling.
type Scaler struct {
	MaxSize int
	Quality int
}

// Scale returns the resized bytes and their MIME type. ok is false when data
// was left alone: scaling disabled, a format this scaler does not decode
// (svg, webp), or an image already within bounds.
func (s Scaler) Scale(data []byte, ext string) (scaled []byte, mimeType string, ok bool, err error) {
	if s.MaxSize <= 0 {
		return data, "", false, nil
	}

	var format imaging.Format
	switch domain.NormalizeExtension(ext) {
	case "jpg", "jpeg", "bmp", "tiff":
		format = imaging.JPEG
	case "png", "gif":
		format = imaging.PNG
	default:
		return data, "", false, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", false, err
	}
	bounds := img.Bounds()
	if bounds.Dx() <= s.MaxSize && bounds.Dy() <= s.MaxSize {
		return data, "", false, nil
	}

	fitted := imaging.Fit(img, s.MaxSize, s.MaxSize, imaging.Lanczos)

	quality := s.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, "", false, err
	}

	if format == imaging.PNG {
		return buf.Bytes(), "image/png", true, nil
	}
	return buf.Bytes(), "image/jpeg", true, nil
}
