package exif

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// ErrNoCaptureTime is returned when a file carries no usable EXIF date.
var ErrNoCaptureTime = errors.New("exif capture time not found")

// Reader looks up the capture time embedded in JPEG and TIFF files.
type Reader struct{}

// Supports reports whether files with this name can carry EXIF data we decode.
func (Reader) Supports(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".tiff":
		return true
	default:
		return false
	}
}

func (r Reader) CaptureTime(ctx context.Context, path string) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	default:
	}

	if !r.Supports(path) {
		return time.Time{}, ErrNoCaptureTime
	}

	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return time.Time{}, errors.Join(ErrNoCaptureTime, err)
	}

	if tag, err := x.Get(goexif.DateTimeOriginal); err == nil {
		if str, err := tag.StringVal(); err == nil {
			parsed, err := time.ParseInLocation("2006:01:02 15:04:05", strings.TrimSpace(str), time.Local)
			if err == nil {
				return parsed, nil
			}
		}
	}

	if parsed, err := x.DateTime(); err == nil {
		return parsed, nil
	}

	return time.Time{}, ErrNoCaptureTime
}
