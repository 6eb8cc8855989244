package exif

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSupports(t *testing.T) {
	r := Reader{}
	for name, want := range map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.tiff": true,
		"a.png":  false,
		"a.svg":  false,
	} {
		if got := r.Supports(name); got != want {
			t.Fatalf("Supports(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCaptureTimeUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Reader{}.CaptureTime(context.Background(), path)
	if !errors.Is(err, ErrNoCaptureTime) {
		t.Fatalf("expected ErrNoCaptureTime, got %v", err)
	}
}

func TestCaptureTimeWithoutExif(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Reader{}.CaptureTime(context.Background(), path)
	if !errors.Is(err, ErrNoCaptureTime) {
		t.Fatalf("expected ErrNoCaptureTime, got %v", err)
	}
}

func TestCaptureTimeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Reader{}.CaptureTime(ctx, "a.jpg")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
