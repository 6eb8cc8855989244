package app

import (
	"context"
	"io"
	"io/fs"
	"time"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	EvalSymlinks(path string) (string, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	CopyFile(src, dst string) error
	Open(path string) (io.ReadCloser, error)
	BirthTime(path string) (time.Time, bool)
}

// ImageScaler shrinks image bytes for display. ok is false when data was
// returned unchanged.
type ImageScaler interface {
	Scale(data []byte, ext string) (scaled []byte, mimeType string, ok bool, err error)
}

type ExifReader interface {
	CaptureTime(ctx context.Context, path string) (time.Time, error)
}
