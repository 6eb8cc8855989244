package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	appErrors "imgspace/internal/errors"
)

type OSFS struct{}

func (OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// EvalSymlinks returns path with every symbolic link resolved.
func (OSFS) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Exists reports whether path names anything, without following a final symlink.
func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename is a single rename(2). Failures caused by a volume boundary are
// marked with appErrors.ErrCrossDevice.
func (OSFS) Rename(oldPath, newPath string) error {
	err := os.Rename(oldPath, newPath)
	if err != nil && isCrossDevice(err) {
		return fmt.Errorf("%w: %w", appErrors.ErrCrossDevice, err)
	}
	return err
}

func (OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// BirthTime returns the creation time of path when the platform records one.
func (OSFS) BirthTime(path string) (time.Time, bool) {
	return birthTime(path)
}

// CopyFile copies src to a new file at dst, keeping mode and modification time.
// It never replaces an existing dst and removes a partial dst on failure.
func (OSFS) CopyFile(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = dstFile.Close()
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	if err = dstFile.Sync(); err != nil {
		return err
	}
	if err = dstFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
