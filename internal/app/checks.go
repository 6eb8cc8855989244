package app

import (
	"context"
	"errors"
	"io/fs"
	"os"

	appErrors "imgspace/internal/errors"
)

// statDir confirms path is an existing directory. missing is the kind
// reported when nothing exists there.
func statDir(filesystem FileSystem, op, path string, missing appErrors.Kind) error {
	info, err := filesystem.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return appErrors.Wrap(missing, op, path, err)
		}
		return appErrors.Wrap(appErrors.IOFailure, op, path, err)
	}
	if !info.IsDir() {
		return appErrors.New(appErrors.NotADirectory, op, path, "not a directory")
	}
	return nil
}

// requireFile returns the Lstat of abs, reporting SourceMissing when it is
// absent and InvalidPath when it is a directory. rel is used for messages.
func requireFile(filesystem FileSystem, op, abs, rel string) (fs.FileInfo, error) {
	info, err := filesystem.Lstat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.SourceMissing, op, rel, err)
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, op, rel, err)
	}
	if info.IsDir() {
		return nil, appErrors.New(appErrors.InvalidPath, op, rel, "path is a directory, not a file")
	}
	return info, nil
}

// requireVacant fails with TargetExists when something already occupies abs,
// unless it is the source file itself (a case-only rename on a
// case-insensitive volume).
func requireVacant(filesystem FileSystem, op, abs, rel string, source fs.FileInfo) error {
	info, err := filesystem.Lstat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return appErrors.Wrap(appErrors.IOFailure, op, rel, err)
	}
	if source != nil && os.SameFile(source, info) {
		return nil
	}
	return appErrors.New(appErrors.TargetExists, op, rel, "destination already exists")
}

// interrupted reports a canceled or expired ctx as a Canceled error naming the
// operation and path it stopped.
func interrupted(ctx context.Context, op, rel string) error {
	return canceled(op, rel, ctx.Err())
}

// canceled wraps context errors and passes everything else through.
func canceled(op, rel string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) && appErr.Kind == appErrors.Canceled {
			return err
		}
		return appErrors.Wrap(appErrors.Canceled, op, rel, err)
	}
	return err
}

// classify maps a raw filesystem error from a mutation onto the error taxonomy.
func classify(op, rel string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return appErrors.Wrap(appErrors.SourceMissing, op, rel, err)
	case errors.Is(err, fs.ErrExist):
		return appErrors.Wrap(appErrors.TargetExists, op, rel, err)
	default:
		return appErrors.Wrap(appErrors.IOFailure, op, rel, err)
	}
}
