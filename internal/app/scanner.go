package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/logging"
	"imgspace/internal/pathutil"
)

// ProgressFunc is called while scanning to report how many files have been described.
type ProgressFunc func(current, total int)

// Scanner lists the supported images of a workspace straight from disk.
// Nothing is cached between calls.
type Scanner struct {
	FS         FileSystem
	Exif       ExifReader
	Workers    int
	Logger     logging.Logger
	OnProgress ProgressFunc
	Now        func() time.Time
}

// Scan lists every supported image below root. Hidden entries are pruned and
// only regular files are reported. A root that is itself a symlink is
// resolved first; links below it are never followed.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.ImageFile, error) {
	if s.FS == nil {
		return nil, appErrors.New(appErrors.Internal, "scan", root, "scanner requires FS")
	}
	if err := statDir(s.FS, "scan", root, appErrors.WorkspaceNotFound); err != nil {
		return nil, err
	}
	walkRoot, err := s.FS.EvalSymlinks(root)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "scan", root, err)
	}

	stop := s.Logger.Measure("Scanning workspace")
	defer stop()

	paths, err := s.collect(ctx, walkRoot)
	if err != nil {
		return nil, canceled("scan", root, err)
	}
	s.Logger.Verbosef("Found %d candidate images in %s", len(paths), root)

	images, err := s.describe(ctx, walkRoot, paths)
	if err != nil {
		return nil, canceled("scan", root, err)
	}
	return images, nil
}

// collect walks root and returns the absolute paths of visible, supported,
// regular files in traversal order.
func (s *Scanner) collect(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := s.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root || d == nil {
				return walkErr
			}
			s.Logger.Warnf("Skipping unreadable entry %s: %v", path, walkErr)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := pathutil.ToRelative(root, path)
		if err != nil {
			return err
		}
		if pathutil.HasHiddenSegment(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !domain.IsSupportedExtension(filepath.Ext(d.Name())) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "scan", root, err)
	}
	return paths, nil
}

// describe reads metadata for paths on a worker pool and returns the records
// in the same order as paths. Files that vanish mid-scan are dropped.
func (s *Scanner) describe(ctx context.Context, root string, paths []string) ([]domain.ImageFile, error) {
	if len(paths) == 0 {
		return []domain.ImageFile{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount := s.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}
	s.Logger.Verbosef("Using %d scan workers", workerCount)

	type result struct {
		index    int
		image    domain.ImageFile
		vanished bool
		err      error
	}

	jobs := make(chan int)
	results := make(chan result, len(paths))

	for i := 0; i < workerCount; i++ {
		go func() {
			for index := range jobs {
				image, err := s.describeOne(ctx, root, paths[index])
				if errors.Is(err, fs.ErrNotExist) {
					results <- result{index: index, vanished: true}
					continue
				}
				results <- result{index: index, image: image, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	images := make([]domain.ImageFile, len(paths))
	present := make([]bool, len(paths))
	total := len(paths)
	for done := 1; done <= total; done++ {
		var res result
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res = <-results:
		}
		if res.err != nil {
			return nil, res.err
		}
		if res.vanished {
			s.Logger.Verbosef("%s disappeared during scan", paths[res.index])
		} else {
			images[res.index] = res.image
			present[res.index] = true
		}
		if s.OnProgress != nil {
			s.OnProgress(done, total)
		}
	}

	kept := images[:0]
	for i, image := range images {
		if present[i] {
			kept = append(kept, image)
		}
	}
	return kept, nil
}

func (s *Scanner) describeOne(ctx context.Context, root, path string) (domain.ImageFile, error) {
	info, err := s.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ImageFile{}, err
		}
		return domain.ImageFile{}, appErrors.Wrap(appErrors.IOFailure, "stat", path, err)
	}

	rel, err := pathutil.ToRelative(root, path)
	if err != nil {
		return domain.ImageFile{}, err
	}

	createdAt, ok := s.FS.BirthTime(path)
	if !ok {
		createdAt = s.now()
	}

	image := domain.NewImageFile(rel, info.Size(), createdAt, info.ModTime())

	if s.Exif != nil {
		takenAt, exifErr := s.Exif.CaptureTime(ctx, path)
		switch {
		case exifErr == nil:
			image.TakenAt = &takenAt
		case errors.Is(exifErr, context.Canceled) || errors.Is(exifErr, context.DeadlineExceeded):
			return domain.ImageFile{}, exifErr
		default:
			s.Logger.Verbosef("No EXIF capture time for %s: %v", rel, exifErr)
		}
	}

	return image, nil
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
