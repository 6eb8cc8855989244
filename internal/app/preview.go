package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/logging"
	"imgspace/internal/pathutil"
)

// DefaultMaxPreviewBytes caps the size of files encoded for preview.
const DefaultMaxPreviewBytes = 100 * 1024 * 1024

// Preview hands image bytes to a UI that cannot read the workspace directly.
// With a Scaler set, large raster images are shrunk before encoding.
type Preview struct {
	FS       FileSystem
	Scaler   ImageScaler
	MaxBytes int64
	Logger   logging.Logger
}

// AbsolutePath resolves a relative path and confirms the file is there.
func (p Preview) AbsolutePath(relativePath, workspacePath string) (string, error) {
	if p.FS == nil {
		return "", appErrors.New(appErrors.Internal, "resolve", relativePath, "preview requires FS")
	}
	abs, err := pathutil.ToAbsolute(workspacePath, relativePath)
	if err != nil {
		return "", err
	}
	if _, err := requireFile(p.FS, "resolve", abs, relativePath); err != nil {
		return "", err
	}
	return abs, nil
}

// DataURL returns the file as a base64 data URL.
func (p Preview) DataURL(ctx context.Context, relativePath, workspacePath string) (string, error) {
	abs, err := p.AbsolutePath(relativePath, workspacePath)
	if err != nil {
		return "", err
	}
	if err := interrupted(ctx, "preview", relativePath); err != nil {
		return "", err
	}

	limit := p.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxPreviewBytes
	}

	info, err := p.FS.Stat(abs)
	if err != nil {
		return "", classify("preview", relativePath, err)
	}
	if info.Size() > limit {
		return "", appErrors.New(appErrors.FileTooLarge, "preview", relativePath,
			fmt.Sprintf("%d bytes exceeds the %d byte limit", info.Size(), limit))
	}

	file, err := p.FS.Open(abs)
	if err != nil {
		return "", classify("preview", relativePath, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "preview", relativePath, err)
	}
	if int64(len(data)) > limit {
		return "", appErrors.New(appErrors.FileTooLarge, "preview", relativePath, "file grew past the size limit while reading")
	}

	ext := path.Ext(relativePath)
	mimeType := domain.MimeType(ext)
	if p.Scaler != nil {
		scaled, scaledType, ok, err := p.Scaler.Scale(data, ext)
		switch {
		case err != nil:
			p.Logger.Warnf("Could not scale %s, sending original: %v", relativePath, err)
		case ok:
			p.Logger.Verbosef("Scaled %s from %d to %d bytes", relativePath, len(data), len(scaled))
			data, mimeType = scaled, scaledType
		}
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
