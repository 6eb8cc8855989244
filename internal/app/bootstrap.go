package app

import (
	"path/filepath"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/logging"
)

// Bootstrapper prepares the hidden control directory of a workspace.
type Bootstrapper struct {
	FS     FileSystem
	Logger logging.Logger
}

// EnsureStructure creates <root>/.im_settings when missing and returns the path
// where the workspace database is expected. Safe to call on every session;
// existing contents are left alone.
func (b *Bootstrapper) EnsureStructure(root string) (string, error) {
	if b.FS == nil {
		return "", appErrors.New(appErrors.Internal, "bootstrap", root, "bootstrapper requires FS")
	}
	if err := statDir(b.FS, "bootstrap", root, appErrors.WorkspaceNotFound); err != nil {
		return "", err
	}

	ws := domain.Workspace{AbsolutePath: filepath.Clean(root)}
	controlDir := ws.ControlDir()

	exists, err := b.FS.Exists(controlDir)
	if err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "bootstrap", controlDir, err)
	}
	if !exists {
		if err := b.FS.MkdirAll(controlDir, 0o755); err != nil {
			return "", appErrors.Wrap(appErrors.IOFailure, "mkdir", controlDir, err)
		}
		b.Logger.Infof("Created control directory %s", controlDir)
	} else if err := statDir(b.FS, "bootstrap", controlDir, appErrors.PathNotFound); err != nil {
		return "", err
	}

	return ws.ControlDBPath(), nil
}
