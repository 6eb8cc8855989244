package app

import (
	"path/filepath"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
)

// Inspector checks candidate workspace directories before they are opened.
type Inspector struct {
	FS FileSystem
}

// ValidatePath fails with PathNotFound or NotADirectory.
func (i Inspector) ValidatePath(path string) error {
	if i.FS == nil {
		return appErrors.New(appErrors.Internal, "validate", path, "inspector requires FS")
	}
	if path == "" {
		return appErrors.New(appErrors.InvalidPath, "validate", path, "path is empty")
	}
	return statDir(i.FS, "validate", path, appErrors.PathNotFound)
}

// Open validates path and returns a Workspace record for it.
func (i Inspector) Open(path string) (domain.Workspace, error) {
	if err := i.ValidatePath(path); err != nil {
		return domain.Workspace{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Workspace{}, appErrors.Wrap(appErrors.InvalidPath, "open", path, err)
	}
	name, err := NameFromPath(abs)
	if err != nil {
		return domain.Workspace{}, err
	}
	return domain.Workspace{Name: name, AbsolutePath: abs}, nil
}

// NameFromPath returns the last element of path, the default workspace name.
func NameFromPath(path string) (string, error) {
	if path == "" {
		return "", appErrors.New(appErrors.InvalidPath, "name", path, "path is empty")
	}
	clean := filepath.Clean(path)
	name := filepath.Base(clean)
	if name == "." || name == ".." || name == string(filepath.Separator) || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return "", appErrors.New(appErrors.InvalidPath, "name", path, "could not extract workspace name from path")
	}
	return name, nil
}
