package app

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"imgspace/internal/domain"
	appErrors "imgspace/internal/errors"
	"imgspace/internal/logging"
	"imgspace/internal/pathutil"
)

// Mutator moves, renames and deletes single files inside a workspace.
// Every call re-checks the live filesystem; no scan result is trusted.
// Neither move nor rename ever replaces an existing file.
type Mutator struct {
	FS     FileSystem
	Logger logging.Logger
}

// Move relocates a file to another relative path, creating missing parent
// directories first. It returns the new relative path.
func (m *Mutator) Move(ctx context.Context, req domain.MoveRequest) (string, error) {
	if err := m.ready(ctx, "move", req.WorkspacePath); err != nil {
		return "", err
	}

	oldAbs, err := pathutil.ToAbsolute(req.WorkspacePath, req.OldPath)
	if err != nil {
		return "", err
	}
	newAbs, err := pathutil.ToAbsolute(req.WorkspacePath, req.NewPath)
	if err != nil {
		return "", err
	}
	if filepath.Clean(newAbs) == filepath.Clean(req.WorkspacePath) {
		return "", appErrors.New(appErrors.InvalidPath, "move", req.NewPath, "destination is the workspace root")
	}

	source, err := requireFile(m.FS, "move", oldAbs, req.OldPath)
	if err != nil {
		return "", err
	}
	if err := requireVacant(m.FS, "move", newAbs, req.NewPath, source); err != nil {
		return "", err
	}

	// Not transactional with the rename below: a failure afterwards can leave
	// empty directories behind but never loses the file.
	parent := filepath.Dir(newAbs)
	if err := m.FS.MkdirAll(parent, 0o755); err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "mkdir", path.Dir(req.NewPath), err)
	}

	if err := interrupted(ctx, "move", req.OldPath); err != nil {
		return "", err
	}
	if err := m.relocate(oldAbs, newAbs, req.OldPath); err != nil {
		return "", err
	}

	newRel, err := pathutil.ToRelative(req.WorkspacePath, newAbs)
	if err != nil {
		return "", err
	}
	m.Logger.Infof("Moved %s to %s", req.OldPath, newRel)
	return newRel, nil
}

// Rename changes the base name of a file inside its current directory and
// returns the new relative path.
func (m *Mutator) Rename(ctx context.Context, req domain.RenameRequest) (string, error) {
	if err := m.ready(ctx, "rename", req.WorkspacePath); err != nil {
		return "", err
	}
	if err := validateBaseName("rename", req.OldName); err != nil {
		return "", err
	}
	if err := validateBaseName("rename", req.NewName); err != nil {
		return "", err
	}

	dir, err := pathutil.ParentDir(req.RelativePath)
	if err != nil {
		return "", err
	}
	oldRel := path.Join(dir, req.OldName)
	newRel := path.Join(dir, req.NewName)

	oldAbs, err := pathutil.ToAbsolute(req.WorkspacePath, oldRel)
	if err != nil {
		return "", err
	}
	newAbs, err := pathutil.ToAbsolute(req.WorkspacePath, newRel)
	if err != nil {
		return "", err
	}

	source, err := requireFile(m.FS, "rename", oldAbs, oldRel)
	if err != nil {
		return "", err
	}
	if err := requireVacant(m.FS, "rename", newAbs, newRel, source); err != nil {
		return "", err
	}

	if err := interrupted(ctx, "rename", oldRel); err != nil {
		return "", err
	}
	if err := m.FS.Rename(oldAbs, newAbs); err != nil {
		return "", classify("rename", oldRel, err)
	}

	result, err := pathutil.ToRelative(req.WorkspacePath, newAbs)
	if err != nil {
		return "", err
	}
	m.Logger.Infof("Renamed %s to %s", oldRel, result)
	return result, nil
}

// Delete permanently removes a file. There is no trash and no undo.
func (m *Mutator) Delete(ctx context.Context, relativePath, workspacePath string) error {
	if err := m.ready(ctx, "delete", workspacePath); err != nil {
		return err
	}

	abs, err := pathutil.ToAbsolute(workspacePath, relativePath)
	if err != nil {
		return err
	}
	if _, err := requireFile(m.FS, "delete", abs, relativePath); err != nil {
		return err
	}

	if err := interrupted(ctx, "delete", relativePath); err != nil {
		return err
	}
	if err := m.FS.Remove(abs); err != nil {
		return classify("delete", relativePath, err)
	}
	m.Logger.Infof("Deleted %s", relativePath)
	return nil
}

func (m *Mutator) ready(ctx context.Context, op, workspacePath string) error {
	if m.FS == nil {
		return appErrors.New(appErrors.Internal, op, workspacePath, "mutator requires FS")
	}
	if err := interrupted(ctx, op, workspacePath); err != nil {
		return err
	}
	return statDir(m.FS, op, workspacePath, appErrors.WorkspaceNotFound)
}

// relocate renames oldAbs to newAbs. When the two sit on different volumes the
// file is copied and the source removed only after the copy succeeded.
func (m *Mutator) relocate(oldAbs, newAbs, rel string) error {
	err := m.FS.Rename(oldAbs, newAbs)
	if err == nil {
		return nil
	}
	if !errors.Is(err, appErrors.ErrCrossDevice) {
		return classify("move", rel, err)
	}

	m.Logger.Warnf("%s crosses a volume boundary, copying instead of renaming", rel)
	if err := m.FS.CopyFile(oldAbs, newAbs); err != nil {
		return classify("copy", rel, err)
	}
	if err := m.FS.Remove(oldAbs); err != nil {
		m.Logger.Errorf("Copied %s but could not remove the original: %v", rel, err)
		return appErrors.Wrap(appErrors.IOFailure, "remove source after copy", rel, err)
	}
	return nil
}

func validateBaseName(op, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return appErrors.New(appErrors.InvalidPath, op, name, "file name is empty")
	case name == "." || name == "..":
		return appErrors.New(appErrors.InvalidPath, op, name, "file name is reserved")
	case strings.ContainsAny(name, `/\`):
		return appErrors.New(appErrors.InvalidPath, op, name, "file name must not contain path separators")
	}
	return nil
}
