package domain

// MoveRequest relocates a file to another workspace-relative path.
type MoveRequest struct {
	OldPath       string `json:"old_path"`
	NewPath       string `json:"new_path"`
	WorkspacePath string `json:"workspace_path"`
}

// RenameRequest changes a file's base name while keeping its directory.
// RelativePath is the file's current relative path and only its parent is used.
type RenameRequest struct {
	OldName       string `json:"old_name"`
	NewName       string `json:"new_name"`
	RelativePath  string `json:"relative_path"`
	WorkspacePath string `json:"workspace_path"`
}
