package domain

import (
	"path/filepath"
	"time"
)

const (
	// ControlDirName is the hidden directory holding the application's own metadata.
	ControlDirName = ".im_settings"
	// ControlDBName is the companion database expected inside ControlDirName.
	ControlDBName = "workspace.db"
)

type Workspace struct {
	ID           *int64     `json:"id,omitempty"`
	Name         string     `json:"name"`
	AbsolutePath string     `json:"absolute_path"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (w Workspace) ControlDir() string {
	return filepath.Join(w.AbsolutePath, ControlDirName)
}

func (w Workspace) ControlDBPath() string {
	return filepath.Join(w.ControlDir(), ControlDBName)
}
