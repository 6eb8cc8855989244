// Package pathutil converts between workspace-relative and absolute paths.
//
// Relative paths are the external identity of a file inside a workspace and are
// always rendered with '/' separators, whatever the host platform uses.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"

	appErrors "imgspace/internal/errors"
)

// ToAbsolute joins a '/'-separated relative path onto root.
// The result must stay inside root; absolute inputs and '..' escapes are rejected.
func ToAbsolute(root, relative string) (string, error) {
	if relative == "" {
		return "", appErrors.New(appErrors.InvalidPath, "resolve", relative, "empty relative path")
	}
	native := filepath.FromSlash(relative)
	if path.IsAbs(relative) || filepath.IsAbs(native) || filepath.VolumeName(native) != "" {
		return "", appErrors.New(appErrors.InvalidPath, "resolve", relative, "relative path must not be absolute")
	}

	cleanRoot := filepath.Clean(root)
	abs := filepath.Join(cleanRoot, native)
	if !Within(cleanRoot, abs) {
		return "", appErrors.New(appErrors.InvalidPath, "resolve", relative, "path escapes workspace root")
	}
	return abs, nil
}

// ToRelative expresses absolute relative to root using '/' separators.
// The root itself maps to the empty string.
func ToRelative(root, absolute string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(absolute))
	if err != nil {
		return "", appErrors.Wrap(appErrors.InvalidPath, "relativize", absolute, err)
	}
	if escapes(rel) {
		return "", appErrors.New(appErrors.InvalidPath, "relativize", absolute, "path is outside workspace root")
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Within reports whether target is root or a descendant of it.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return !escapes(rel)
}

// ParentDir returns the '/'-separated directory containing relative.
// Top-level files yield ".".
func ParentDir(relative string) (string, error) {
	clean := path.Clean(filepath.ToSlash(relative))
	if relative == "" || clean == "." || clean == "/" {
		return "", appErrors.New(appErrors.InvalidPath, "parent", relative, "relative path has no parent directory")
	}
	return path.Dir(clean), nil
}

// HasHiddenSegment reports whether any segment of a '/'-separated relative
// path starts with a dot.
func HasHiddenSegment(relative string) bool {
	for _, segment := range strings.Split(relative, "/") {
		if strings.HasPrefix(segment, ".") && segment != "." {
			return true
		}
	}
	return false
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
