package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for callers and for UserMessage.
type Kind string

const (
	WorkspaceNotFound Kind = "workspace_not_found"
	PathNotFound      Kind = "path_not_found"
	NotADirectory     Kind = "not_a_directory"
	SourceMissing     Kind = "source_missing"
	TargetExists      Kind = "target_exists"
	InvalidPath       Kind = "invalid_path"
	IOFailure         Kind = "io_failure"
	FileTooLarge      Kind = "file_too_large"
	Canceled          Kind = "canceled"
	InvalidConfig     Kind = "invalid_config"
	Internal          Kind = "internal"
)

// ErrCrossDevice marks a rename that failed because source and target live on
// different volumes.
var ErrCrossDevice = stderrors.New("cross-device rename")

// AppError tags an underlying error with its kind and where it happened.
type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap tags err with a kind and the operation/path it happened on.
// A nil err yields nil.
func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError from a plain message.
func New(kind Kind, op, path, msg string) error {
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  stderrors.New(msg),
	}
}

// KindOf returns the kind of the outermost AppError in err's chain,
// or Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// IsKind reports whether err carries kind. A nil err matches nothing.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// UserMessage renders err for the terminal. Errors without a kind are
// printed unchanged.
func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case WorkspaceNotFound:
		return fmt.Sprintf("Workspace directory does not exist: %s", appErr.Path)
	case PathNotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case NotADirectory:
		return fmt.Sprintf("Path is not a directory: %s", appErr.Path)
	case SourceMissing:
		return fmt.Sprintf("File does not exist: %s", appErr.Path)
	case TargetExists:
		return fmt.Sprintf("A file with that name already exists: %s", appErr.Path)
	case InvalidPath:
		return fmt.Sprintf("Invalid path %q: %v", appErr.Path, appErr.Err)
	case IOFailure:
		return fmt.Sprintf("I/O error during %s on %s: %v", appErr.Op, appErr.Path, appErr.Err)
	case Canceled:
		return fmt.Sprintf("Canceled %s of %s", appErr.Op, appErr.Path)
	case FileTooLarge:
		return fmt.Sprintf("File is too large: %s (%v)", appErr.Path, appErr.Err)
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
