// Package apperr defines the error kinds every file manager operation reports.
//
// Callers branch on Kind rather than on message text:
//
//	switch apperr.KindOf(err) {
//	case apperr.KindNotFound:
//	    // report and return to the menu
//	}
package apperr

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies an operation failure.
type Kind string

// Error kinds reported by the file manager.
const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindAlreadyExists    Kind = "already_exists"
	KindInvalidInput     Kind = "invalid_input"
	KindUnexpected       Kind = "unexpected"
)

// Error is an operation failure with a kind, the operation name and the path involved.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// NotFound reports a missing file or directory.
func NotFound(op, path string) *Error {
	return New(KindNotFound, op, path, fs.ErrNotExist)
}

// AlreadyExists reports a path that is already taken.
func AlreadyExists(op, path string) *Error {
	return New(KindAlreadyExists, op, path, fs.ErrExist)
}

// InvalidInput reports a caller-supplied value that cannot be used.
func InvalidInput(op, path, reason string) *Error {
	return New(KindInvalidInput, op, path, errors.New(reason))
}

// FromFS classifies a filesystem error. Errors that are already *Error are returned unchanged.
func FromFS(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return New(KindNotFound, op, path, err)
	case errors.Is(err, fs.ErrPermission):
		return New(KindPermissionDenied, op, path, err)
	case errors.Is(err, fs.ErrExist):
		return New(KindAlreadyExists, op, path, err)
	default:
		return New(KindUnexpected, op, path, err)
	}
}

// KindOf returns the kind of err. Errors not produced by this package are Unexpected;
// a nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindUnexpected
}

// Is reports whether err has the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
