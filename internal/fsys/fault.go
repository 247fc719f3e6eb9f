package fsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FaultFS wraps a FileSystem, injecting errors for specific operations and paths and
// recording every call for verification in tests
type FaultFS struct {
	inner FileSystem
	// Errors maps "op path" (or just "path" to fail every operation on it) to the error returned
	Errors map[string]error
	// OperationLog records all operations for verification
	OperationLog []string
}

// NewFaultFS wraps inner with no faults configured
func NewFaultFS(inner FileSystem) *FaultFS {
	return &FaultFS{
		inner:        inner,
		Errors:       make(map[string]error),
		OperationLog: []string{},
	}
}

// SetError makes op on path fail with err. An empty op fails every operation on path.
func (f *FaultFS) SetError(op, path string, err error) {
	if op == "" {
		f.Errors[path] = err
		return
	}

	f.Errors[op+" "+path] = err
}

// CountOperations returns how many recorded operations have the given name
func (f *FaultFS) CountOperations(op string) int {
	count := 0

	for _, entry := range f.OperationLog {
		if len(entry) > len(op) && entry[:len(op)] == op && entry[len(op)] == '(' {
			count++
		}
	}

	return count
}

// GetLastOperation returns the last operation, or empty string if none
func (f *FaultFS) GetLastOperation() string {
	if len(f.OperationLog) == 0 {
		return ""
	}

	return f.OperationLog[len(f.OperationLog)-1]
}

func (f *FaultFS) record(op string, args ...string) error {
	entry := op + "("
	for i, arg := range args {
		if i > 0 {
			entry += ", "
		}
		entry += arg
	}
	f.OperationLog = append(f.OperationLog, entry+")")

	for _, path := range args {
		if err, ok := f.Errors[op+" "+path]; ok {
			return err
		}
		if err, ok := f.Errors[path]; ok {
			return err
		}
	}

	return nil
}

// Stat returns file info
func (f *FaultFS) Stat(path string) (os.FileInfo, error) {
	if err := f.record("Stat", path); err != nil {
		return nil, err
	}

	return f.inner.Stat(path)
}

// Lstat returns file info without following symlinks
func (f *FaultFS) Lstat(path string) (os.FileInfo, error) {
	if err := f.record("Lstat", path); err != nil {
		return nil, err
	}

	return f.inner.Lstat(path)
}

// ReadDir lists directory entries
func (f *FaultFS) ReadDir(path string) ([]os.FileInfo, error) {
	if err := f.record("ReadDir", path); err != nil {
		return nil, err
	}

	return f.inner.ReadDir(path)
}

// MkdirAll creates a directory path
func (f *FaultFS) MkdirAll(path string) error {
	if err := f.record("MkdirAll", path); err != nil {
		return err
	}

	return f.inner.MkdirAll(path)
}

// Rename moves a file
func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.record("Rename", oldpath, newpath); err != nil {
		return err
	}

	return f.inner.Rename(oldpath, newpath)
}

// Remove removes a file or empty directory
func (f *FaultFS) Remove(path string) error {
	if err := f.record("Remove", path); err != nil {
		return err
	}

	return f.inner.Remove(path)
}

// ReadFile reads the entire file
func (f *FaultFS) ReadFile(path string) ([]byte, error) {
	if err := f.record("ReadFile", path); err != nil {
		return nil, err
	}

	return f.inner.ReadFile(path)
}

// CreateFile creates an empty file
func (f *FaultFS) CreateFile(path string) error {
	if err := f.record("CreateFile", path); err != nil {
		return err
	}

	return f.inner.CreateFile(path)
}

// AppendFile appends data to an existing file
func (f *FaultFS) AppendFile(path string, data []byte) error {
	if err := f.record("AppendFile", path, fmt.Sprintf("%d bytes", len(data))); err != nil {
		return err
	}

	return f.inner.AppendFile(path, data)
}

// Open opens a file for reading
func (f *FaultFS) Open(path string) (io.ReadCloser, error) {
	if err := f.record("Open", path); err != nil {
		return nil, err
	}

	return f.inner.Open(path)
}

// Walk walks the file tree
func (f *FaultFS) Walk(root string, fn filepath.WalkFunc) error {
	if err := f.record("Walk", root); err != nil {
		return err
	}

	return f.inner.Walk(root, fn)
}

// Exists checks if a path exists. Injected faults make the path look absent.
func (f *FaultFS) Exists(path string) bool {
	if err := f.record("Exists", path); err != nil {
		return false
	}

	return f.inner.Exists(path)
}

// Join joins path elements
func (f *FaultFS) Join(elem ...string) string {
	return f.inner.Join(elem...)
}

var _ FileSystem = (*FaultFS)(nil)
