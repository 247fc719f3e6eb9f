// Package fsys provides the filesystem every file manager component works against.
//
// Production code uses NewOS; tests use NewMemory, optionally wrapped in a FaultFS
// to simulate failures such as permission errors.
package fsys

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// FileSystem defines the filesystem operations the file manager needs
type FileSystem interface {
	// Stat returns file info, following symlinks
	Stat(path string) (os.FileInfo, error)
	// Lstat returns file info without following symlinks where the backend supports it
	Lstat(path string) (os.FileInfo, error)
	// ReadDir lists the entries of a directory sorted by name
	ReadDir(path string) ([]os.FileInfo, error)
	// MkdirAll creates a directory path
	MkdirAll(path string) error
	// Rename moves a file
	Rename(oldpath, newpath string) error
	// Remove removes a file or empty directory
	Remove(path string) error
	// ReadFile reads the entire file
	ReadFile(path string) ([]byte, error)
	// CreateFile creates an empty file and fails if the path already exists
	CreateFile(path string) error
	// AppendFile appends data to an existing file
	AppendFile(path string, data []byte) error
	// Open opens a file for reading
	Open(path string) (io.ReadCloser, error)
	// Walk walks the file tree rooted at root
	Walk(root string, fn filepath.WalkFunc) error
	// Exists checks if a path exists
	Exists(path string) bool
	// Join joins path elements
	Join(elem ...string) string
}

// AferoFileSystem implements FileSystem on top of an afero.Fs
type AferoFileSystem struct {
	fs afero.Fs
}

// New wraps an afero filesystem
func New(fs afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: fs}
}

// NewOS creates a filesystem backed by the host operating system
func NewOS() *AferoFileSystem {
	return New(afero.NewOsFs())
}

// NewMemory creates an empty in-memory filesystem for tests
func NewMemory() *AferoFileSystem {
	return New(afero.NewMemMapFs())
}

// Afero returns the underlying afero filesystem
func (f *AferoFileSystem) Afero() afero.Fs {
	return f.fs
}

// Stat returns file info
func (f *AferoFileSystem) Stat(path string) (os.FileInfo, error) {
	return f.fs.Stat(path)
}

// Lstat returns file info without following symlinks
func (f *AferoFileSystem) Lstat(path string) (os.FileInfo, error) {
	if lstater, ok := f.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}

	return f.fs.Stat(path)
}

// ReadDir lists directory entries sorted by name
func (f *AferoFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.fs, path)
}

// MkdirAll creates a directory path
func (f *AferoFileSystem) MkdirAll(path string) error {
	return f.fs.MkdirAll(path, dirPerm)
}

// Rename moves a file
func (f *AferoFileSystem) Rename(oldpath, newpath string) error {
	return f.fs.Rename(oldpath, newpath)
}

// Remove removes a file or empty directory
func (f *AferoFileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

// ReadFile reads the entire file
func (f *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, path)
}

// CreateFile creates an empty file, failing with fs.ErrExist if it is already there
func (f *AferoFileSystem) CreateFile(path string) error {
	file, err := f.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}

	return file.Close()
}

// AppendFile appends data to an existing file
func (f *AferoFileSystem) AppendFile(path string, data []byte) error {
	file, err := f.fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}

	_, writeErr := file.Write(data)

	return errors.Join(writeErr, file.Close())
}

// Open opens a file for reading
func (f *AferoFileSystem) Open(path string) (io.ReadCloser, error) {
	return f.fs.Open(path)
}

// Walk walks the file tree
func (f *AferoFileSystem) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(f.fs, root, fn)
}

// Exists checks if a path exists
func (f *AferoFileSystem) Exists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}

// Join joins path elements
func (f *AferoFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

var _ FileSystem = (*AferoFileSystem)(nil)
