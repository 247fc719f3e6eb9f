// Package fileops implements the single-file operations: read, create, append and delete.
//
// Each operation is one filesystem call guarded by an existence check. Failures come back
// as *apperr.Error so callers can branch on the kind.
package fileops

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/fsys"
	"github.com/kaeawc/filemanager/internal/journal"
)

const (
	opRead   = "read"
	opCreate = "create"
	opAppend = "append"
	opDelete = "delete"
	opCheck  = "check"
)

// Service runs single-file operations against a filesystem.
type Service struct {
	fs       fsys.FileSystem
	recorder journal.Recorder
	logger   *slog.Logger
}

// NewService creates a Service. A nil recorder or logger disables that concern.
func NewService(filesystem fsys.FileSystem, recorder journal.Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = journal.Discard{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{fs: filesystem, recorder: recorder, logger: logger}
}

// Read returns the full contents of a file as text.
func (s *Service) Read(name string) (string, error) {
	info, err := s.fs.Stat(name)
	if err != nil {
		return "", apperr.FromFS(opRead, name, err)
	}
	if info.IsDir() {
		return "", apperr.InvalidInput(opRead, name, "is a directory")
	}

	data, err := s.fs.ReadFile(name)
	if err != nil {
		return "", apperr.FromFS(opRead, name, err)
	}

	s.logger.Debug("read file", "op", opRead, "path", name, "bytes", len(data))

	return string(data), nil
}

// CheckFolder verifies that folder exists and is a directory.
func (s *Service) CheckFolder(folder string) error {
	info, err := s.fs.Stat(folder)
	if err != nil {
		return apperr.FromFS(opCreate, folder, err)
	}
	if !info.IsDir() {
		return apperr.InvalidInput(opCreate, folder, "not a directory")
	}

	return nil
}

// Create makes an empty file called name inside folder and returns its path.
// An existing file is left untouched and reported as KindAlreadyExists.
func (s *Service) Create(ctx context.Context, folder, name string) (string, error) {
	if err := s.CheckFolder(folder); err != nil {
		return "", err
	}
	if name == "" {
		return "", apperr.InvalidInput(opCreate, folder, "empty file name")
	}

	path := s.fs.Join(folder, name)
	if s.fs.Exists(path) {
		return path, apperr.AlreadyExists(opCreate, path)
	}

	if err := s.fs.CreateFile(path); err != nil {
		return path, apperr.FromFS(opCreate, path, err)
	}

	s.record(ctx, journal.OpCreate, path)
	s.logger.Info("created file", "op", opCreate, "path", path)

	return path, nil
}

// Append adds a newline followed by text to the end of an existing file.
func (s *Service) Append(ctx context.Context, name, text string) error {
	if err := s.checkFile(opAppend, name); err != nil {
		return err
	}

	if err := s.fs.AppendFile(name, []byte("\n"+text)); err != nil {
		return apperr.FromFS(opAppend, name, err)
	}

	s.record(ctx, journal.OpAppend, name)
	s.logger.Info("appended to file", "op", opAppend, "path", name, "bytes", len(text)+1)

	return nil
}

// Delete removes a file permanently.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.checkFile(opDelete, name); err != nil {
		return err
	}

	if err := s.fs.Remove(name); err != nil {
		return apperr.FromFS(opDelete, name, err)
	}

	s.record(ctx, journal.OpDelete, name)
	s.logger.Info("deleted file", "op", opDelete, "path", name)

	return nil
}

// CheckFile verifies that name exists and is not a directory.
func (s *Service) CheckFile(name string) error {
	return s.checkFile(opCheck, name)
}

func (s *Service) checkFile(op, name string) error {
	info, err := s.fs.Stat(name)
	if err != nil {
		return apperr.FromFS(op, name, err)
	}
	if info.IsDir() {
		return apperr.InvalidInput(op, name, "is a directory")
	}

	return nil
}

func (s *Service) record(ctx context.Context, op, path string) {
	err := s.recorder.Record(ctx, &journal.Entry{
		RunID:   uuid.NewString(),
		Op:      op,
		Path:    path,
		Outcome: journal.OutcomeOK,
	})
	if err != nil {
		s.logger.Warn("journal write failed", "op", op, "path", path, "error", err)
	}
}
