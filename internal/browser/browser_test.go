package browser

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/fsys"
)

func TestBrowse(t *testing.T) {
	f := fsys.NewMemory()
	mustMkdir(t, f, "/base/docs/nested")
	mustWrite(t, f, "/base/docs/notes.txt", "hello world\n")
	mustWrite(t, f, "/base/docs/image.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	listing, err := New(f, nil).Browse("/base", "docs")
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}

	if listing.Path != "/base/docs" {
		t.Errorf("Browse() path = %q, want %q", listing.Path, "/base/docs")
	}

	got := strings.Join(listing.Names(), ",")
	if got != "image.png,nested,notes.txt" {
		t.Errorf("Browse() names = %q, want %q", got, "image.png,nested,notes.txt")
	}

	byName := make(map[string]Entry)
	for _, e := range listing.Entries {
		byName[e.Name] = e
	}

	if !byName["nested"].IsDir {
		t.Error("nested should be a directory")
	}
	if byName["nested"].MIME != "" {
		t.Errorf("directory MIME = %q, want empty", byName["nested"].MIME)
	}
	if byName["image.png"].MIME != "image/png" {
		t.Errorf("image.png MIME = %q, want image/png", byName["image.png"].MIME)
	}
	if !strings.HasPrefix(byName["notes.txt"].MIME, "text/plain") {
		t.Errorf("notes.txt MIME = %q, want text/plain", byName["notes.txt"].MIME)
	}
	if byName["notes.txt"].Size != int64(len("hello world\n")) {
		t.Errorf("notes.txt size = %d, want %d", byName["notes.txt"].Size, len("hello world\n"))
	}
}

func TestBrowseEmpty(t *testing.T) {
	f := fsys.NewMemory()
	mustMkdir(t, f, "/base/empty")

	listing, err := New(f, nil).Browse("/base", "empty")
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if len(listing.Entries) != 0 {
		t.Errorf("Browse() returned %d entries, want 0", len(listing.Entries))
	}
}

func TestBrowseInvalid(t *testing.T) {
	f := fsys.NewMemory()
	mustMkdir(t, f, "/base")
	mustWrite(t, f, "/base/file.txt", "x")

	tests := []struct {
		name string
		sub  string
		want apperr.Kind
	}{
		{"missing", "nope", apperr.KindNotFound},
		{"file", "file.txt", apperr.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(f, nil).Browse("/base", tt.sub)
			if apperr.KindOf(err) != tt.want {
				t.Errorf("Browse(%q) error kind = %v, want %v", tt.sub, apperr.KindOf(err), tt.want)
			}
		})
	}
}

func TestBrowseUnreadableFile(t *testing.T) {
	fault := fsys.NewFaultFS(fsys.NewMemory())
	mustMkdir(t, fault, "/base/dir")
	mustWrite(t, fault, "/base/dir/secret.bin", "data")
	fault.SetError("Open", "/base/dir/secret.bin", fs.ErrPermission)

	listing, err := New(fault, nil).Browse("/base", "dir")
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if len(listing.Entries) != 1 || listing.Entries[0].MIME != "" {
		t.Errorf("Browse() entries = %+v, want one entry with empty MIME", listing.Entries)
	}
}

func TestBrowseReadDirDenied(t *testing.T) {
	fault := fsys.NewFaultFS(fsys.NewMemory())
	mustMkdir(t, fault, "/base/locked")
	fault.SetError("ReadDir", "/base/locked", fs.ErrPermission)

	_, err := New(fault, nil).Browse("/base", "locked")
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Browse() error = %v, want permission error", err)
	}
}

func mustMkdir(t *testing.T, f fsys.FileSystem, path string) {
	t.Helper()

	if err := f.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll(%s) error = %v", path, err)
	}
}

func mustWrite(t *testing.T, f fsys.FileSystem, path, content string) {
	t.Helper()

	if err := f.CreateFile(path); err != nil {
		t.Fatalf("CreateFile(%s) error = %v", path, err)
	}
	if err := f.AppendFile(path, []byte(content)); err != nil {
		t.Fatalf("AppendFile(%s) error = %v", path, err)
	}
}
