// Package browser lists the immediate entries of a directory. It never mutates anything.
package browser

import (
	"io"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/fsys"
)

const (
	opBrowse = "browse"

	// sniffLimit matches mimetype's default read limit.
	sniffLimit = 3072
)

// Entry is one item inside a listed directory.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
	// MIME is the detected content type of a regular file; empty for everything else
	MIME string
}

// Listing is the content of one directory.
type Listing struct {
	Path    string
	Entries []Entry
}

// Names returns the entry names in listing order.
func (l *Listing) Names() []string {
	names := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		names[i] = e.Name
	}

	return names
}

// Browser lists directories on a filesystem.
type Browser struct {
	fs     fsys.FileSystem
	logger *slog.Logger
}

// New creates a Browser. A nil logger discards diagnostics.
func New(filesystem fsys.FileSystem, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Browser{fs: filesystem, logger: logger}
}

// Browse joins base and sub and lists the entries of the resulting directory.
func (b *Browser) Browse(base, sub string) (*Listing, error) {
	path := b.fs.Join(base, sub)

	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, apperr.FromFS(opBrowse, path, err)
	}
	if !info.IsDir() {
		return nil, apperr.InvalidInput(opBrowse, path, "not a directory")
	}

	infos, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, apperr.FromFS(opBrowse, path, err)
	}

	listing := &Listing{Path: path, Entries: make([]Entry, 0, len(infos))}
	for _, fi := range infos {
		entry := Entry{Name: fi.Name(), IsDir: fi.IsDir(), Size: fi.Size()}
		if fi.Mode().IsRegular() {
			entry.MIME = b.detect(b.fs.Join(path, fi.Name()))
		}
		listing.Entries = append(listing.Entries, entry)
	}

	b.logger.Debug("listed directory", "op", opBrowse, "path", path, "entries", len(listing.Entries))

	return listing, nil
}

// detect sniffs the content type of a file. Unreadable files get an empty type.
func (b *Browser) detect(path string) string {
	f, err := b.fs.Open(path)
	if err != nil {
		b.logger.Debug("mime detection skipped", "op", opBrowse, "path", path, "error", err)
		return ""
	}
	defer f.Close() //nolint:errcheck

	mtype, err := mimetype.DetectReader(io.LimitReader(f, sniffLimit))
	if err != nil {
		b.logger.Debug("mime detection failed", "op", opBrowse, "path", path, "error", err)
		return ""
	}

	return mtype.String()
}
