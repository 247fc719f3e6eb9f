// Package journal keeps an opt-in SQLite record of every mutation the file manager performs.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Operation names written to the journal
const (
	OpMkdir  = "mkdir"
	OpMove   = "move"
	OpCreate = "create"
	OpAppend = "append"
	OpDelete = "delete"
)

// Outcomes written to the journal
const (
	OutcomeOK          = "ok"
	OutcomeSkipped     = "skipped"
	OutcomeRenamed     = "renamed"
	OutcomeOverwritten = "overwritten"
	OutcomeFailed      = "failed"
)

// Entry is one journaled operation.
type Entry struct {
	ID        int64
	RunID     string
	Op        string
	Path      string
	Dest      string
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// String renders the entry as a single history line.
func (e *Entry) String() string {
	line := fmt.Sprintf("%s  %-8s %-11s %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Op, e.Outcome, e.Path)
	if e.Dest != "" {
		line += " -> " + e.Dest
	}
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}

	return line
}

// Recorder receives journal entries.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
}

// Discard is a Recorder that drops every entry.
type Discard struct{}

// Record implements Recorder.
func (Discard) Record(context.Context, *Entry) error { return nil }

// Journal is a SQLite-backed Recorder.
type Journal struct {
	db      *sql.DB
	queries *Queries
	now     func() time.Time
}

// Open opens (creating if needed) the journal database at path. ":memory:" opens a
// private in-memory journal.
func Open(ctx context.Context, path string) (*Journal, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	queries := NewQueries(db)
	if err := queries.InitializeDatabase(ctx); err != nil {
		//nolint:errcheck // Best-effort cleanup
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	return &Journal{db: db, queries: queries, now: time.Now}, nil
}

// Record stores an entry, stamping CreatedAt when it is zero.
func (j *Journal) Record(ctx context.Context, entry *Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = j.now().UTC()
	}

	stored, err := j.queries.CreateEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to record %s %s: %w", entry.Op, entry.Path, err)
	}

	entry.ID = stored.ID

	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	entries, err := j.queries.RecentEntries(ctx, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	return entries, nil
}

// ByRun returns up to limit entries of a single run, newest first.
func (j *Journal) ByRun(ctx context.Context, runID string, limit int) ([]*Entry, error) {
	entries, err := j.queries.EntriesByRun(ctx, runID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	return entries, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}

	return limit
}

var (
	_ Recorder = (*Journal)(nil)
	_ Recorder = Discard{}
)
