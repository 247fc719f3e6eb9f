package journal

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	j := createTestJournal(t)

	entries := []*Entry{
		{RunID: "run-1", Op: OpMkdir, Path: "/data/txt", Outcome: OutcomeOK},
		{RunID: "run-1", Op: OpMove, Path: "/data/a.txt", Dest: "/data/txt/a.txt", Outcome: OutcomeOK},
		{RunID: "run-2", Op: OpDelete, Path: "/data/b.txt", Outcome: OutcomeOK},
	}
	for _, e := range entries {
		if err := j.Record(t.Context(), e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if e.ID <= 0 {
			t.Errorf("Record() left ID = %d, want positive", e.ID)
		}
	}

	recent, err := j.Recent(t.Context(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(recent))
	}
	if recent[0].Op != OpDelete {
		t.Errorf("Recent()[0].Op = %s, want %s (newest first)", recent[0].Op, OpDelete)
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("Recent()[0].CreatedAt is zero, want stamped time")
	}

	limited, err := j.Recent(t.Context(), 1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Recent(1) returned %d entries, want 1", len(limited))
	}
}

func TestByRun(t *testing.T) {
	j := createTestJournal(t)

	for _, e := range []*Entry{
		{RunID: "run-1", Op: OpMove, Path: "/a.txt", Outcome: OutcomeOK},
		{RunID: "run-2", Op: OpMove, Path: "/b.txt", Outcome: OutcomeSkipped},
		{RunID: "run-1", Op: OpMove, Path: "/c.txt", Outcome: OutcomeRenamed},
	} {
		if err := j.Record(t.Context(), e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.ByRun(t.Context(), "run-1", 0)
	if err != nil {
		t.Fatalf("ByRun() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ByRun() returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.RunID != "run-1" {
			t.Errorf("ByRun() returned entry of run %s", e.RunID)
		}
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	j, err := Open(t.Context(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := j.Record(t.Context(), &Entry{RunID: "r", Op: OpCreate, Path: "/x", Outcome: OutcomeOK}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(t.Context(), path)
	if err != nil {
		t.Fatalf("Open() again error = %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(t.Context(), 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Recent() after reopen returned %d entries, want 1", len(entries))
	}
}

func TestEntryString(t *testing.T) {
	e := &Entry{
		Op:        OpMove,
		Path:      "/data/a.txt",
		Dest:      "/data/txt/a.txt",
		Outcome:   OutcomeRenamed,
		Detail:    "destination existed",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	s := e.String()
	for _, want := range []string{"move", "renamed", "/data/a.txt -> /data/txt/a.txt", "(destination existed)"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

// Test helper to create an in-memory journal
func createTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := Open(t.Context(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	return j
}
