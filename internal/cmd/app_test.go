package cmd

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/kaeawc/filemanager/internal/config"
	"github.com/kaeawc/filemanager/internal/fsys"
	"github.com/kaeawc/filemanager/internal/organizer"
)

// session runs the menu over a scripted input on the given filesystem and returns the transcript.
func session(t *testing.T, filesystem fsys.FileSystem, cfg *config.Config, lines ...string) string {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}

	var out, errOut bytes.Buffer
	builder := NewAppBuilder().
		WithConfig(cfg).
		WithFileSystem(filesystem).
		WithIO(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, &errOut)

	if err := builder.Build(t.Context()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	t.Cleanup(func() { builder.Close() }) //nolint:errcheck

	if err := builder.App().Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v\ntranscript:\n%s", err, out.String())
	}

	return out.String()
}

func assertContains(t *testing.T, transcript string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(transcript, w) {
			t.Errorf("transcript missing %q:\n%s", w, transcript)
		}
	}
}

func newTestFS(t *testing.T, files map[string]string, dirs ...string) *fsys.AferoFileSystem {
	t.Helper()

	f := fsys.NewMemory()
	for _, d := range dirs {
		if err := f.MkdirAll(d); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", d, err)
		}
	}
	for path, content := range files {
		if err := f.CreateFile(path); err != nil {
			t.Fatalf("CreateFile(%s) error = %v", path, err)
		}
		if content == "" {
			continue
		}
		if err := f.AppendFile(path, []byte(content)); err != nil {
			t.Fatalf("AppendFile(%s) error = %v", path, err)
		}
	}

	return f
}

func TestMenuShowsOptionsAndExits(t *testing.T) {
	out := session(t, fsys.NewMemory(), nil, "7")

	assertContains(t, out,
		"---------- Choose an Option ----------",
		"1 - Organize files into folders",
		"2 - Select and view a directory",
		"3 - Read a file",
		"4 - Create a new file",
		"5 - Write to an existing file",
		"6 - Delete a file",
		"7 - Exit",
		"Enter your choice: ",
		"Exiting. Thank you!",
	)
}

func TestMenuInvalidInput(t *testing.T) {
	out := session(t, fsys.NewMemory(), nil, "abc", "9", "0", "-1", "7")

	if got := strings.Count(out, "Invalid input. Please enter a number."); got != 1 {
		t.Errorf("non-numeric message count = %d, want 1", got)
	}
	if got := strings.Count(out, "Invalid choice. Please choose a number between 1 and 7."); got != 3 {
		t.Errorf("out-of-range message count = %d, want 3", got)
	}
	if got := strings.Count(out, menuTitle); got != 5 {
		t.Errorf("menu shown %d times, want 5", got)
	}
}

func TestMenuEOFExits(t *testing.T) {
	var out bytes.Buffer
	builder := NewAppBuilder().
		WithFileSystem(fsys.NewMemory()).
		WithIO(strings.NewReader(""), &out, &bytes.Buffer{})

	if err := builder.Build(t.Context()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := builder.App().Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, out.String(), "Exiting. Thank you!")
}

func TestMenuEOFMidOperationExits(t *testing.T) {
	out := session(t, fsys.NewMemory(), nil, "3")

	assertContains(t, out, "Enter file name with extension (e.g., file.txt): ", "Exiting. Thank you!")
}

func TestMenuAcceptsPaddedNumber(t *testing.T) {
	out := session(t, fsys.NewMemory(), nil, " 7 ")

	assertContains(t, out, "Exiting. Thank you!")
}

func TestOrganizeScenario(t *testing.T) {
	f := newTestFS(t, map[string]string{
		"/work/report.pdf": "",
		"/work/notes.txt":  "",
		"/work/image.png":  "",
		"/work/README":     "",
	}, "/work")

	out := session(t, f, nil, "1", "/work", "7")

	assertContains(t, out,
		"Enter the directory path to organize: ",
		"Processing: report.pdf",
		"Processing: README",
		"Created folders:",
		"/work/pdf",
		"/work/No_Extension",
	)

	for _, path := range []string{"/work/pdf/report.pdf", "/work/txt/notes.txt", "/work/png/image.png", "/work/No_Extension/README"} {
		if !f.Exists(path) {
			t.Errorf("%s missing after organizing", path)
		}
	}
}

func TestOrganizeMessages(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		out := session(t, fsys.NewMemory(), nil, "1", "/nope", "7")
		assertContains(t, out, "Error: The specified path does not exist.")
	})

	t.Run("empty directory", func(t *testing.T) {
		out := session(t, newTestFS(t, nil, "/empty"), nil, "1", "/empty", "7")
		assertContains(t, out, "No files found in the specified directory.")
	})

	t.Run("permission denied", func(t *testing.T) {
		fault := fsys.NewFaultFS(newTestFS(t, map[string]string{"/work/a.txt": ""}, "/work"))
		fault.SetError("MkdirAll", "/work/txt", fs.ErrPermission)

		out := session(t, fault, nil, "1", "/work", "7")
		assertContains(t, out, "Permission denied: Unable to modify files in the given path.")
	})

	t.Run("path is a file", func(t *testing.T) {
		out := session(t, newTestFS(t, map[string]string{"/a.txt": ""}), nil, "1", "/a.txt", "7")
		assertContains(t, out, "An error occurred: ")
	})
}

func TestOrganizeDryRun(t *testing.T) {
	f := newTestFS(t, map[string]string{"/work/a.txt": ""}, "/work")
	cfg := config.Default()
	cfg.DryRun = true

	out := session(t, f, cfg, "1", "/work", "7")

	assertContains(t, out, "Would move: /work/a.txt -> /work/txt/a.txt", "Dry run: nothing was moved.")
	if !f.Exists("/work/a.txt") {
		t.Error("dry run moved the file")
	}
}

func TestOrganizeAskPolicy(t *testing.T) {
	f := newTestFS(t, map[string]string{
		"/work/a.txt":     "new",
		"/work/txt/a.txt": "old",
	}, "/work/txt")
	cfg := config.Default()
	cfg.Conflict = organizer.ConflictAsk

	out := session(t, f, cfg, "1", "/work", "y", "7")

	assertContains(t, out, "already exists at '/work/txt/a.txt'. Overwrite it? [y/N]: ", "Overwritten: /work/txt/a.txt")

	data, err := f.ReadFile("/work/txt/a.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestBrowse(t *testing.T) {
	f := newTestFS(t, map[string]string{"/base/docs/notes.txt": "hello"}, "/base/docs/sub")

	out := session(t, f, nil, "2", "/base", "docs", "7")
	assertContains(t, out,
		"Enter the base directory path: ",
		"Choose a Directory: ",
		"Selected directory: /base/docs",
		"notes.txt",
		"sub/",
	)

	out = session(t, f, nil, "2", "/base", "missing", "7")
	assertContains(t, out, "Invalid directory.")

	out = session(t, f, nil, "2", "/base", "docs/notes.txt", "7")
	assertContains(t, out, "Invalid directory.")
}

func TestReadFile(t *testing.T) {
	f := newTestFS(t, map[string]string{"/data/a.txt": "hello"}, "/data")

	out := session(t, f, nil, "3", "/data/a.txt", "3", "/data/missing.txt", "7")
	assertContains(t, out,
		"File contents:\nhello",
		"Error: The file '/data/missing.txt' was not found.",
	)
}

func TestCreateFile(t *testing.T) {
	f := newTestFS(t, map[string]string{"/data/keep.txt": "original"}, "/data")

	out := session(t, f, nil,
		"4", "/data", "new.txt",
		"4", "/data", "keep.txt",
		"4", "/missing",
		"7")

	assertContains(t, out,
		"Enter the folder where you want to create the file: ",
		"Enter the file name with extension (e.g., newfile.txt): ",
		"File 'new.txt' created successfully in '/data'.",
		"Warning: The file 'keep.txt' already exists.",
		"Error: The specified folder does not exist.",
	)

	if !f.Exists("/data/new.txt") {
		t.Error("new.txt was not created")
	}
	data, err := f.ReadFile("/data/keep.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "original" {
		t.Errorf("existing file content = %q, want %q", data, "original")
	}
}

func TestAppendFile(t *testing.T) {
	f := newTestFS(t, map[string]string{"/data/a.txt": "A"}, "/data")

	out := session(t, f, nil, "5", "/data/a.txt", "B", "5", "/data/missing.txt", "7")
	assertContains(t, out,
		"Enter text to append: ",
		"Updated file contents:",
		"File contents:\nA\nB",
		"Error: The file '/data/missing.txt' does not exist.",
	)
	if strings.Count(out, "Enter text to append: ") != 1 {
		t.Error("append asked for text for a missing file")
	}
}

func TestDeleteFile(t *testing.T) {
	f := newTestFS(t, map[string]string{"/data/a.txt": "A"}, "/data")

	out := session(t, f, nil, "6", "/data/a.txt", "6", "/data/a.txt", "7")
	assertContains(t, out,
		"Enter the file name with extension to delete (e.g., file.txt): ",
		"File '/data/a.txt' deleted successfully.",
		"File not found.",
	)
	if f.Exists("/data/a.txt") {
		t.Error("file still exists after delete")
	}
}

func TestOperationErrorKeepsMenuRunning(t *testing.T) {
	fault := fsys.NewFaultFS(newTestFS(t, map[string]string{"/data/a.txt": "A"}, "/data"))
	fault.SetError("ReadFile", "/data/a.txt", fs.ErrClosed)

	out := session(t, fault, nil, "3", "/data/a.txt", "7")
	assertContains(t, out, "An unexpected error occurred: ", "Exiting. Thank you!")
}

func TestDispatchRecoversPanic(t *testing.T) {
	var out bytes.Buffer
	builder := NewAppBuilder().
		WithFileSystem(nil).
		WithIO(strings.NewReader("3\n/data/a.txt\n7\n"), &out, &bytes.Buffer{})

	if err := builder.Build(t.Context()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := builder.App().Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertContains(t, out.String(), "An unexpected error occurred: ", "panic", "Exiting. Thank you!")
}
