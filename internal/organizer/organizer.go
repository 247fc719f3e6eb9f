// Package organizer sorts the files directly inside a directory into subfolders named
// after each file's extension.
//
// The directory is listed once before anything moves, so folders created during a run
// are never rescanned. Subdirectories and their contents are left alone.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/fsys"
	"github.com/kaeawc/filemanager/internal/journal"
)

const opOrganize = "organize"

// Outcome describes what happened to a single file.
type Outcome string

// Per-file outcomes
const (
	OutcomePlanned     Outcome = "planned"
	OutcomeMoved       Outcome = "moved"
	OutcomeRenamed     Outcome = "renamed"
	OutcomeOverwritten Outcome = "overwritten"
	OutcomeSkipped     Outcome = "skipped"
)

// Options tune a single organize run.
type Options struct {
	// Conflict decides what happens when the destination name is taken
	Conflict ConflictPolicy
	// Exclude holds glob patterns; matching file names stay in place
	Exclude []string
	// DryRun plans the run without touching the filesystem
	DryRun bool
	// ReportAllFolders reports every nested directory instead of only those created this run
	ReportAllFolders bool
	// Progress, when set, is called with each file name before it is processed
	Progress func(name string)
}

// PlannedMove is a file scheduled to move into its extension folder.
type PlannedMove struct {
	Name      string
	Extension string
	From      string
	Dir       string
	To        string
}

// Plan is the outcome of scanning a directory once.
type Plan struct {
	Base     string
	Files    []PlannedMove
	Excluded []string
}

// Move is a processed file.
type Move struct {
	Name      string
	Extension string
	From      string
	To        string
	Outcome   Outcome
}

// Result summarizes an organize run. On failure it holds everything done before the error.
type Result struct {
	RunID          string
	Base           string
	NoFiles        bool
	DryRun         bool
	Moves          []Move
	CreatedFolders []string
	AllFolders     []string
	Excluded       []string
}

// ReportedFolders returns the folders to show the user: every nested directory when the
// legacy report was requested, otherwise the folders created by this run.
func (r *Result) ReportedFolders() []string {
	if r.AllFolders != nil {
		return r.AllFolders
	}

	return r.CreatedFolders
}

// Organizer runs organize operations against a filesystem.
type Organizer struct {
	fs       fsys.FileSystem
	recorder journal.Recorder
	resolver ConflictResolver
	logger   *slog.Logger
	newRunID func() string
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithRecorder journals every mutation.
func WithRecorder(r journal.Recorder) Option {
	return func(o *Organizer) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithResolver answers conflicts under the ask policy.
func WithResolver(r ConflictResolver) Option {
	return func(o *Organizer) {
		o.resolver = r
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Organizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Organizer.
func New(filesystem fsys.FileSystem, opts ...Option) *Organizer {
	o := &Organizer{
		fs:       filesystem,
		recorder: journal.Discard{},
		logger:   slog.New(slog.DiscardHandler),
		newRunID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Plan lists path once and decides where every regular file goes. It never mutates
// the filesystem.
func (o *Organizer) Plan(path string, opts Options) (*Plan, error) {
	info, err := o.fs.Stat(path)
	if err != nil {
		return nil, apperr.FromFS(opOrganize, path, err)
	}
	if !info.IsDir() {
		return nil, apperr.InvalidInput(opOrganize, path, "not a directory")
	}

	entries, err := o.fs.ReadDir(path)
	if err != nil {
		return nil, apperr.FromFS(opOrganize, path, err)
	}

	if err := validatePatterns(opts.Exclude); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, opOrganize, path, err)
	}

	plan := &Plan{Base: path}

	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		name := entry.Name()

		excluded, err := matchesAny(opts.Exclude, name)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidInput, opOrganize, path, err)
		}
		if excluded {
			plan.Excluded = append(plan.Excluded, name)
			continue
		}

		ext := ExtensionOf(name)
		dir := o.fs.Join(path, ext)
		plan.Files = append(plan.Files, PlannedMove{
			Name:      name,
			Extension: ext,
			From:      o.fs.Join(path, name),
			Dir:       dir,
			To:        o.fs.Join(dir, name),
		})
	}

	return plan, nil
}

// Organize moves every regular file directly inside path into path/<extension>.
// Any error ends the run; moves already made are kept and reported in the result.
func (o *Organizer) Organize(ctx context.Context, path string, opts Options) (*Result, error) {
	plan, err := o.Plan(path, opts)
	if err != nil {
		o.logger.Warn("organize scan failed", "op", opOrganize, "path", path, "error", err)
		return nil, err
	}

	r := &run{
		Organizer: o,
		ctx:       ctx,
		opts:      opts,
		result: &Result{
			RunID:    o.newRunID(),
			Base:     plan.Base,
			DryRun:   opts.DryRun,
			Excluded: plan.Excluded,
		},
		created: make(map[string]bool),
	}
	if r.opts.Conflict == "" {
		r.opts.Conflict = DefaultConflictPolicy
	}

	logger := o.logger.With("op", opOrganize, "path", path, "run_id", r.result.RunID)

	if len(plan.Files) == 0 {
		r.result.NoFiles = true
		logger.Info("no files to organize", "excluded", len(plan.Excluded))
		return r.result, nil
	}

	for _, planned := range plan.Files {
		if opts.Progress != nil {
			opts.Progress(planned.Name)
		}

		if err := r.process(planned); err != nil {
			logger.Warn("organize aborted", "file", planned.Name, "moved", len(r.result.Moves), "error", err)
			return r.result, err
		}
	}

	if opts.ReportAllFolders {
		folders, err := o.nestedFolders(path)
		if err != nil {
			return r.result, err
		}
		r.result.AllFolders = folders
	}

	logger.Info("organize finished",
		"files", len(r.result.Moves),
		"created_folders", len(r.result.CreatedFolders),
		"dry_run", opts.DryRun)

	return r.result, nil
}

// nestedFolders lists every directory below base, recursively.
func (o *Organizer) nestedFolders(base string) ([]string, error) {
	folders := []string{}

	err := o.fs.Walk(base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && p != base {
			folders = append(folders, p)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromFS(opOrganize, base, err)
	}

	return folders, nil
}

// run carries the state of one Organize call.
type run struct {
	*Organizer
	ctx     context.Context
	opts    Options
	result  *Result
	created map[string]bool
}

func (r *run) process(p PlannedMove) error {
	move := Move{Name: p.Name, Extension: p.Extension, From: p.From, To: p.To, Outcome: OutcomeMoved}

	if r.opts.DryRun {
		move.Outcome = OutcomePlanned
		r.result.Moves = append(r.result.Moves, move)
		return nil
	}

	if err := r.ensureDir(p.Dir); err != nil {
		return err
	}

	if r.fs.Exists(p.To) {
		to, outcome, err := r.resolveConflict(p)
		if err != nil {
			return err
		}
		move.To, move.Outcome = to, outcome
	}

	if move.Outcome == OutcomeSkipped {
		r.record(journal.OpMove, p.From, p.To, journal.OutcomeSkipped, "destination exists")
		r.result.Moves = append(r.result.Moves, move)
		return nil
	}

	if move.Outcome == OutcomeOverwritten {
		if err := r.fs.Remove(move.To); err != nil {
			return apperr.FromFS(opOrganize, move.To, err)
		}
	}

	if err := r.fs.Rename(p.From, move.To); err != nil {
		r.record(journal.OpMove, p.From, move.To, journal.OutcomeFailed, err.Error())
		return apperr.FromFS(opOrganize, p.From, err)
	}

	r.record(journal.OpMove, p.From, move.To, journalOutcome(move.Outcome), "")
	r.logger.Debug("moved file", "op", opOrganize, "from", p.From, "to", move.To, "outcome", move.Outcome)
	r.result.Moves = append(r.result.Moves, move)

	return nil
}

// ensureDir creates the extension folder once; an existing directory is fine.
func (r *run) ensureDir(dir string) error {
	if r.created[dir] {
		return nil
	}

	info, err := r.fs.Lstat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return apperr.New(apperr.KindUnexpected, opOrganize, dir,
			fmt.Errorf("cannot create folder: %w", fs.ErrExist))
	case !errors.Is(err, fs.ErrNotExist):
		return apperr.FromFS(opOrganize, dir, err)
	}

	if err := r.fs.MkdirAll(dir); err != nil {
		return apperr.FromFS(opOrganize, dir, err)
	}

	r.created[dir] = true
	r.result.CreatedFolders = append(r.result.CreatedFolders, dir)
	r.record(journal.OpMkdir, dir, "", journal.OutcomeOK, "")

	return nil
}

func (r *run) resolveConflict(p PlannedMove) (string, Outcome, error) {
	switch r.opts.Conflict {
	case ConflictOverwrite:
		return p.To, OutcomeOverwritten, nil
	case ConflictSkip:
		return p.To, OutcomeSkipped, nil
	case ConflictFail:
		return "", "", apperr.AlreadyExists(opOrganize, p.To)
	case ConflictAsk:
		if r.resolver == nil {
			return p.To, OutcomeSkipped, nil
		}
		overwrite, err := r.resolver.ResolveConflict(p.Name, p.To)
		if err != nil {
			return "", "", apperr.New(apperr.KindUnexpected, opOrganize, p.To, err)
		}
		if overwrite {
			return p.To, OutcomeOverwritten, nil
		}
		return p.To, OutcomeSkipped, nil
	default:
		to, err := UniqueName(r.fs, p.Dir, p.Name, maxRenameAttempts)
		if err != nil {
			return "", "", apperr.New(apperr.KindAlreadyExists, opOrganize, p.To, err)
		}
		return to, OutcomeRenamed, nil
	}
}

func (r *run) record(op, path, dest, outcome, detail string) {
	err := r.recorder.Record(r.ctx, &journal.Entry{
		RunID:   r.result.RunID,
		Op:      op,
		Path:    path,
		Dest:    dest,
		Outcome: outcome,
		Detail:  detail,
	})
	if err != nil {
		r.logger.Warn("journal write failed", "op", op, "path", path, "error", err)
	}
}

func journalOutcome(o Outcome) string {
	switch o {
	case OutcomeRenamed:
		return journal.OutcomeRenamed
	case OutcomeOverwritten:
		return journal.OutcomeOverwritten
	case OutcomeSkipped:
		return journal.OutcomeSkipped
	default:
		return journal.OutcomeOK
	}
}

// validatePatterns reports the first malformed exclude pattern.
func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("bad exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	return nil
}

func matchesAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
