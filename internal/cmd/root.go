// Package cmd wires configuration, storage and prompts into the filemanager command.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kaeawc/filemanager/internal/browser"
	"github.com/kaeawc/filemanager/internal/config"
	"github.com/kaeawc/filemanager/internal/fileops"
	"github.com/kaeawc/filemanager/internal/fsys"
	"github.com/kaeawc/filemanager/internal/journal"
	"github.com/kaeawc/filemanager/internal/logging"
	"github.com/kaeawc/filemanager/internal/organizer"
	"github.com/kaeawc/filemanager/internal/terminal"
)

// Version is overridden at build time with -ldflags "-X .../internal/cmd.Version=...".
var Version = "0.1.0-dev"

const appName = "filemanager"

// AppBuilder collects the pieces of an App before it runs.
type AppBuilder struct {
	cfg     *config.Config
	fs      fsys.FileSystem
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	journal *journal.Journal
	tui     bool
}

// NewAppBuilder creates a builder wired to the host filesystem and standard streams.
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{
		cfg:    config.Default(),
		fs:     fsys.NewOS(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// WithConfig replaces the configuration.
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.cfg = cfg
	return b
}

// WithFileSystem replaces the filesystem every component works against.
func (b *AppBuilder) WithFileSystem(filesystem fsys.FileSystem) *AppBuilder {
	b.fs = filesystem
	return b
}

// WithIO replaces the input, output and diagnostic streams.
func (b *AppBuilder) WithIO(in io.Reader, out, errOut io.Writer) *AppBuilder {
	b.in, b.out, b.errOut = in, out, errOut
	return b
}

// Build validates the configuration and opens the logger and journal.
func (b *AppBuilder) Build(ctx context.Context) error {
	if err := b.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  b.cfg.LogLevel,
		Format: b.cfg.LogFormat,
		Writer: b.errOut,
	})
	if err != nil {
		return err
	}
	b.logger = logger

	if b.cfg.Journal != "" && b.journal == nil {
		j, err := journal.Open(ctx, b.cfg.Journal)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		b.journal = j
	}

	b.tui = !b.cfg.Plain && isTerminal(b.in) && isTerminal(b.out)

	return nil
}

// App assembles the session. Build must have succeeded first.
func (b *AppBuilder) App() *App {
	var recorder journal.Recorder = journal.Discard{}
	if b.journal != nil {
		recorder = b.journal
	}

	var prompter Prompter
	if b.tui {
		prompter = newTUIPrompter(tea.WithInput(b.in), tea.WithOutput(b.out))
	} else {
		prompter = newLinePrompter(b.in, b.out)
	}

	return &App{
		cfg:      b.cfg,
		prompter: prompter,
		out:      b.out,
		logger:   b.logger,
		organizer: organizer.New(b.fs,
			organizer.WithRecorder(recorder),
			organizer.WithResolver(promptResolver{prompter: prompter}),
			organizer.WithLogger(b.logger)),
		files:   fileops.NewService(b.fs, recorder, b.logger),
		browser: browser.New(b.fs, b.logger),
	}
}

// Journal returns the opened journal, or nil when journaling is off.
func (b *AppBuilder) Journal() *journal.Journal {
	return b.journal
}

// Close releases the journal.
func (b *AppBuilder) Close() error {
	if b.journal == nil {
		return nil
	}

	err := b.journal.Close()
	b.journal = nil

	return err
}

// flagValues holds the raw root flags; only flags the user set override the environment.
type flagValues struct {
	conflict         organizer.ConflictPolicy
	exclude          []string
	reportAllFolders bool
	dryRun           bool
	journal          string
	logLevel         string
	logFormat        string
	plain            bool
}

func (v *flagValues) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("on-conflict") {
		cfg.Conflict = v.conflict
	}
	if flags.Changed("exclude") {
		cfg.Exclude = v.exclude
	}
	if flags.Changed("report-all-folders") {
		cfg.ReportAllFolders = v.reportAllFolders
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = v.dryRun
	}
	if flags.Changed("journal") {
		cfg.Journal = v.journal
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = v.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = v.logFormat
	}
	if flags.Changed("plain") {
		cfg.Plain = v.plain
	}
}

// RootCmd builds the filemanager command tree.
func RootCmd(appBuilder *AppBuilder) *cobra.Command {
	values := &flagValues{conflict: organizer.DefaultConflictPolicy}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Interactive file manager",
		Long: "filemanager is an interactive file manager. It organizes files into folders by\n" +
			"extension, lists directories, and reads, creates, appends to and deletes files.\n\n" +
			"Every flag can also be set with a FILEMANAGER_* environment variable.",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			values.apply(cmd.Flags(), cfg)
			appBuilder.WithConfig(cfg)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			if err := appBuilder.Build(cmd.Context()); err != nil {
				return err
			}
			defer appBuilder.Close() //nolint:errcheck

			if appBuilder.tui {
				terminal.SetTitle(appBuilder.out, appName)
				defer terminal.ResetTitle(appBuilder.out)
			}

			return appBuilder.App().Run(cmd.Context())
		},
	}

	rootFlags := pflag.NewFlagSet("root", pflag.ContinueOnError)
	rootFlags.Var(&values.conflict, "on-conflict",
		"What to do when a file already exists in its folder ("+organizer.KnownConflictPolicies()+")")
	rootFlags.StringSliceVar(&values.exclude, "exclude", nil, "Glob patterns of file names to leave in place")
	rootFlags.BoolVar(&values.reportAllFolders, "report-all-folders", false,
		"After organizing, list every nested folder instead of only the new ones")
	rootFlags.BoolVar(&values.dryRun, "dry-run", false, "Show what organizing would move without moving anything")
	rootFlags.StringVar(&values.journal, "journal", "", "Path to a SQLite journal of every change (disabled when empty)")
	rootFlags.StringVar(&values.logLevel, "log-level", "warn", "Diagnostic log level (debug|info|warn|error)")
	rootFlags.StringVar(&values.logFormat, "log-format", config.FormatConsole, "Diagnostic log format (console|json)")
	rootFlags.BoolVar(&values.plain, "plain", false, "Use plain line prompts even on a terminal")
	rootCmd.PersistentFlags().AddFlagSet(rootFlags)

	rootCmd.AddCommand(historyCmd(appBuilder))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func historyCmd(appBuilder *AppBuilder) *cobra.Command {
	var (
		runID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show journaled changes, newest first",
		Long:  "Show journaled changes, newest first. Requires --journal or FILEMANAGER_JOURNAL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			if appBuilder.cfg.Journal == "" {
				return errors.New("no journal configured: set --journal or FILEMANAGER_JOURNAL")
			}

			if err := appBuilder.Build(cmd.Context()); err != nil {
				return err
			}
			defer appBuilder.Close() //nolint:errcheck

			var (
				entries []*journal.Entry
				err     error
			)
			if runID != "" {
				entries, err = appBuilder.Journal().ByRun(cmd.Context(), runID, limit)
			} else {
				entries, err = appBuilder.Journal().Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No journal entries.") //nolint:errcheck
				return nil
			}

			lastRun := ""
			for _, e := range entries {
				if e.RunID != lastRun {
					fmt.Fprintf(out, "run %s\n", e.RunID) //nolint:errcheck
					lastRun = e.RunID
				}
				fmt.Fprintf(out, "  %s\n", e) //nolint:errcheck
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Only show entries of this run ID")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version) //nolint:errcheck
		},
	}
}

// Execute runs the filemanager command with os.Args.
func Execute(ctx context.Context) error {
	return RootCmd(NewAppBuilder()).ExecuteContext(ctx)
}
