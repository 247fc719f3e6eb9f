// Package config loads file manager settings from FILEMANAGER_* environment variables.
// Command-line flags are layered on top by the cmd package.
package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kelseyhightower/envconfig"

	"github.com/kaeawc/filemanager/internal/organizer"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "FILEMANAGER"

// Log output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds all application configuration.
type Config struct {
	// Conflict is the organize policy for destination names that are already taken
	Conflict organizer.ConflictPolicy `envconfig:"CONFLICT" default:"rename"`
	// Exclude holds glob patterns for file names the organizer leaves in place
	Exclude []string `envconfig:"EXCLUDE"`
	// ReportAllFolders reports every nested folder after organizing
	ReportAllFolders bool `envconfig:"REPORT_ALL_FOLDERS" default:"false"`
	// DryRun plans organize runs without moving anything
	DryRun bool `envconfig:"DRY_RUN" default:"false"`
	// Journal is the SQLite journal path; empty disables journaling
	Journal string `envconfig:"JOURNAL"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	// LogFormat is console or json
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	// Plain forces line-mode prompts even on a terminal
	Plain bool `envconfig:"PLAIN" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Conflict:  organizer.DefaultConflictPolicy,
		LogLevel:  "warn",
		LogFormat: FormatConsole,
	}
}

// Validate rejects settings that would fail later at run time.
func (c *Config) Validate() error {
	if _, err := organizer.ParseConflictPolicy(string(c.Conflict)); err != nil {
		return err
	}

	switch c.LogFormat {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want %s|%s)", c.LogFormat, FormatConsole, FormatJSON)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("bad exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	return nil
}

// OrganizeOptions converts the organize settings into organizer options.
func (c *Config) OrganizeOptions() organizer.Options {
	return organizer.Options{
		Conflict:         c.Conflict,
		Exclude:          c.Exclude,
		DryRun:           c.DryRun,
		ReportAllFolders: c.ReportAllFolders,
	}
}
