package organizer

import (
	"fmt"
	"strings"

	"github.com/kaeawc/filemanager/internal/fsys"
)

// ConflictPolicy decides what happens when a file with the same name already sits in
// the destination folder.
type ConflictPolicy string

// Supported conflict policies
const (
	// ConflictOverwrite replaces the existing destination file
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictSkip leaves the source file where it is
	ConflictSkip ConflictPolicy = "skip"
	// ConflictRename moves the file under the first free "name (N).ext"
	ConflictRename ConflictPolicy = "rename"
	// ConflictFail aborts the run
	ConflictFail ConflictPolicy = "fail"
	// ConflictAsk asks a ConflictResolver; yes overwrites, no skips
	ConflictAsk ConflictPolicy = "ask"
)

// DefaultConflictPolicy never loses data and always lets the run finish.
const DefaultConflictPolicy = ConflictRename

// maxRenameAttempts bounds the search for a free "name (N)" destination
const maxRenameAttempts = 999

var knownConflictPolicies = []ConflictPolicy{
	ConflictOverwrite,
	ConflictSkip,
	ConflictRename,
	ConflictFail,
	ConflictAsk,
}

// KnownConflictPolicies returns the accepted policy names joined with "|".
func KnownConflictPolicies() string {
	names := make([]string, len(knownConflictPolicies))
	for i, p := range knownConflictPolicies {
		names[i] = string(p)
	}

	return strings.Join(names, "|")
}

// ParseConflictPolicy validates a policy name. An empty name yields the default.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultConflictPolicy, nil
	}

	for _, p := range knownConflictPolicies {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown conflict policy %q (want %s)", s, KnownConflictPolicies())
}

// String implements pflag.Value.
func (p *ConflictPolicy) String() string {
	if *p == "" {
		return string(DefaultConflictPolicy)
	}

	return string(*p)
}

// Set implements pflag.Value.
func (p *ConflictPolicy) Set(value string) error {
	parsed, err := ParseConflictPolicy(value)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Type implements pflag.Value.
func (p *ConflictPolicy) Type() string {
	return "policy"
}

// ConflictResolver answers the ask policy. Returning true overwrites the destination.
type ConflictResolver interface {
	ResolveConflict(name, destination string) (bool, error)
}

// UniqueName returns a path inside dir for name that does not exist yet, trying
// "stem (1).ext", "stem (2).ext", ... up to maxAttempts.
func UniqueName(fs fsys.FileSystem, dir, name string, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = maxRenameAttempts
	}

	stem, ext := name, ""
	if idx := strings.LastIndex(name, "."); idx > 0 {
		stem, ext = name[:idx], name[idx:]
	}

	for i := 1; i <= maxAttempts; i++ {
		candidate := fs.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if !fs.Exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("failed to find a free name for %s after %d attempts", name, maxAttempts)
}
