// Package terminal provides helpers for terminal-specific behavior.
package terminal

import (
	"fmt"
	"io"
	"strings"
)

// SetTitle sets the terminal window title using an ANSI escape sequence.
// Control characters are stripped so a title can never end the sequence early.
func SetTitle(w io.Writer, title string) {
	title = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, title)

	if title == "" {
		return
	}

	//nolint:errcheck
	_, _ = fmt.Fprintf(w, "\033]0;%s\007", title)
}

// ResetTitle clears the title set by SetTitle.
func ResetTitle(w io.Writer) {
	//nolint:errcheck
	_, _ = fmt.Fprint(w, "\033]0;\007")
}
