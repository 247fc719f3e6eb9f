package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/kaeawc/filemanager/internal/ui"
)

// Prompter owns every question the menu asks. Line and TUI implementations behave the
// same from the menu's point of view: io.EOF ends the session and ui.ErrCanceled aborts
// the current operation only.
type Prompter interface {
	// Choose shows the menu and returns the raw text of the selection
	Choose(title string, items []ui.MenuItem) (string, error)
	// Ask returns one line of text
	Ask(prompt string) (string, error)
	// Confirm asks a yes/no question
	Confirm(prompt string) (bool, error)
}

// linePrompter reads answers line by line, as a plain terminal or a pipe would provide them.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Choose(title string, items []ui.MenuItem) (string, error) {
	//nolint:errcheck
	fmt.Fprintf(p.out, "\n%s\n", ui.TitleStyle.Render(title))
	for _, item := range items {
		//nolint:errcheck
		fmt.Fprintln(p.out, item.Label())
	}

	return p.Ask(menuPrompt)
}

func (p *linePrompter) Ask(prompt string) (string, error) {
	//nolint:errcheck
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *linePrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Ask(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// tuiPrompter runs a bubbletea program per question.
type tuiPrompter struct {
	opts []tea.ProgramOption
}

func newTUIPrompter(opts ...tea.ProgramOption) *tuiPrompter {
	return &tuiPrompter{opts: opts}
}

func (p *tuiPrompter) Choose(title string, items []ui.MenuItem) (string, error) {
	return ui.RunMenu(title, items, exitKey, p.opts...)
}

func (p *tuiPrompter) Ask(prompt string) (string, error) {
	return ui.RunInput(strings.TrimSpace(prompt), "", p.opts...)
}

func (p *tuiPrompter) Confirm(prompt string) (bool, error) {
	return ui.RunConfirm(prompt, p.opts...)
}

// promptResolver answers organize conflicts under the ask policy.
type promptResolver struct {
	prompter Prompter
}

func (r promptResolver) ResolveConflict(name, destination string) (bool, error) {
	return r.prompter.Confirm(fmt.Sprintf("'%s' already exists at '%s'. Overwrite it?", name, destination))
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
