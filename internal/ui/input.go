package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned when the user dismisses a prompt.
var ErrCanceled = errors.New("canceled")

// InputModel is a single-line text prompt.
type InputModel struct {
	textInput textinput.Model
	prompt    string
	value     string
	done      bool
	err       error
}

// NewInput creates a text prompt. placeholder is shown greyed out until the user types.
func NewInput(prompt, placeholder string) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return InputModel{textInput: ti, prompt: prompt}
}

// Init initializes the input model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input updates.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.textInput.Value()
			m.done = true

			return m, tea.Quit

		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			m.done = true

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

// View renders the input.
func (m InputModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s\n%s\n%s\n",
		HeaderStyle.Render(m.prompt),
		m.textInput.View(),
		HelpStyle.Render("enter to confirm, esc to cancel"))
}

// Value returns the submitted text.
func (m InputModel) Value() string {
	return m.value
}

// Err returns ErrCanceled if the prompt was dismissed.
func (m InputModel) Err() error {
	return m.err
}
