package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// ConfirmModel represents a yes/no question
type ConfirmModel struct {
	prompt   string
	yes      bool // currently highlighted answer
	answered bool
	canceled bool
}

// NewConfirmModel creates a yes/no question with the given answer highlighted
func NewConfirmModel(prompt string, defaultYes bool) ConfirmModel {
	return ConfirmModel{prompt: prompt, yes: defaultYes}
}

// Init initializes the confirmation dialog.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles user input for the confirmation dialog.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyCtrlC, "q", keyEsc:
		m.canceled = true
		m.yes = false

		return m, tea.Quit

	case "left", "h":
		m.yes = true

	case "right", "l":
		m.yes = false

	case "tab":
		m.yes = !m.yes

	case "y", "Y":
		m.yes = true
		m.answered = true

		return m, tea.Quit

	case "n", "N":
		m.yes = false
		m.answered = true

		return m, tea.Quit

	case keyEnter:
		m.answered = true

		return m, tea.Quit
	}

	return m, nil
}

// View renders the confirmation dialog.
func (m ConfirmModel) View() string {
	if m.answered || m.canceled {
		return ""
	}

	button := func(label string, selected bool, color lipgloss.Color) string {
		style := lipgloss.NewStyle().Padding(0, 2)
		if selected {
			style = style.Border(lipgloss.RoundedBorder()).BorderForeground(color)
		}
		return style.Render(label)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		button("Yes", m.yes, ColorGreen), "  ", button("No", !m.yes, ColorRed))

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		WarningStyle.Render(m.prompt),
		"",
		buttons,
		"",
		HelpStyle.Render("y/n to answer, arrows to switch, enter to confirm"),
	))
}

// Confirmed returns true if the user answered yes
func (m ConfirmModel) Confirmed() bool {
	return m.answered && m.yes
}

// Canceled returns true if the dialog was dismissed without an answer
func (m ConfirmModel) Canceled() bool {
	return m.canceled
}
