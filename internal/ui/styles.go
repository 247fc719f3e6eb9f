package ui

import "github.com/charmbracelet/lipgloss"

// Common styles used across UI components
var (
	// Color palette
	primaryColor = lipgloss.Color("170") // Purple
	successColor = lipgloss.Color("42")  // Green
	errorColor   = lipgloss.Color("196") // Red
	warningColor = lipgloss.Color("214") // Orange
	subtleColor  = lipgloss.Color("241") // Gray

	// Text styles
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(subtleColor)

	// BoxStyle frames dialogs; only used by the bubbletea models
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)
)
