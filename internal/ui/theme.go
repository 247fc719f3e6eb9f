package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Basic ANSI colours so output follows the user's terminal theme
const (
	ColorRed     = lipgloss.Color("1") // Errors
	ColorGreen   = lipgloss.Color("2") // Success, text files
	ColorYellow  = lipgloss.Color("3") // Warnings, archives
	ColorBlue    = lipgloss.Color("4") // Directories
	ColorMagenta = lipgloss.Color("5") // Images and media
	ColorCyan    = lipgloss.Color("6") // Highlights/prompts
)

// Additional semantic styles not in styles.go
var (
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
)

// EntryColor picks the listing colour for a directory entry from its kind and MIME type.
func EntryColor(isDir bool, mime string) lipgloss.TerminalColor {
	if isDir {
		return ColorBlue
	}

	major, _, _ := strings.Cut(mime, "/")

	switch {
	case major == "image", major == "audio", major == "video":
		return ColorMagenta
	case major == "text":
		return ColorGreen
	case strings.Contains(mime, "zip"), strings.Contains(mime, "tar"), strings.Contains(mime, "compress"):
		return ColorYellow
	default:
		return lipgloss.NoColor{}
	}
}

// EntryStyle returns a lipgloss style for a directory entry.
func EntryStyle(isDir bool, mime string) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(EntryColor(isDir, mime))
	if isDir {
		style = style.Bold(true)
	}

	return style
}
