package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunMenu shows a menu and returns the chosen key.
func RunMenu(title string, items []MenuItem, cancelKey string, opts ...tea.ProgramOption) (string, error) {
	m, err := tea.NewProgram(NewMenu(title, items, cancelKey), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run menu: %w", err)
	}

	finalModel, ok := m.(MenuModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if finalModel.Choice() == "" {
		return cancelKey, nil
	}

	return finalModel.Choice(), nil
}

// RunInput asks for one line of text. A dismissed prompt returns ErrCanceled.
func RunInput(prompt, placeholder string, opts ...tea.ProgramOption) (string, error) {
	m, err := tea.NewProgram(NewInput(prompt, placeholder), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("failed to get input: %w", err)
	}

	finalModel, ok := m.(InputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if finalModel.Err() != nil {
		return "", finalModel.Err()
	}

	return finalModel.Value(), nil
}

// RunConfirm asks a yes/no question. A dismissed dialog counts as no.
func RunConfirm(prompt string, opts ...tea.ProgramOption) (bool, error) {
	m, err := tea.NewProgram(NewConfirmModel(prompt, false), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("failed to show confirmation: %w", err)
	}

	finalModel, ok := m.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}

	return finalModel.Confirmed(), nil
}
