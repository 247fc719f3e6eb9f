package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/browser"
	"github.com/kaeawc/filemanager/internal/config"
	"github.com/kaeawc/filemanager/internal/fileops"
	"github.com/kaeawc/filemanager/internal/organizer"
	"github.com/kaeawc/filemanager/internal/perf"
	"github.com/kaeawc/filemanager/internal/ui"
)

const (
	menuTitle  = "---------- Choose an Option ----------"
	menuPrompt = "Enter your choice: "
	exitKey    = "7"
)

// menuItems are the numbered menu entries, in display order.
var menuItems = []ui.MenuItem{
	ui.NewMenuItem("1", "Organize files into folders"),
	ui.NewMenuItem("2", "Select and view a directory"),
	ui.NewMenuItem("3", "Read a file"),
	ui.NewMenuItem("4", "Create a new file"),
	ui.NewMenuItem("5", "Write to an existing file"),
	ui.NewMenuItem("6", "Delete a file"),
	ui.NewMenuItem(exitKey, "Exit"),
}

// App is the interactive file manager session.
type App struct {
	cfg       *config.Config
	prompter  Prompter
	out       io.Writer
	logger    *slog.Logger
	organizer *organizer.Organizer
	files     *fileops.Service
	browser   *browser.Browser
}

// Run shows the menu until the user chooses Exit or input ends.
// Operation failures are reported and never end the loop.
func (a *App) Run(ctx context.Context) error {
	for {
		raw, err := a.prompter.Choose(menuTitle, menuItems)
		if errors.Is(err, io.EOF) {
			a.println("Exiting. Thank you!")
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			a.printError("Invalid input. Please enter a number.")
			continue
		}

		if choice == 7 {
			a.println("Exiting. Thank you!")
			return nil
		}

		if choice < 1 || choice > 7 {
			a.printError("Invalid choice. Please choose a number between 1 and 7.")
			continue
		}

		err = a.dispatch(ctx, choice)
		switch {
		case err == nil, errors.Is(err, ui.ErrCanceled):
		case errors.Is(err, io.EOF):
			a.println("Exiting. Thank you!")
			return nil
		default:
			a.logger.Error("menu operation failed", "choice", choice, "error", err)
			a.printError("An unexpected error occurred: %v", err)
		}
	}
}

// dispatch runs one menu operation. A panic inside the operation is reported as an
// unexpected error so the menu keeps running.
func (a *App) dispatch(ctx context.Context, choice int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperr.New(apperr.KindUnexpected, "menu", "", fmt.Errorf("panic: %v", r))
		}
	}()

	handlers := map[int]struct {
		name string
		fn   func(context.Context) error
	}{
		1: {"organize", a.organize},
		2: {"browse", a.browse},
		3: {"read", a.read},
		4: {"create", a.create},
		5: {"append", a.appendText},
		6: {"delete", a.deleteFile},
	}

	h := handlers[choice]

	end := perf.StartSpan(h.name)
	defer end()

	a.logger.Debug("menu choice", "op", h.name)

	return h.fn(ctx)
}

func (a *App) println(format string, args ...any) {
	//nolint:errcheck
	fmt.Fprintln(a.out, fmt.Sprintf(format, args...))
}

func (a *App) printSuccess(format string, args ...any) {
	//nolint:errcheck
	fmt.Fprintln(a.out, ui.SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) printWarning(format string, args ...any) {
	//nolint:errcheck
	fmt.Fprintln(a.out, ui.WarningStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) printError(format string, args ...any) {
	//nolint:errcheck
	fmt.Fprintln(a.out, ui.ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func (a *App) printSubtle(format string, args ...any) {
	//nolint:errcheck
	fmt.Fprintln(a.out, ui.SubtleStyle.Render(fmt.Sprintf(format, args...)))
}
