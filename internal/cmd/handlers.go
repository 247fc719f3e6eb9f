package cmd

import (
	"context"
	"strings"

	"github.com/kaeawc/filemanager/internal/apperr"
	"github.com/kaeawc/filemanager/internal/organizer"
	"github.com/kaeawc/filemanager/internal/ui"
)

// organize asks for a directory and sorts its files into extension folders.
func (a *App) organize(ctx context.Context) error {
	path, err := a.prompter.Ask("Enter the directory path to organize: ")
	if err != nil {
		return err
	}

	opts := a.cfg.OrganizeOptions()
	opts.Progress = func(name string) {
		a.println("Processing: %s", name)
	}

	result, err := a.organizer.Organize(ctx, path, opts)
	if result != nil {
		a.reportMoves(result)
	}

	switch apperr.KindOf(err) {
	case "":
	case apperr.KindNotFound:
		a.printError("Error: The specified path does not exist.")
		return nil
	case apperr.KindPermissionDenied:
		a.printError("Permission denied: Unable to modify files in the given path.")
		return nil
	default:
		a.printError("An error occurred: %v", err)
		return nil
	}

	if result.NoFiles {
		a.println("No files found in the specified directory.")
		return nil
	}

	if result.DryRun {
		a.printSubtle("Dry run: nothing was moved.")
		return nil
	}

	a.println("\nCreated folders:")
	for _, folder := range result.ReportedFolders() {
		a.println("%s", ui.HighlightStyle.Render(folder))
	}

	return nil
}

// reportMoves prints every file that did not take the plain move path.
func (a *App) reportMoves(result *organizer.Result) {
	for _, m := range result.Moves {
		switch m.Outcome {
		case organizer.OutcomePlanned:
			a.printSubtle("Would move: %s -> %s", m.From, m.To)
		case organizer.OutcomeRenamed:
			a.printWarning("Renamed: '%s' already existed, moved to %s", m.Name, m.To)
		case organizer.OutcomeOverwritten:
			a.printWarning("Overwritten: %s", m.To)
		case organizer.OutcomeSkipped:
			a.printWarning("Skipped: '%s' already exists in its folder.", m.Name)
		}
	}

	if len(result.Excluded) > 0 {
		a.printSubtle("Left in place (excluded): %s", strings.Join(result.Excluded, ", "))
	}
}

// browse lists a subdirectory of a base path.
func (a *App) browse(_ context.Context) error {
	base, err := a.prompter.Ask("Enter the base directory path: ")
	if err != nil {
		return err
	}

	sub, err := a.prompter.Ask("\nChoose a Directory: ")
	if err != nil {
		return err
	}

	listing, err := a.browser.Browse(base, sub)
	switch apperr.KindOf(err) {
	case "":
	case apperr.KindNotFound, apperr.KindInvalidInput:
		a.printError("Invalid directory.")
		return nil
	default:
		a.printError("An error occurred: %v", err)
		return nil
	}

	a.println("Selected directory: %s", listing.Path)
	a.println("Files:")
	for _, e := range listing.Entries {
		name := e.Name
		if e.IsDir {
			name += "/"
		}

		line := "  " + ui.EntryStyle(e.IsDir, e.MIME).Render(name)
		if e.MIME != "" {
			line += " " + ui.SubtleStyle.Render("("+e.MIME+")")
		}
		a.println("%s", line)
	}

	return nil
}

// read prints the contents of a file.
func (a *App) read(_ context.Context) error {
	name, err := a.prompter.Ask("Enter file name with extension (e.g., file.txt): ")
	if err != nil {
		return err
	}

	a.showFile(name)

	return nil
}

// showFile prints a file, or the read error, in the menu's wording.
func (a *App) showFile(name string) {
	content, err := a.files.Read(name)
	switch apperr.KindOf(err) {
	case "":
		a.println("\nFile contents:\n%s", content)
	case apperr.KindNotFound:
		a.printError("Error: The file '%s' was not found.", name)
	default:
		a.printError("An unexpected error occurred: %v", err)
	}
}

// create makes an empty file inside an existing folder.
func (a *App) create(ctx context.Context) error {
	folder, err := a.prompter.Ask("Enter the folder where you want to create the file: ")
	if err != nil {
		return err
	}

	if err := a.files.CheckFolder(folder); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			a.printError("Error: The specified folder does not exist.")
		} else {
			a.printError("An unexpected error occurred: %v", err)
		}
		return nil
	}

	name, err := a.prompter.Ask("Enter the file name with extension (e.g., newfile.txt): ")
	if err != nil {
		return err
	}

	_, err = a.files.Create(ctx, folder, name)
	switch apperr.KindOf(err) {
	case "":
		a.printSuccess("File '%s' created successfully in '%s'.", name, folder)
	case apperr.KindAlreadyExists:
		a.printWarning("Warning: The file '%s' already exists.", name)
	case apperr.KindNotFound:
		a.printError("Error: The specified folder does not exist.")
	default:
		a.printError("An unexpected error occurred: %v", err)
	}

	return nil
}

// appendText adds a line to an existing file, then shows the result.
func (a *App) appendText(ctx context.Context) error {
	name, err := a.prompter.Ask("Enter the file name with extension (e.g., file.txt): ")
	if err != nil {
		return err
	}

	if err := a.files.CheckFile(name); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			a.printError("Error: The file '%s' does not exist.", name)
		} else {
			a.printError("An unexpected error occurred: %v", err)
		}
		return nil
	}

	text, err := a.prompter.Ask("Enter text to append: ")
	if err != nil {
		return err
	}

	if err := a.files.Append(ctx, name, text); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			a.printError("Error: The file '%s' does not exist.", name)
		} else {
			a.printError("An unexpected error occurred: %v", err)
		}
		return nil
	}

	a.println("\nUpdated file contents:")
	a.showFile(name)

	return nil
}

// deleteFile removes a file.
func (a *App) deleteFile(ctx context.Context) error {
	name, err := a.prompter.Ask("Enter the file name with extension to delete (e.g., file.txt): ")
	if err != nil {
		return err
	}

	err = a.files.Delete(ctx, name)
	switch apperr.KindOf(err) {
	case "":
		a.printSuccess("File '%s' deleted successfully.", name)
	case apperr.KindNotFound:
		a.printError("File not found.")
	default:
		a.printError("An error occurred: %v", err)
	}

	return nil
}
