// Package main provides the filemanager CLI, an interactive tool for organizing and editing files.
package main

import (
	"context"
	"os"

	"github.com/kaeawc/filemanager/internal/cmd"
	"github.com/kaeawc/filemanager/internal/perf"
)

func main() {
	perf.Init()

	err := cmd.Execute(context.Background())

	perf.Shutdown()

	if err != nil {
		os.Exit(1)
	}
}
