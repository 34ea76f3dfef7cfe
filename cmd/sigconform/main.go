// Package main provides the entry point for the sigconform CLI.
package main

import (
	"context"
	"os"

	"github.com/sigconform/sigconform/internal/cli"
	"github.com/sigconform/sigconform/internal/signal"
)

// Build-time variables set via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // set by -ldflags
	commit  = "none"    //nolint:gochecknoglobals // set by -ldflags
	date    = "unknown" //nolint:gochecknoglobals // set by -ldflags
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	cli.CloseLogFile()

	if err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
