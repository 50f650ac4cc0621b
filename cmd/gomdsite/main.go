// Package main is the entry point for the gomdsite CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yaklabco/gomdsite/internal/cli"
	"github.com/yaklabco/gomdsite/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := logging.Default()

	// Match GOMAXPROCS to the container CPU quota before the page runner
	// sizes its worker pool.
	undo, err := maxprocs.Set(maxprocs.Logger(logger.Debugf))
	defer undo()
	if err != nil {
		logger.Debug("could not set GOMAXPROCS", logging.FieldError, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
