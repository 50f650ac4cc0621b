package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for the report (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter receives per-page failures in the text formats
	// (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ListPages prints one line per generated page before the summary.
	ListPages bool

	// Quiet suppresses the summary in the text formats. Failures are
	// still written.
	Quiet bool

	// Compact uses minified JSON.
	Compact bool

	// OutputDir is the directory page paths are shown relative to.
	OutputDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
	}
}
