// Package reporter writes the outcome of a site build in a chosen format.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdsite/pkg/site"
)

// Reporter formats and writes build results.
type Reporter interface {
	// Report writes formatted output for result. A nil result reports a
	// build that failed before any page was attempted.
	Report(ctx context.Context, result *site.BuildResult) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText, FormatSummary:
		opts.Format = format
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
