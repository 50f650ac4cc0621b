package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// TextReporter writes styled terminal output.
type TextReporter struct {
	opts Options
}

// NewTextReporter creates a text reporter. FormatSummary selects the
// summary block, anything else the one-line summary.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{opts: opts}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *site.BuildResult) (err error) {
	if result != nil && len(result.Failures) > 0 {
		errStyles := pretty.NewStyles(pretty.IsColorEnabled(r.opts.Color, r.opts.ErrorWriter))
		if _, err := fmt.Fprint(r.opts.ErrorWriter, errStyles.FormatErrors(result.Failures)); err != nil {
			return fmt.Errorf("write failures: %w", err)
		}
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush: %w", flushErr)
		}
	}()

	styles := pretty.NewStyles(pretty.IsColorEnabled(r.opts.Color, r.opts.Writer))

	if r.opts.ListPages {
		bw.WriteString(styles.FormatPages(result, r.opts.OutputDir))
	}
	if r.opts.Quiet {
		return nil
	}
	if r.opts.Format == FormatSummary {
		bw.WriteString(styles.FormatSummary(result))
	} else {
		bw.WriteString(styles.FormatSummaryOneLine(result))
	}
	return nil
}
