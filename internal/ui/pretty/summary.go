package pretty

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gomdsite/pkg/site"
)

const summaryDividerWidth = 40

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func formatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatSummaryOneLine formats a build result as a single line.
// Example: "Built 12 pages (3 updated, 48 kB), copied 5 static files in 120ms".
func (s *Styles) FormatSummaryOneLine(res *site.BuildResult) string {
	if res == nil {
		return s.Failure.Render("Build failed") + "\n"
	}

	built := fmt.Sprintf("Built %s", plural(res.Stats.FilesProcessed, "page"))
	var msg string
	if res.Stats.FilesErrored > 0 {
		msg = s.Failure.Render(built)
	} else {
		msg = s.Success.Render(built)
	}

	msg += s.Dim.Render(fmt.Sprintf(" (%d updated, %s)", res.Written(), formatBytes(res.TotalBytes())))

	var parts []string
	if res.StaticFiles > 0 {
		parts = append(parts, "copied "+plural(res.StaticFiles, "static file"))
	}
	if res.Stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(plural(res.Stats.FilesErrored, "failure")))
	}
	if res.Stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", res.Stats.FilesSkipped)))
	}
	if len(parts) > 0 {
		msg += ", " + strings.Join(parts, ", ")
	}

	return msg + " in " + formatDuration(res.Duration) + "\n"
}

// FormatSummary formats a build result as a summary block.
func (s *Styles) FormatSummary(res *site.BuildResult) string {
	if res == nil {
		return s.FormatSummaryOneLine(nil)
	}

	var builder strings.Builder
	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Pages found", s.SummaryValue.Render(strconv.Itoa(res.Stats.FilesDiscovered)))
	row("Pages built", s.SummaryValue.Render(strconv.Itoa(res.Stats.FilesProcessed)))
	if written := res.Written(); written != res.Stats.FilesProcessed {
		row("Pages updated", s.Success.Render(strconv.Itoa(written)))
	}
	if res.Stats.FilesErrored > 0 {
		row("Pages failed", s.Failure.Render(strconv.Itoa(res.Stats.FilesErrored)))
	}
	if res.Stats.FilesSkipped > 0 {
		row("Pages skipped", s.Warning.Render(strconv.Itoa(res.Stats.FilesSkipped)))
	}
	row("Static files", s.SummaryValue.Render(strconv.Itoa(res.StaticFiles)))
	row("Output size", s.SummaryValue.Render(formatBytes(res.TotalBytes())))
	row("Duration", s.SummaryValue.Render(formatDuration(res.Duration)))

	builder.WriteString("\n")
	if res.Stats.FilesErrored > 0 || res.Stats.FilesSkipped > 0 {
		builder.WriteString(s.Failure.Render("Build failed"))
	} else {
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatPages lists every generated page with its title and size. Paths are
// shown relative to outputDir when possible.
func (s *Styles) FormatPages(res *site.BuildResult, outputDir string) string {
	if res == nil {
		return ""
	}

	var builder strings.Builder
	for _, page := range res.Pages {
		dest := page.Dest
		if rel, err := filepath.Rel(outputDir, dest); err == nil {
			dest = filepath.ToSlash(rel)
		}

		builder.WriteString(s.FilePath.Render(dest))
		builder.WriteString("  ")
		builder.WriteString(s.Title.Render(page.Title))
		builder.WriteString("  ")
		builder.WriteString(s.Size.Render(formatBytes(page.Bytes)))
		if !page.Written {
			builder.WriteString(s.Dim.Render(" (unchanged)"))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatErrors lists each error on its own line.
func (s *Styles) FormatErrors(errs []error) string {
	var builder strings.Builder
	for _, e := range errs {
		if e == nil {
			continue
		}
		builder.WriteString(s.Error.Render("error"))
		builder.WriteString(": ")
		builder.WriteString(e.Error())
		builder.WriteString("\n")
	}
	return builder.String()
}
