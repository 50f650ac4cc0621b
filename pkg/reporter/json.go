package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gomdsite/pkg/site"
)

// JSONVersion is the version of the JSON report layout.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string      `json:"version"`
	Pages    []JSONPage  `json:"pages"`
	Failures []string    `json:"failures"`
	Summary  JSONSummary `json:"summary"`
}

// JSONPage describes one generated page. Paths are slash-separated and, for
// Dest, relative to the output directory when one is set.
type JSONPage struct {
	Source   string `json:"source"`
	Dest     string `json:"dest"`
	Title    string `json:"title"`
	Bytes    int    `json:"bytes"`
	Elements int    `json:"elements"`
	Written  bool   `json:"written"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	PagesDiscovered int   `json:"pagesDiscovered"`
	PagesBuilt      int   `json:"pagesBuilt"`
	PagesWritten    int   `json:"pagesWritten"`
	PagesFailed     int   `json:"pagesFailed"`
	PagesSkipped    int   `json:"pagesSkipped"`
	StaticFiles     int   `json:"staticFiles"`
	TotalBytes      int   `json:"totalBytes"`
	DurationMillis  int64 `json:"durationMs"`
	Succeeded       bool  `json:"succeeded"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *site.BuildResult) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush: %w", flushErr)
		}
	}()

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *site.BuildResult) *JSONOutput {
	output := &JSONOutput{
		Version:  JSONVersion,
		Pages:    make([]JSONPage, 0),
		Failures: make([]string, 0),
	}
	if result == nil {
		return output
	}

	for _, page := range result.Pages {
		output.Pages = append(output.Pages, JSONPage{
			Source:   filepath.ToSlash(page.Source),
			Dest:     r.relDest(page.Dest),
			Title:    page.Title,
			Bytes:    page.Bytes,
			Elements: page.Elements,
			Written:  page.Written,
		})
	}
	for _, failure := range result.Failures {
		output.Failures = append(output.Failures, failure.Error())
	}

	output.Summary = JSONSummary{
		PagesDiscovered: result.Stats.FilesDiscovered,
		PagesBuilt:      result.Stats.FilesProcessed,
		PagesWritten:    result.Written(),
		PagesFailed:     result.Stats.FilesErrored,
		PagesSkipped:    result.Stats.FilesSkipped,
		StaticFiles:     result.StaticFiles,
		TotalBytes:      result.TotalBytes(),
		DurationMillis:  result.Duration.Milliseconds(),
		Succeeded:       result.Stats.FilesErrored == 0 && result.Stats.FilesSkipped == 0,
	}
	return output
}

func (r *JSONReporter) relDest(dest string) string {
	if r.opts.OutputDir != "" {
		if rel, err := filepath.Rel(r.opts.OutputDir, dest); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(dest)
}
