package pretty_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
	"github.com/yaklabco/gomdsite/pkg/runner"
	"github.com/yaklabco/gomdsite/pkg/site"
)

func sampleResult() *site.BuildResult {
	return &site.BuildResult{
		Pages: []site.Page{
			{Dest: filepath.Join("out", "index.html"), Title: "Home", Bytes: 1500, Written: true},
			{Dest: filepath.Join("out", "blog", "post.html"), Title: "Post", Bytes: 2500},
		},
		StaticFiles: 3,
		Stats:       runner.Stats{FilesDiscovered: 2, FilesProcessed: 2},
		Duration:    1234567 * time.Microsecond,
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatSummaryOneLine(sampleResult())
	assert.Equal(t, "Built 2 pages (1 updated, 4.0 kB), copied 3 static files in 1.235s\n", got)
}

func TestFormatSummaryOneLine_Failures(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	res := &site.BuildResult{
		Stats:    runner.Stats{FilesDiscovered: 4, FilesProcessed: 1, FilesErrored: 1, FilesSkipped: 2},
		Duration: 500 * time.Microsecond,
	}

	got := styles.FormatSummaryOneLine(res)
	assert.Equal(t, "Built 1 page (0 updated, 0 B), 1 failure, 2 skipped in 500µs\n", got)

	assert.Equal(t, "Build failed\n", styles.FormatSummaryOneLine(nil))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatSummary(sampleResult())
	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "Pages built:       2")
	assert.Contains(t, got, "Pages updated:     1")
	assert.Contains(t, got, "Static files:      3")
	assert.Contains(t, got, "Output size:       4.0 kB")
	assert.Contains(t, got, "Build succeeded")
	assert.NotContains(t, got, "Pages failed")
}

func TestFormatSummary_Failed(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	res := &site.BuildResult{Stats: runner.Stats{FilesDiscovered: 3, FilesProcessed: 2, FilesErrored: 1}}

	got := styles.FormatSummary(res)
	assert.Contains(t, got, "Pages failed:      1")
	assert.Contains(t, got, "Build failed")
}

func TestFormatPages(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	lines := strings.Split(strings.TrimSuffix(styles.FormatPages(sampleResult(), "out"), "\n"), "\n")
	assert.Equal(t, []string{
		"index.html  Home  1.5 kB",
		"blog/post.html  Post  2.5 kB (unchanged)",
	}, lines)

	assert.Empty(t, styles.FormatPages(nil, "out"))
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatErrors([]error{errors.New("a.md: boom"), nil, errors.New("b.md: bang")})
	assert.Equal(t, "error: a.md: boom\nerror: b.md: bang\n", got)
	assert.Empty(t, styles.FormatErrors(nil))
}
