package site

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/render"
	"github.com/yaklabco/gomdsite/pkg/runner"
)

// Sentinel errors for Build.
var (
	// ErrPagesFailed is returned when one or more pages could not be built.
	ErrPagesFailed = errors.New("pages failed to build")

	// ErrOutputOverlap is returned when clearing the output directory would
	// delete sources or assets.
	ErrOutputOverlap = errors.New("output directory contains sources")
)

// BuildOptions controls a site build.
type BuildOptions struct {
	ContentDir   string
	StaticDir    string
	OutputDir    string
	TemplatePath string
	BasePath     string

	Extensions     []string
	Ignore         []string
	FollowSymlinks bool

	// KeepOutput leaves existing files in OutputDir.
	KeepOutput bool

	// ContinueOnError builds every page and reports all failures at the
	// end instead of stopping at the first.
	ContinueOnError bool

	// Jobs caps parallel page rendering. 0 means GOMAXPROCS.
	Jobs int

	Render render.Options
}

// OptionsFromConfig converts a resolved configuration into build options.
func OptionsFromConfig(cfg *config.Config) BuildOptions {
	return BuildOptions{
		ContentDir:      cfg.ContentDir,
		StaticDir:       cfg.StaticDir,
		OutputDir:       cfg.OutputDir,
		TemplatePath:    cfg.Template,
		BasePath:        cfg.BasePath,
		Extensions:      cfg.Extensions,
		Ignore:          cfg.Ignore,
		FollowSymlinks:  cfg.FollowSymlinks,
		KeepOutput:      cfg.KeepOutput,
		ContinueOnError: cfg.ContinueOnError,
		Jobs:            cfg.Jobs,
		Render: render.Options{
			CodeLanguageClass:  cfg.Render.CodeLanguageClass,
			DetectCodeLanguage: cfg.Render.DetectCodeLanguage,
		},
	}
}

// BuildResult summarizes a build.
type BuildResult struct {
	// Pages lists the generated pages in source order.
	Pages []Page

	// Failures holds one error per page that could not be built, prefixed
	// with its source path.
	Failures []error

	// StaticFiles is the number of assets copied.
	StaticFiles int

	// Stats are the page runner statistics.
	Stats runner.Stats

	// Duration is the wall time of the build.
	Duration time.Duration
}

// TotalBytes is the combined size of all generated pages.
func (r *BuildResult) TotalBytes() int {
	total := 0
	for _, p := range r.Pages {
		total += p.Bytes
	}
	return total
}

// Written counts pages whose content changed on disk.
func (r *BuildResult) Written() int {
	n := 0
	for _, p := range r.Pages {
		if p.Written {
			n++
		}
	}
	return n
}

// Build generates the site described by opts. The output directory is reset,
// static assets are copied, and every Markdown source is rendered through the
// template. The returned result is non-nil whenever pages were attempted,
// including on error.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	tmpl, err := LoadTemplate(ctx, opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	if !opts.KeepOutput {
		if err := checkOverlap(opts); err != nil {
			return nil, err
		}
		if err := fsutil.ResetDir(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("reset output: %w", err)
		}
	}

	result := &BuildResult{}

	if opts.StaticDir != "" {
		result.StaticFiles, err = fsutil.CopyDir(ctx, opts.StaticDir, opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("copy static files: %w", err)
		}
		logger.Debug("static files copied", logging.FieldStaticDir, opts.StaticDir, logging.FieldStaticFiles, result.StaticFiles)
	}

	sources, err := runner.Discover(ctx, runner.Options{
		WorkingDir:     opts.ContentDir,
		Extensions:     opts.Extensions,
		Ignore:         opts.Ignore,
		FollowSymlinks: opts.FollowSymlinks,
	})
	if err != nil {
		return nil, fmt.Errorf("discover content: %w", err)
	}

	contentDir, err := filepath.Abs(opts.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("resolve content directory: %w", err)
	}

	gen := &Generator{
		Compiler: render.New(opts.Render),
		Template: tmpl,
		BasePath: opts.BasePath,
	}

	pages := runner.New(func(ctx context.Context, src string) (Page, error) {
		dest, err := DestPath(contentDir, opts.OutputDir, src)
		if err != nil {
			return Page{}, err
		}
		return gen.GeneratePage(ctx, src, dest)
	})
	pages.Jobs = opts.Jobs
	pages.StopOnError = !opts.ContinueOnError

	run, runErr := pages.Run(ctx, sources)
	result.Pages = run.Values()
	for _, o := range run.Outcomes {
		if o.Err != nil {
			result.Failures = append(result.Failures, fmt.Errorf("%s: %w", o.Path, o.Err))
		}
	}
	result.Stats = run.Stats
	result.Duration = time.Since(start)

	if runErr != nil {
		return result, runErr
	}
	if err := run.Err(); err != nil {
		return result, fmt.Errorf("%w: %w", ErrPagesFailed, err)
	}

	logger.Debug("site built",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDuration, result.Duration,
	)
	return result, nil
}

func checkOverlap(opts BuildOptions) error {
	out, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	for _, dir := range []string{opts.ContentDir, opts.StaticDir, filepath.Dir(opts.TemplatePath)} {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", dir, err)
		}
		if within(out, abs) {
			return fmt.Errorf("%w: %s is inside %s", ErrOutputOverlap, dir, opts.OutputDir)
		}
	}
	return nil
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
