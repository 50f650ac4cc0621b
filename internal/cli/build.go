package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/reporter"
	"github.com/yaklabco/gomdsite/pkg/site"
)

type buildFlags struct {
	cfg       config.Config
	listPages bool
	summary   bool
	format    string
	compact   bool
}

const buildLongDescription = `Build the site.

Configuration is read from .gomdsite.yml (searched upward from the current
directory), GOMDSITE_* environment variables and the flags below, in
increasing order of precedence. Run 'gomdsite config env' for the list of
variables and 'gomdsite config show' for the merged result.

The output directory is cleared first unless --keep-output is given. By
default the build stops at the first page that fails to render; with
--continue-on-error every page is attempted and all failures are reported.`

const buildExample = `  gomdsite build
  gomdsite build --base-path /my-repo/
  gomdsite build --content notes --output public --jobs 4
  gomdsite build --continue-on-error --list
  gomdsite build --format json > build.json`

func newBuildCommand(global *globalFlags) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Generate the site",
		Long:    buildLongDescription,
		Example: buildExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, global, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.cfg.ContentDir, "content", "", "directory holding the Markdown sources")
	f.StringVar(&flags.cfg.StaticDir, "static", "", "directory copied verbatim into the output")
	f.StringVarP(&flags.cfg.OutputDir, "output", "o", "", "directory receiving the generated site")
	f.StringVarP(&flags.cfg.Template, "template", "t", "", "page template path")
	f.StringVar(&flags.cfg.BasePath, "base-path", "", "prefix for root-relative links, e.g. /my-repo/")
	f.StringSliceVar(&flags.cfg.Ignore, "ignore", nil, "glob patterns to skip, relative to the content directory")
	f.StringSliceVar(&flags.cfg.Extensions, "ext", nil, "source extensions (default .md,.markdown)")
	f.IntVarP(&flags.cfg.Jobs, "jobs", "j", 0, "pages rendered in parallel (0 = auto)")
	f.BoolVar(&flags.cfg.ContinueOnError, "continue-on-error", false, "build every page even if some fail")
	f.BoolVar(&flags.cfg.KeepOutput, "keep-output", false, "do not clear the output directory")
	f.BoolVar(&flags.cfg.FollowSymlinks, "follow-symlinks", false, "descend into symlinked content directories")
	f.BoolVar(&flags.cfg.Render.CodeLanguageClass, "code-language-class", false,
		`add class="language-<lang>" to fenced code`)
	f.BoolVar(&flags.cfg.Render.DetectCodeLanguage, "detect-code-language", false,
		"guess the language of unlabeled fenced code")
	f.BoolVarP(&flags.listPages, "list", "l", false, "list every generated page")
	f.BoolVar(&flags.summary, "summary", false, "print a summary block instead of a single line (same as --format summary)")
	f.StringVarP(&flags.format, "format", "f", "text", "report format: text, summary, json")
	f.BoolVar(&flags.compact, "compact", false, "minified JSON report")

	return cmd
}

func runBuild(cmd *cobra.Command, global *globalFlags, flags *buildFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.summary && format == reporter.FormatText {
		format = reporter.FormatSummary
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLIConfig:    &flags.cfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}

	cfg := loaded.Config
	logger.Debug("building site",
		logging.FieldContentDir, cfg.ContentDir,
		logging.FieldOutputDir, cfg.OutputDir,
		logging.FieldTemplate, cfg.Template,
		logging.FieldBasePath, cfg.BasePath,
		logging.FieldJobs, cfg.Jobs,
	)

	result, buildErr := site.Build(ctx, site.OptionsFromConfig(cfg))

	if result != nil {
		rep, err := reporter.New(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			ErrorWriter: cmd.ErrOrStderr(),
			Format:      format,
			Color:       global.color,
			ListPages:   flags.listPages,
			Quiet:       global.quiet,
			Compact:     flags.compact,
			OutputDir:   cfg.OutputDir,
		})
		if err != nil {
			return fmt.Errorf("create reporter: %w", err)
		}
		if err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
	}

	switch {
	case buildErr == nil:
		return nil
	case result != nil && len(result.Failures) > 0:
		// Each failure has been reported already.
		return fmt.Errorf("%w: %d of %d", site.ErrPagesFailed,
			len(result.Failures), result.Stats.FilesDiscovered)
	default:
		return fmt.Errorf("build site: %w", buildErr)
	}
}
