package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// ErrConfigExists is returned by init when the configuration file exists and
// overwriting was neither forced nor confirmed.
var ErrConfigExists = errors.New("configuration file already exists")

const starterPage = `# Welcome

This site was generated by **gomdsite**. Edit ` + "`content/index.md`" + ` and run
` + "`gomdsite build`" + ` again.

- pages live in ` + "`content/`" + `
- assets in ` + "`static/`" + ` are copied as-is
`

const starterStylesheet = `body {
  max-width: 46rem;
  margin: 2rem auto;
  padding: 0 1rem;
  font-family: system-ui, sans-serif;
  line-height: 1.6;
}

pre {
  overflow-x: auto;
  padding: 0.75rem;
  background: #f4f4f4;
}

blockquote {
  margin-left: 0;
  padding-left: 1rem;
  border-left: 3px solid #ccc;
}
`

type initFlags struct {
	force      bool
	configOnly bool
}

type scaffoldFile struct {
	path    string
	content []byte
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a new site",
		Long: `Create .gomdsite.yml, a page template, a starter page and a stylesheet in
DIR (default: the current directory).

Existing pages, templates and assets are never replaced unless --force is
given. An existing configuration file is replaced only with --force or after
confirmation at a terminal.`,
		Example: `  gomdsite init
  gomdsite init my-site
  gomdsite init --config-only --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, flags, dir)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&flags.configOnly, "config-only", false, "only write .gomdsite.yml")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags, dir string) error {
	ctx := cmd.Context()
	logger := logging.NewInteractive(cmd.OutOrStdout())

	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	configPath := filepath.Join(root, configloader.ProjectConfigFiles[0])
	if err := confirmConfigOverwrite(cmd, flags, configPath, logger); err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, configPath, config.GenerateTemplate(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Info("created configuration file", logging.FieldPath, relTo(root, configPath))

	if flags.configOnly {
		return nil
	}

	files := []scaffoldFile{
		{config.DefaultTemplate, []byte(site.DefaultPageTemplate)},
		{filepath.Join(config.DefaultContentDir, "index.md"), []byte(starterPage)},
		{filepath.Join(config.DefaultStaticDir, "index.css"), []byte(starterStylesheet)},
	}
	for _, f := range files {
		if err := writeScaffold(ctx, root, f, flags.force, logger); err != nil {
			return err
		}
	}

	logger.Info("run 'gomdsite build' to generate the site")
	return nil
}

func confirmConfigOverwrite(cmd *cobra.Command, flags *initFlags, path string, logger *log.Logger) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // Nothing to overwrite.
	}
	if flags.force {
		logger.Warn("overwriting existing file", logging.FieldPath, path)
		return nil
	}

	in, _ := cmd.InOrStdin().(*os.File)
	ok, err := configloader.Confirm(in, cmd.OutOrStdout(), fmt.Sprintf("%s exists. Overwrite?", path))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s; use --force to overwrite", ErrConfigExists, path)
	}
	return nil
}

func writeScaffold(ctx context.Context, root string, f scaffoldFile, force bool, logger *log.Logger) error {
	path := filepath.Join(root, f.path)
	if _, err := os.Stat(path); err == nil && !force {
		logger.Info("kept existing file", logging.FieldPath, f.path)
		return nil
	}
	if err := fsutil.WriteAtomic(ctx, path, f.content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	logger.Info("created", logging.FieldPath, f.path)
	return nil
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
