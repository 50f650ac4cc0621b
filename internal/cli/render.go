package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/inline"
	"github.com/yaklabco/gomdsite/pkg/render"
	"github.com/yaklabco/gomdsite/pkg/site"
)

//nolint:gochecknoglobals // Read-only lookup table.
var renderErrors = []error{
	render.ErrInvalidHeading,
	render.ErrInvalidCodeBlock,
	render.ErrInvalidQuoteBlock,
	render.ErrInvalidListItem,
	render.ErrInvalidBlockKind,
	render.ErrNoTitleFound,
	inline.ErrUnterminatedDelimiter,
	inline.ErrUnknownSpanKind,
}

func isRenderError(err error) bool {
	for _, target := range renderErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// readSource reads the named file, or stdin when name is "-".
func readSource(ctx context.Context, cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := fsutil.ReadFile(ctx, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type renderFlags struct {
	page               bool
	template           string
	basePath           string
	codeLanguageClass  bool
	detectCodeLanguage bool
}

func newRenderCommand(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Compile one Markdown file to HTML",
		Long: `Compile a Markdown file, or stdin when FILE is "-", and print the HTML.

By default only the compiled <div> is printed. With --page the result is
wrapped in the page template exactly as build would write it; the template
comes from --template, then the project configuration, then the built-in
default.`,
		Example: `  gomdsite render content/index.md
  echo "# Hi" | gomdsite render - --page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().BoolVarP(&flags.page, "page", "p", false, "wrap the HTML in the page template")
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "page template path (implies --page)")
	cmd.Flags().StringVar(&flags.basePath, "base-path", "", "prefix for root-relative links (with --page)")
	cmd.Flags().BoolVar(&flags.codeLanguageClass, "code-language-class", false,
		`add class="language-<lang>" to fenced code`)
	cmd.Flags().BoolVar(&flags.detectCodeLanguage, "detect-code-language", false,
		"guess the language of unlabeled fenced code")

	return cmd
}

func runRender(cmd *cobra.Command, global *globalFlags, flags *renderFlags, name string) error {
	ctx := cmd.Context()
	markdown, err := readSource(ctx, cmd, name)
	if err != nil {
		return err
	}

	compiler := render.New(render.Options{
		CodeLanguageClass:  flags.codeLanguageClass,
		DetectCodeLanguage: flags.detectCodeLanguage,
	})

	if !flags.page && flags.template == "" {
		html, err := compiler.HTML(markdown)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	}

	tmpl, err := pageTemplate(ctx, global, flags.template)
	if err != nil {
		return err
	}

	gen := &site.Generator{Compiler: compiler, Template: tmpl, BasePath: flags.basePath}
	page, title, elements, err := gen.Render(markdown)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logging.FromContext(ctx).Debug("rendered page",
		logging.FieldSource, name,
		logging.FieldTitle, title,
		logging.FieldElements, elements,
	)

	fmt.Fprint(cmd.OutOrStdout(), page)
	return nil
}

// pageTemplate picks the template for render --page.
func pageTemplate(ctx context.Context, global *globalFlags, explicit string) (*site.Template, error) {
	if explicit != "" {
		return site.LoadTemplate(ctx, explicit)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	tmpl, err := site.LoadTemplate(ctx, loaded.Config.Template)
	if errors.Is(err, fsutil.ErrNotFound) {
		logging.FromContext(ctx).Debug("using built-in template", logging.FieldTemplate, loaded.Config.Template)
		return site.ParseTemplate(site.DefaultPageTemplate)
	}
	return tmpl, err
}
