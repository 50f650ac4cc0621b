// Package cli provides the Cobra command structure for gomdsite.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/logging"
)

const colorAuto = "auto"

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type globalFlags struct {
	debug      bool
	quiet      bool
	configPath string
	color      string
}

// NewRootCommand creates the root gomdsite command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomdsite",
		Short: "A small static site generator for Markdown",
		Long: `gomdsite turns a directory of Markdown files into a static HTML site.

Each source page is compiled to HTML, dropped into a page template in place
of {{ Content }} with its first "# " heading as {{ Title }}, and written to
the output directory under the same relative path. Static assets are copied
alongside.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.color {
			case colorAuto, "always", "never":
			default:
				return fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrUsage, flags.color)
			}

			level := "info"
			switch {
			case flags.debug:
				level = "debug"
			case flags.quiet:
				level = "error"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", colorAuto,
		"colorize output: auto, always, never")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	rootCmd.AddCommand(newBuildCommand(flags))
	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newTitleCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
