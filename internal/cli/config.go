package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/internal/ui/pretty"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigEnvCommand(global))

	return cmd
}

func newConfigShowCommand(global *globalFlags) *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration build would use",
		Long: `Print the configuration after merging every config file and GOMDSITE_*
variable, with paths made absolute. Every validation error is listed.

With --write the result is saved to a file instead, which pins the current
settings for a CI job.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			loaded, err := configloader.Load(ctx, configloader.LoadOptions{
				WorkingDir:   workDir,
				ExplicitPath: global.configPath,
			})
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			for _, warning := range loaded.Warnings {
				logger.Warn(warning)
			}

			if writePath != "" {
				if err := configloader.WriteConfig(ctx, loaded.Config, writePath); err != nil {
					return err
				}
				logger.Info("wrote configuration", logging.FieldPath, writePath)
				return nil
			}

			content, err := loaded.Config.ToYAML()
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, file := range loaded.LoadedFrom {
				fmt.Fprintf(out, "# from %s\n", file)
			}
			_, err = out.Write(content)
			return err
		},
	}

	cmd.Flags().StringVarP(&writePath, "write", "w", "", "save the configuration to this file")

	return cmd
}

func newConfigEnvCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, out))

			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			slices.Sort(names)

			for _, name := range names {
				pad := strings.Repeat(" ", width-len(name))
				fmt.Fprintf(out, "%s%s  %s\n", styles.Flag.Render(name), pad, vars[name])
			}
			return nil
		},
	}
}
