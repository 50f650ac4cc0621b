package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdsite/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}`

// applyHelp installs styled help and usage output on cmd and its children.
// Color is decided per invocation from the --color flag and the writer.
func applyHelp(cmd *cobra.Command) {
	render := func(c *cobra.Command, name, text string) error {
		mode, err := c.Flags().GetString("color")
		if err != nil {
			mode = colorAuto
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(mode, c.OutOrStdout()))

		tmpl, err := template.New(name).Funcs(helpFuncs(styles)).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(c.OutOrStdout(), c)
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return render(c, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c, "help", helpTemplate+usageTemplate); err != nil {
			c.PrintErrln(err)
		}
	})
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"command":    styles.Command.Render,
		"heading":    styles.Heading.Render,
		"subcommand": styles.Subcommand.Render,
		"dim":        styles.Dim.Render,
		"flags": func(set *pflag.FlagSet) string {
			return styleFlagUsages(styles, set.FlagUsages())
		},
		"rpad": func(s string, n int) string {
			return s + strings.Repeat(" ", max(0, n-len(s)))
		},
		"trimRight": func(s string) string {
			lines := strings.Split(s, "\n")
			for i, line := range lines {
				lines[i] = strings.TrimRight(line, " \t")
			}
			return strings.Join(lines, "\n")
		},
	}
}

// styleFlagUsages colors the flag names in pflag's usage listing. Each line
// looks like "  -o, --output string   description"; the description starts
// after the first run of two or more spaces following the flag names.
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		indent := line[:len(line)-len(trimmed)]

		names, desc, found := strings.Cut(trimmed, "  ")
		if !found {
			continue
		}

		var b strings.Builder
		for j, token := range strings.Fields(names) {
			if j > 0 {
				b.WriteByte(' ')
			}
			if name, ok := strings.CutSuffix(token, ","); ok && strings.HasPrefix(token, "-") {
				b.WriteString(styles.Flag.Render(name) + ",")
			} else if strings.HasPrefix(token, "-") {
				b.WriteString(styles.Flag.Render(token))
			} else {
				b.WriteString(styles.Dim.Render(token))
			}
		}
		lines[i] = indent + b.String() + "   " + strings.TrimLeft(desc, " ")
	}
	return strings.Join(lines, "\n")
}
