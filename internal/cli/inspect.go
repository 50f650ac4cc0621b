package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdsite/pkg/block"
	"github.com/yaklabco/gomdsite/pkg/inline"
	"github.com/yaklabco/gomdsite/pkg/render"
)

func newTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "title FILE",
		Short: "Print the title of a Markdown file",
		Long: `Print the text of the first line starting with exactly one "#", which is
the title build would give the page. FILE may be "-" for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := readSource(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			title, err := render.ExtractTitle(markdown)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), title)
			return nil
		},
	}
}

// previewWidth caps the block text shown by inspect.
const previewWidth = 48

func newInspectCommand() *cobra.Command {
	var spans bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show how a Markdown file is split into blocks",
		Long: `Print every block of a Markdown file with its kind. With --spans the
inline spans of each non-code block are listed too, exactly as the renderer
sees them, which helps to find an unterminated delimiter. FILE may be "-" for stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := readSource(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}
			return writeInspection(cmd, markdown, spans)
		},
	}

	cmd.Flags().BoolVarP(&spans, "spans", "s", false, "list inline spans")

	return cmd
}

func writeInspection(cmd *cobra.Command, markdown string, spans bool) error {
	out := cmd.OutOrStdout()

	var failed error
	for i, b := range block.Parse(markdown) {
		fmt.Fprintf(out, "%3d  %-14s %s\n", i+1, b.Kind, preview(b.Text))
		if !spans || b.Kind == block.KindCode {
			continue
		}

		if err := writeSpans(out, b); err != nil {
			fmt.Fprintf(out, "       error: %v\n", err)
			if failed == nil {
				failed = fmt.Errorf("block %d (%s): %w", i+1, b.Kind, err)
			}
		}
	}
	return failed
}

// writeSpans lists the spans of b as the compiler tokenizes them, with the
// block markers stripped. List spans are prefixed with their item number.
func writeSpans(out io.Writer, b block.Block) error {
	texts, err := render.InlineText(b)
	if err != nil {
		return err
	}
	list := b.Kind == block.KindUnorderedList || b.Kind == block.KindOrderedList

	for i, text := range texts {
		tokens, err := inline.Tokenize(text)
		if err != nil {
			return err
		}
		for _, span := range tokens {
			if list {
				fmt.Fprintf(out, "       [%d] %s\n", i+1, span)
			} else {
				fmt.Fprintf(out, "       %s\n", span)
			}
		}
	}
	return nil
}

func preview(text string) string {
	line, _, multi := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth-1]) + "…"
	}
	if multi {
		return line + " …"
	}
	return line
}
