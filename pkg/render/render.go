// Package render compiles Markdown documents into HTML node trees.
//
// A document is split into blocks by package block, each block is compiled
// by a per-kind rule into one subtree, and the subtrees are wrapped in a
// single div. Any failure aborts the whole document; there is no partial
// output.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/block"
	"github.com/yaklabco/gomdsite/pkg/htmlnode"
	"github.com/yaklabco/gomdsite/pkg/inline"
	"github.com/yaklabco/gomdsite/pkg/langdetect"
)

// Sentinel errors for malformed blocks.
var (
	ErrInvalidHeading    = errors.New("invalid heading")
	ErrInvalidCodeBlock  = errors.New("invalid code block")
	ErrInvalidQuoteBlock = errors.New("invalid quote block")
	ErrInvalidListItem   = errors.New("invalid list item")
	ErrInvalidBlockKind  = errors.New("invalid block kind")
)

// QuoteLineSeparator joins the lines of a quote block.
const QuoteLineSeparator = "<br>"

// Options tunes the compiler. The zero value produces plain output with no
// extra attributes.
type Options struct {
	// CodeLanguageClass adds class="language-<lang>" to code blocks whose
	// language is known.
	CodeLanguageClass bool

	// DetectCodeLanguage guesses the language of fenced code without an
	// info string. Only used together with CodeLanguageClass.
	DetectCodeLanguage bool
}

// Compiler turns Markdown into HTML node trees. It holds no mutable state
// and is safe for concurrent use.
type Compiler struct {
	opts Options
}

// New returns a compiler configured with opts.
func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// CompileDocument compiles markdown with the default options.
func CompileDocument(markdown string) (*htmlnode.Parent, error) {
	return New(Options{}).Document(markdown)
}

// RenderHTML compiles markdown with the default options and serializes the
// result.
func RenderHTML(markdown string) (string, error) {
	return New(Options{}).HTML(markdown)
}

// Document compiles every block of markdown and wraps the results in a div,
// in block order.
func (c *Compiler) Document(markdown string) (*htmlnode.Parent, error) {
	blocks := block.Parse(markdown)

	children := make([]htmlnode.Node, 0, len(blocks))
	for i, b := range blocks {
		node, err := c.Block(b)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i+1, b.Kind, err)
		}
		children = append(children, node)
	}

	return htmlnode.NewParent("div", children), nil
}

// HTML compiles markdown and serializes the tree.
func (c *Compiler) HTML(markdown string) (string, error) {
	doc, err := c.Document(markdown)
	if err != nil {
		return "", err
	}
	return doc.HTML()
}

// Block compiles a single classified block into its HTML subtree.
func (c *Compiler) Block(b block.Block) (htmlnode.Node, error) {
	if b.Kind == block.KindCode {
		return c.code(b.Text)
	}

	texts, err := InlineText(b)
	if err != nil {
		return nil, err
	}

	switch b.Kind {
	case block.KindParagraph:
		return inlineParent("p", texts[0])
	case block.KindHeading:
		return inlineParent(fmt.Sprintf("h%d", block.HeadingLevel(b.Text)), texts[0])
	case block.KindQuote:
		return inlineParent("blockquote", texts[0])
	case block.KindUnorderedList:
		return list("ul", texts)
	default:
		return list("ol", texts)
	}
}

// InlineText strips the block syntax of b and returns the text the inline
// tokenizer sees: one entry per list item, a single entry for paragraphs,
// headings and quotes, and nil for code blocks, which get no inline
// formatting.
func InlineText(b block.Block) ([]string, error) {
	switch b.Kind {
	case block.KindParagraph:
		return []string{strings.ReplaceAll(b.Text, "\n", " ")}, nil
	case block.KindHeading:
		text, err := headingText(b.Text)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	case block.KindCode:
		return nil, nil
	case block.KindQuote:
		text, err := quoteText(b.Text)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	case block.KindUnorderedList:
		return listItems(b.Text, func(int) string { return block.UnorderedListMarker })
	case block.KindOrderedList:
		return listItems(b.Text, func(i int) string { return block.OrderedListMarker(i + 1) })
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBlockKind, b.Kind)
	}
}

func inlineParent(tag, text string) (htmlnode.Node, error) {
	children, err := inline.TextToHTMLNodes(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(tag, children), nil
}

func headingText(text string) (string, error) {
	level := block.HeadingLevel(text)
	if level < 1 || level > block.MaxHeadingLevel {
		return "", fmt.Errorf("%w: level %d", ErrInvalidHeading, level)
	}
	if level+1 >= len(text) {
		return "", fmt.Errorf("%w: no text after marker in %q", ErrInvalidHeading, text)
	}
	return text[level+1:], nil
}

// code keeps the interior verbatim: no inline formatting is applied.
func (c *Compiler) code(text string) (htmlnode.Node, error) {
	if !strings.HasPrefix(text, block.CodeFence) || !strings.HasSuffix(text, block.CodeFence) {
		return nil, fmt.Errorf("%w: missing fence", ErrInvalidCodeBlock)
	}
	eol := strings.IndexByte(text, '\n')
	if eol == -1 || eol+1 > len(text)-len(block.CodeFence) {
		return nil, fmt.Errorf("%w: no newline after opening fence", ErrInvalidCodeBlock)
	}

	info := strings.TrimSpace(text[len(block.CodeFence):eol])
	body := text[eol+1 : len(text)-len(block.CodeFence)]

	leaf, err := inline.ToHTMLNode(inline.Plain(body))
	if err != nil {
		return nil, err
	}

	var attrs []htmlnode.Attr
	if lang := c.codeLanguage(info, body); lang != "" {
		attrs = append(attrs, htmlnode.Attr{Key: "class", Value: "language-" + lang})
	}

	return htmlnode.NewParent("pre", []htmlnode.Node{
		htmlnode.NewParent("code", []htmlnode.Node{leaf}, attrs...),
	}), nil
}

func (c *Compiler) codeLanguage(info, body string) string {
	if !c.opts.CodeLanguageClass {
		return ""
	}
	if fields := strings.Fields(info); len(fields) > 0 {
		return fields[0]
	}
	if c.opts.DetectCodeLanguage {
		return langdetect.Detect([]byte(body))
	}
	return ""
}

func quoteText(text string) (string, error) {
	lines := strings.Split(text, "\n")
	stripped := make([]string, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(line, block.QuoteMarker)
		if !ok {
			return "", fmt.Errorf("%w: line %d does not start with %q", ErrInvalidQuoteBlock, i+1, block.QuoteMarker)
		}
		stripped[i] = strings.TrimSpace(rest)
	}
	return strings.Join(stripped, QuoteLineSeparator), nil
}

func listItems(text string, marker func(int) string) ([]string, error) {
	lines := strings.Split(text, "\n")
	items := make([]string, len(lines))
	for i, line := range lines {
		want := marker(i)
		rest, ok := strings.CutPrefix(line, want)
		if !ok {
			return nil, fmt.Errorf("%w: line %d does not start with %q", ErrInvalidListItem, i+1, want)
		}
		items[i] = rest
	}
	return items, nil
}

func list(tag string, texts []string) (htmlnode.Node, error) {
	items := make([]htmlnode.Node, 0, len(texts))
	for i, text := range texts {
		children, err := inline.TextToHTMLNodes(text)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, htmlnode.NewParent("li", children))
	}
	return htmlnode.NewParent(tag, items), nil
}
