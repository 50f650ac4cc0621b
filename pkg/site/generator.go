package site

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/htmlnode"
	"github.com/yaklabco/gomdsite/pkg/render"
)

// PageExtension is the extension of generated pages.
const PageExtension = ".html"

// Page describes one generated page.
type Page struct {
	// Source is the Markdown file.
	Source string

	// Dest is the written HTML file.
	Dest string

	// Title is the text of the first level-one heading.
	Title string

	// Bytes is the size of the written page.
	Bytes int

	// Elements counts the HTML elements in the compiled body.
	Elements int

	// Written is false when Dest already held identical content.
	Written bool
}

// Generator renders single pages.
type Generator struct {
	Compiler *render.Compiler
	Template *Template
	BasePath string
}

// Render compiles markdown into a complete page without touching the file
// system. It returns the page HTML, the title and the element count.
func (g *Generator) Render(markdown string) (html, title string, elements int, err error) {
	title, err = render.ExtractTitle(markdown)
	if err != nil {
		return "", "", 0, err
	}

	doc, err := g.Compiler.Document(markdown)
	if err != nil {
		return "", "", 0, err
	}
	body, err := doc.HTML()
	if err != nil {
		return "", "", 0, err
	}

	page := RewriteBasePath(g.Template.Execute(title, body), g.BasePath)
	return page, title, htmlnode.CountElements(doc), nil
}

// GeneratePage renders the Markdown file src and writes the page to dest.
func (g *Generator) GeneratePage(ctx context.Context, src, dest string) (Page, error) {
	ctx = logging.WithFields(ctx, logging.FieldSource, src)
	logger := logging.FromContext(ctx)
	logger.Debug("generating page", logging.FieldDest, dest)

	markdown, err := fsutil.ReadFile(ctx, src)
	if err != nil {
		return Page{}, err
	}

	html, title, elements, err := g.Render(string(markdown))
	if err != nil {
		return Page{}, err
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, dest, []byte(html), 0)
	if err != nil {
		return Page{}, err
	}

	logger.Debug("page done", logging.FieldTitle, title, logging.FieldBytes, len(html), logging.FieldElements, elements)

	return Page{
		Source:   src,
		Dest:     dest,
		Title:    title,
		Bytes:    len(html),
		Elements: elements,
		Written:  written,
	}, nil
}

// DestPath maps a source below contentDir to its page below outputDir,
// replacing the extension with .html.
func DestPath(contentDir, outputDir, src string) (string, error) {
	rel, err := filepath.Rel(contentDir, src)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", src, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", src, contentDir)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + PageExtension
	return filepath.Join(outputDir, rel), nil
}
