// Package site turns a directory of Markdown into a static HTML site: each
// source is compiled, placed into a page template and written below the
// output directory, next to a copy of the static assets.
package site

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

// Template placeholders.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrTemplatePlaceholder is returned when a template lacks a placeholder.
var ErrTemplatePlaceholder = errors.New("template placeholder missing")

// DefaultPageTemplate is the page template written by gomdsite init.
const DefaultPageTemplate = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{ Title }}</title>
    <link href="/index.css" rel="stylesheet" />
  </head>
  <body>
    <article>{{ Content }}</article>
  </body>
</html>
`

// Template is a parsed page template.
type Template struct {
	source string
}

// ParseTemplate checks that source contains both placeholders.
func ParseTemplate(source string) (*Template, error) {
	for _, p := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(source, p) {
			return nil, fmt.Errorf("%w: %s", ErrTemplatePlaceholder, p)
		}
	}
	return &Template{source: source}, nil
}

// LoadTemplate reads and parses the template at path.
func LoadTemplate(ctx context.Context, path string) (*Template, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	tmpl, err := ParseTemplate(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tmpl, nil
}

// Execute substitutes title and content in a single pass. Neither value is
// escaped, and placeholders appearing inside the values are left alone.
func (t *Template) Execute(title, content string) string {
	return strings.NewReplacer(
		TitlePlaceholder, title,
		ContentPlaceholder, content,
	).Replace(t.source)
}
