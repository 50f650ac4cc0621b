package site_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"both placeholders", "<title>{{ Title }}</title>{{ Content }}", false},
		{"default template", site.DefaultPageTemplate, false},
		{"missing title", "<body>{{ Content }}</body>", true},
		{"missing content", "<title>{{ Title }}</title>", true},
		{"wrong spacing", "{{Title}} {{Content}}", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := site.ParseTemplate(tt.source)
			if tt.wantErr {
				require.ErrorIs(t, err, site.ErrTemplatePlaceholder)
				assert.Nil(t, tmpl)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tmpl)
		})
	}
}

func TestTemplate_Execute(t *testing.T) {
	t.Parallel()

	tmpl, err := site.ParseTemplate("<title>{{ Title }}</title><main>{{ Content }}</main>")
	require.NoError(t, err)

	assert.Equal(t,
		"<title>Tolkien & Co</title><main><div><p>hi</p></div></main>",
		tmpl.Execute("Tolkien & Co", "<div><p>hi</p></div>"),
	)

	// Placeholders inside substituted values stay literal.
	assert.Equal(t,
		"<title>{{ Content }}</title><main>{{ Title }}</main>",
		tmpl.Execute("{{ Content }}", "{{ Title }}"),
	)
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	_, err := site.LoadTemplate(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	path := filepath.Join(t.TempDir(), "template.html")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("no placeholders"), 0))
	_, err = site.LoadTemplate(context.Background(), path)
	require.ErrorIs(t, err, site.ErrTemplatePlaceholder)
	assert.Contains(t, err.Error(), path)
}

func TestRewriteBasePath(t *testing.T) {
	t.Parallel()

	const page = `<a href="/blog/">blog</a><img src="/img/a.png"><a href="https://x.org/">x</a><a href="rel">r</a>`

	tests := []struct {
		name string
		base string
		want string
	}{
		{"root", "/", page},
		{"empty", "", page},
		{
			"prefix",
			"/site/",
			`<a href="/site/blog/">blog</a><img src="/site/img/a.png"><a href="https://x.org/">x</a><a href="rel">r</a>`,
		},
		{
			"prefix without slash",
			"/site",
			`<a href="/site/blog/">blog</a><img src="/site/img/a.png"><a href="https://x.org/">x</a><a href="rel">r</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, site.RewriteBasePath(page, tt.base))
		})
	}
}

func TestDestPath(t *testing.T) {
	t.Parallel()

	content := filepath.FromSlash("/srv/content")
	out := filepath.FromSlash("/srv/docs")

	got, err := site.DestPath(content, out, filepath.FromSlash("/srv/content/index.md"))
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/docs/index.html"), got)

	got, err = site.DestPath(content, out, filepath.FromSlash("/srv/content/blog/tom/post.markdown"))
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/docs/blog/tom/post.html"), got)

	_, err = site.DestPath(content, out, filepath.FromSlash("/srv/other/x.md"))
	assert.Error(t, err)
}
