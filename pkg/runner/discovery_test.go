package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/runner"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# "+f), 0o644))
	}
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"index.md",
		"blog/glorfindel/index.md",
		"blog/tom/index.MARKDOWN",
		"contact/index.md",
		"static/style.css",
		"notes.txt",
		".hidden/secret.md",
		".draft.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"blog/glorfindel/index.md",
		"blog/tom/index.MARKDOWN",
		"contact/index.md",
		"index.md",
	}, rel(t, dir, files))
}

func TestDiscover_SingleFileAndDuplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "sub/b.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"a.md", ".", "sub"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "sub/b.md"}, rel(t, dir, files))
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "index.md", "drafts/wip.md", "blog/drafts/old.md", "blog/post.md", "README.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Ignore:     []string{"**/drafts/**", "README.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"blog/post.md", "index.md"}, rel(t, dir, files))
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.mdx")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".mdx"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.mdx"}, rel(t, dir, files))
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, "content/index.md")
	writeTree(t, outside, "shared.md")

	if err := os.Symlink(outside, filepath.Join(dir, "content", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	content := filepath.Join(dir, "content")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: content})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: content, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"index.md", "linked/shared.md"}, rel(t, content, files))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: t.TempDir(), Paths: []string{"missing"}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"index.md", "*.md", true},
		{"blog/post.md", "*.md", true},
		{"blog/post.md", "blog/*.md", true},
		{"blog/2024/post.md", "blog/*.md", false},
		{"blog/2024/post.md", "blog/**", true},
		{"blog", "blog/**", true},
		{"blog/2024/post.md", "**/post.md", true},
		{"post.md", "**/post.md", true},
		{"a/drafts/b/c.md", "**/drafts/**", true},
		{"a/draftsx/c.md", "**/drafts/**", false},
		{"blog/x/y/z.md", "blog/**/z.md", true},
		{"docs/z.md", "blog/**/z.md", false},
		{"a.md", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"~"+tt.pattern, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, runner.MatchGlob(tt.name, tt.pattern))
		})
	}
}
