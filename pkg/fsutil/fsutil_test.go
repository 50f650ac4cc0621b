package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.md")
		require.NoError(t, os.WriteFile(path, []byte("# Hi"), 0o644))

		got, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Hi", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "anypath")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResetDir(t *testing.T) {
	t.Parallel()

	t.Run("clears existing tree", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "docs")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "old"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "old", "stale.html"), []byte("x"), 0o644))

		require.NoError(t, fsutil.ResetDir(dir))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b")
		require.NoError(t, fsutil.ResetDir(dir))

		stat, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, stat.IsDir())
	})

	for _, path := range []string{"", ".", "/", "./"} {
		t.Run("refuses "+path, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, fsutil.ResetDir(path), fsutil.ErrUnsafePath)
		})
	}
}

func TestCopyDir(t *testing.T) {
	t.Parallel()

	t.Run("copies nested files", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		dst := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.MkdirAll(filepath.Join(src, "images"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, "index.css"), []byte("body{}"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(src, "images", "logo.png"), []byte{0x89, 'P'}, 0o600))

		n, err := fsutil.CopyDir(context.Background(), src, dst)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		css, err := os.ReadFile(filepath.Join(dst, "index.css"))
		require.NoError(t, err)
		assert.Equal(t, "body{}", string(css))

		stat, err := os.Stat(filepath.Join(dst, "images", "logo.png"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("missing source copies nothing", func(t *testing.T) {
		t.Parallel()

		n, err := fsutil.CopyDir(context.Background(), filepath.Join(t.TempDir(), "static"), t.TempDir())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("source is a file", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

		_, err := fsutil.CopyDir(context.Background(), src, t.TempDir())
		assert.True(t, errors.Is(err, fsutil.ErrNotDirectory))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.CopyDir(ctx, src, t.TempDir())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
