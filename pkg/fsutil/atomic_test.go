package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "blog", "post", "index.html")
		content := []byte("<h1>hi</h1>")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.html")
		if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("applies mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "secret.txt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != 0o600 {
			t.Errorf("mode = %o, want %o", got, 0o600)
		}
	})

	t.Run("uses default mode when zero", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := fsutil.WriteAtomic(context.Background(), path, nil, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", got, fsutil.DefaultFileMode)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a.html"), []byte("a"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file should not exist, stat error = %v", err)
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.html")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0)
	if err != nil || !written {
		t.Fatalf("first write = (%v, %v), want (true, nil)", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v1"), 0)
	if err != nil || written {
		t.Fatalf("unchanged write = (%v, %v), want (false, nil)", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("v2"), 0)
	if err != nil || !written {
		t.Fatalf("changed write = (%v, %v), want (true, nil)", written, err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "v2" {
		t.Errorf("content = %q, want %q", got, "v2")
	}
}
