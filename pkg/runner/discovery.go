package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover returns the absolute paths of every Markdown file reachable from
// opts.Paths, sorted and without duplicates. Hidden files and directories
// are skipped, as is anything matching opts.Ignore.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	d := discoverer{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exts:    opts.extensions(),
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.wanted(abs) {
				d.add(abs)
			}
			continue
		}
		if err := d.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx     context.Context //nolint:containedctx // Scoped to a single Discover call.
	workDir string
	opts    Options
	exts    []string
	seen    map[string]struct{}
	files   []string
}

func (d *discoverer) add(file string) {
	if _, ok := d.seen[file]; ok {
		return
	}
	d.seen[file] = struct{}{}
	d.files = append(d.files, file)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")
		switch {
		case entry.IsDir():
			if hidden || d.ignored(p) {
				return filepath.SkipDir
			}
			return nil
		case hidden:
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return d.symlink(p)
		}

		if d.wanted(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink resolves a link found while walking. Broken links are skipped.
func (d *discoverer) symlink(p string) error {
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks || d.ignored(p) {
			return nil
		}
		// Report files under the link, not under its target.
		before := len(d.files)
		if err := d.walk(target); err != nil {
			return err
		}
		for i := before; i < len(d.files); i++ {
			if rel, err := filepath.Rel(target, d.files[i]); err == nil {
				d.files[i] = filepath.Join(p, rel)
			}
		}
		return nil
	}
	if d.wanted(p) {
		d.add(p)
	}
	return nil
}

func (d *discoverer) wanted(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	if !slices.ContainsFunc(d.exts, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	return !d.ignored(file)
}

func (d *discoverer) ignored(p string) bool {
	rel, err := filepath.Rel(d.workDir, p)
	if err != nil {
		rel = p
	}
	for _, pattern := range d.opts.Ignore {
		if MatchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

// MatchGlob reports whether the slash-separated relative path name matches
// pattern. A pattern without a slash is matched against the last element
// only. A "**" segment matches zero or more path elements, so "drafts/**"
// matches the drafts directory itself as well as everything under it.
func MatchGlob(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(name))
		return err == nil && ok
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], name[0])
		if err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
