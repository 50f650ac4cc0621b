// Package runner finds Markdown sources and processes them on a bounded
// pool of workers, returning outcomes in a deterministic order.
package runner

// Options controls source discovery.
type Options struct {
	// Paths are files or directories to search. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and Ignore patterns. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, that
	// count as Markdown. Empty means DefaultExtensions.
	Extensions []string

	// Ignore holds glob patterns, relative to WorkingDir, for files and
	// directories to skip. A "**" segment matches any number of directories.
	Ignore []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
