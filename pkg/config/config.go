// Package config defines the site configuration. The types are plain data;
// discovery, merging and validation live in internal/configloader.
package config

// Defaults for a site laid out the conventional way.
const (
	DefaultContentDir = "content"
	DefaultStaticDir  = "static"
	DefaultOutputDir  = "docs"
	DefaultTemplate   = "template.html"
	DefaultBasePath   = "/"
)

// RenderConfig controls Markdown compilation.
type RenderConfig struct {
	// CodeLanguageClass adds class="language-<lang>" to fenced code.
	CodeLanguageClass bool `mapstructure:"code_language_class" yaml:"code_language_class"`

	// DetectCodeLanguage guesses the language of fences without an info
	// string.
	DetectCodeLanguage bool `mapstructure:"detect_code_language" yaml:"detect_code_language"`
}

// Config is the root configuration structure for gomdsite.
type Config struct {
	// ContentDir holds the Markdown sources.
	ContentDir string `mapstructure:"content_dir" yaml:"content_dir"`

	// StaticDir is copied verbatim into OutputDir before pages are written.
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`

	// OutputDir receives the generated site.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Template is the HTML page template containing the {{ Title }} and
	// {{ Content }} placeholders.
	Template string `mapstructure:"template" yaml:"template"`

	// BasePath replaces the leading "/" of root-relative href and src
	// attributes, for sites served below a path prefix.
	BasePath string `mapstructure:"base_path" yaml:"base_path"`

	// Extensions are the source file extensions. Empty means .md and
	// .markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns, relative to ContentDir, to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// FollowSymlinks descends into symlinked content directories.
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// KeepOutput skips clearing OutputDir before a build.
	KeepOutput bool `mapstructure:"keep_output" yaml:"keep_output"`

	// ContinueOnError renders every page even when some fail; the build
	// still reports failure at the end.
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error"`

	// Jobs is the number of pages rendered in parallel. 0 means GOMAXPROCS.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Render controls Markdown compilation.
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// NewConfig returns a Config with the default layout.
func NewConfig() *Config {
	return &Config{
		ContentDir: DefaultContentDir,
		StaticDir:  DefaultStaticDir,
		OutputDir:  DefaultOutputDir,
		Template:   DefaultTemplate,
		BasePath:   DefaultBasePath,
	}
}
