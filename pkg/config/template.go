package config

// DefaultTemplateHeader returns the comment header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdsite configuration
# See: https://github.com/yaklabco/gomdsite`
}

// GenerateTemplate returns a commented starter configuration whose active
// settings equal NewConfig.
func GenerateTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Markdown sources. Every .md file below this directory becomes a page.
content_dir: content

# Copied as-is into the output directory (css, images, ...).
static_dir: static

# Generated site. Cleared before every build unless keep_output is set.
output_dir: docs

# Page template with {{ Title }} and {{ Content }} placeholders.
template: template.html

# Prefix for root-relative links, e.g. /my-repo/ for project pages.
base_path: /

# Source extensions (default: .md, .markdown)
# extensions:
#   - .md

# Glob patterns relative to content_dir to skip
# ignore:
#   - "drafts/**"

# follow_symlinks: false
# keep_output: false

# Render every page even if some fail
# continue_on_error: false

# Number of pages rendered in parallel (0 = auto)
# jobs: 0

# render:
#   code_language_class: false
#   detect_code_language: false
`)
}
