package configloader

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "render.code_language_class").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns every error joined in the order they were found, or nil when
// the result is valid. Each joined error is a *ValidationError.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	required := []struct {
		field string
		value string
	}{
		{"content_dir", cfg.ContentDir},
		{"output_dir", cfg.OutputDir},
		{"template", cfg.Template},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			result.fail(r.field, r.value, "must not be empty")
		}
	}

	if cfg.OutputDir != "" {
		out := filepath.Clean(cfg.OutputDir)
		if cfg.ContentDir != "" && out == filepath.Clean(cfg.ContentDir) {
			result.fail("output_dir", cfg.OutputDir, "must differ from content_dir")
		}
		if cfg.StaticDir != "" && out == filepath.Clean(cfg.StaticDir) {
			result.fail("output_dir", cfg.OutputDir, "must differ from static_dir")
		}
	}

	if cfg.BasePath != "" && !strings.HasPrefix(cfg.BasePath, "/") {
		result.fail("base_path", cfg.BasePath, "base path %q must start with /", cfg.BasePath)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateIgnorePatterns(cfg, result)

	if cfg.Render.DetectCodeLanguage && !cfg.Render.CodeLanguageClass {
		result.warn("render.detect_code_language", true,
			"has no effect unless render.code_language_class is enabled")
	}

	return result
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		for segment := range strings.SplitSeq(filepath.ToSlash(pattern), "/") {
			if segment == "**" {
				continue
			}
			if _, err := path.Match(segment, ""); err != nil {
				result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
				break
			}
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors
// and warnings.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
