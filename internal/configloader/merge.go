package configloader

import "github.com/yaklabco/gomdsite/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - Strings and ints: override wins when non-zero
//   - Booleans: override wins only when true, so a file cannot unset a flag
//   - Slices: override replaces base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	mergeString(&result.ContentDir, override.ContentDir)
	mergeString(&result.StaticDir, override.StaticDir)
	mergeString(&result.OutputDir, override.OutputDir)
	mergeString(&result.Template, override.Template)
	mergeString(&result.BasePath, override.BasePath)

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.FollowSymlinks = result.FollowSymlinks || override.FollowSymlinks
	result.KeepOutput = result.KeepOutput || override.KeepOutput
	result.ContinueOnError = result.ContinueOnError || override.ContinueOnError
	result.Render.CodeLanguageClass = result.Render.CodeLanguageClass || override.Render.CodeLanguageClass
	result.Render.DetectCodeLanguage = result.Render.DetectCodeLanguage || override.Render.DetectCodeLanguage

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
