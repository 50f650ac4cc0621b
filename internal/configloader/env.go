package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/config"
)

// EnvVarPrefix is the prefix for all gomdsite environment variables.
const EnvVarPrefix = "GOMDSITE_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	typ         envFieldType
	description string
	set         func(cfg *config.Config, v envValue)
}

// envValue carries a parsed value; only the member matching the mapping's
// type is set.
type envValue struct {
	s    string
	b    bool
	i    int
	list []string
}

// envMappings maps variable names, without the prefix, to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"CONTENT_DIR": {envTypeString, "Directory holding the Markdown sources",
		func(c *config.Config, v envValue) { c.ContentDir = v.s }},
	"STATIC_DIR": {envTypeString, "Directory copied verbatim into the output",
		func(c *config.Config, v envValue) { c.StaticDir = v.s }},
	"OUTPUT_DIR": {envTypeString, "Directory receiving the generated site",
		func(c *config.Config, v envValue) { c.OutputDir = v.s }},
	"TEMPLATE": {envTypeString, "HTML page template path",
		func(c *config.Config, v envValue) { c.Template = v.s }},
	"BASE_PATH": {envTypeString, "Prefix for root-relative links, e.g. /repo/",
		func(c *config.Config, v envValue) { c.BasePath = v.s }},
	"EXTENSIONS": {envTypeSlice, "Comma-separated source extensions",
		func(c *config.Config, v envValue) { c.Extensions = v.list }},
	"IGNORE": {envTypeSlice, "Comma-separated list of ignore patterns",
		func(c *config.Config, v envValue) { c.Ignore = v.list }},
	"JOBS": {envTypeInt, "Number of pages rendered in parallel (0 = auto)",
		func(c *config.Config, v envValue) { c.Jobs = v.i }},
	"FOLLOW_SYMLINKS": {envTypeBool, "Descend into symlinked directories: true or false",
		func(c *config.Config, v envValue) { c.FollowSymlinks = v.b }},
	"KEEP_OUTPUT": {envTypeBool, "Do not clear the output directory: true or false",
		func(c *config.Config, v envValue) { c.KeepOutput = v.b }},
	"CONTINUE_ON_ERROR": {envTypeBool, "Build every page even if some fail: true or false",
		func(c *config.Config, v envValue) { c.ContinueOnError = v.b }},
	"RENDER_CODE_LANGUAGE_CLASS": {envTypeBool, "Add language-* classes to code blocks: true or false",
		func(c *config.Config, v envValue) { c.Render.CodeLanguageClass = v.b }},
	"RENDER_DETECT_CODE_LANGUAGE": {envTypeBool, "Guess the language of unlabeled code: true or false",
		func(c *config.Config, v envValue) { c.Render.DetectCodeLanguage = v.b }},
}

// LoadFromEnv applies GOMDSITE_* environment variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := EnvVarPrefix + suffix
		raw := os.Getenv(envVar)
		if raw == "" {
			continue
		}

		value, err := parseEnvValue(mapping.typ, raw, envVar)
		if err != nil {
			return err
		}
		mapping.set(cfg, value)
	}

	return nil
}

func parseEnvValue(typ envFieldType, raw, envVar string) (envValue, error) {
	switch typ {
	case envTypeString:
		return envValue{s: raw}, nil
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, raw)
		}
		return envValue{b: b}, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid integer for %s: %q", envVar, raw)
		}
		return envValue{i: i}, nil
	case envTypeSlice:
		return envValue{list: parseSliceValue(raw)}, nil
	default:
		return envValue{}, fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated list, trimming each element and
// dropping empty ones.
func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[EnvVarPrefix+suffix] = mapping.description
	}
	return vars
}
