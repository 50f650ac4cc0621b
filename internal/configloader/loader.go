// Package configloader resolves the gomdsite configuration. It implements
// XDG-compliant discovery, hierarchical merging, environment variable
// overrides and validation.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomdsite/pkg/config"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig contains configuration from CLI flags. Relative paths in it
	// are taken relative to WorkingDir.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration with absolute paths.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Root is the directory relative paths were resolved against: the
	// directory of the project or explicit config file, else WorkingDir.
	Root string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMDSITE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomdsite.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomdsite/config.yaml)
//  6. System config (/etc/gomdsite/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths, Root: workDir}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
		root bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig, false},
		{"user", paths.User, opts.IgnoreUserConfig, false},
		{"project", paths.Project, opts.IgnoreProjectConfig, true},
		{"explicit", paths.Explicit, false, true},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		if err := ValidateWithFile(cfg, layer.path).Err(); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		if layer.root {
			result.Root, err = filepath.Abs(filepath.Dir(layer.path))
			if err != nil {
				return nil, fmt.Errorf("resolve config directory: %w", err)
			}
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	resolvePaths(cfg, result.Root)

	if opts.CLIConfig != nil {
		cli := opts.CLIConfig.Clone()
		resolvePaths(cli, workDir)
		cfg = merge(cfg, cli)
	}

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	if validation.HasWarnings() {
		for _, w := range validation.Warnings {
			result.Warnings = append(result.Warnings, w.Error())
		}
	}
	if !fileExists(cfg.Template) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("template %s not found; run 'gomdsite init' to create one", cfg.Template))
	}

	result.Config = cfg
	return result, nil
}

// resolvePaths makes the directory and template settings of cfg absolute
// relative to root. Empty values stay empty.
func resolvePaths(cfg *config.Config, root string) {
	for _, p := range []*string{&cfg.ContentDir, &cfg.StaticDir, &cfg.OutputDir, &cfg.Template} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(root, *p)
		}
	}
}

func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Confirm asks a yes/no question on out and reads the answer from in. An
// empty answer means no. When in is not a terminal the question is not
// asked and the answer is no.
func Confirm(in *os.File, out io.Writer, question string) (bool, error) {
	if !isInteractive(in) {
		return false, nil
	}
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func isInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// WriteConfig writes cfg as YAML with the standard header.
func WriteConfig(ctx context.Context, cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
