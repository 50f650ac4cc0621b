package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/internal/cli"
	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/render"
	"github.com/yaklabco/gomdsite/pkg/reporter"
	"github.com/yaklabco/gomdsite/pkg/site"
)

type execResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	assert.Equal(t, "gomdsite", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"build", "render", "title", "inspect", "init", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, sub.Name())
		}
	}
}

func TestBuildCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	build, _, err := cmd.Find([]string{"build"})
	require.NoError(t, err)

	for _, name := range []string{
		"content", "static", "output", "template", "base-path", "ignore", "ext", "jobs",
		"continue-on-error", "keep-output", "follow-symlinks",
		"code-language-class", "detect-code-language", "list", "summary", "format", "compact",
	} {
		assert.NotNil(t, build.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestInitThenBuild(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	res := execute(t, "", "init", root)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "created configuration file")
	for _, name := range []string{".gomdsite.yml", "template.html", "content/index.md", "static/index.css"} {
		assert.FileExists(t, filepath.Join(root, name))
	}

	writeFile(t, filepath.Join(root, "content", "guide", "setup.md"), "# Setup\n\nSee [home](/index.html).")

	res = execute(t, "", "build", "--config", filepath.Join(root, ".gomdsite.yml"),
		"--base-path", "/site/", "--list")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Built 2 pages")
	assert.Contains(t, res.stdout, "copied 1 static file")
	assert.Contains(t, res.stdout, "guide/setup.html  Setup")

	index, err := os.ReadFile(filepath.Join(root, "docs", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Welcome</title>")
	assert.Contains(t, string(index), `href="/site/index.css"`)
	assert.FileExists(t, filepath.Join(root, "docs", "index.css"))

	setup, err := os.ReadFile(filepath.Join(root, "docs", "guide", "setup.html"))
	require.NoError(t, err)
	assert.Contains(t, string(setup), `<a href="/site/index.html">home</a>`)
}

func TestBuild_ContinueOnError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gomdsite.yml"), "jobs: 1\n")
	writeFile(t, filepath.Join(root, "template.html"), site.DefaultPageTemplate)
	writeFile(t, filepath.Join(root, "content", "good.md"), "# Good")
	writeFile(t, filepath.Join(root, "content", "bad.md"), "# Bad\n\n`open code")

	res := execute(t, "", "build", "--config", filepath.Join(root, ".gomdsite.yml"),
		"--continue-on-error", "--summary")
	require.ErrorIs(t, res.err, site.ErrPagesFailed)
	assert.Equal(t, cli.ExitBuildErrors, cli.ExitCode(res.err))
	assert.Contains(t, res.stderr, "error: ")
	assert.Contains(t, res.stderr, "bad.md")
	assert.Contains(t, res.stdout, "Build failed")
	assert.FileExists(t, filepath.Join(root, "docs", "good.html"))
}

func TestBuild_JSONFormat(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gomdsite.yml"), "jobs: 1\n")
	writeFile(t, filepath.Join(root, "template.html"), site.DefaultPageTemplate)
	writeFile(t, filepath.Join(root, "content", "a.md"), "# Alpha")
	writeFile(t, filepath.Join(root, "content", "b.md"), "# Beta")

	res := execute(t, "", "build", "--config", filepath.Join(root, ".gomdsite.yml"),
		"--format", "json", "--compact")
	require.NoError(t, res.err, res.stderr)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Pages, 2)
	assert.Equal(t, "a.html", out.Pages[0].Dest)
	assert.Equal(t, "Beta", out.Pages[1].Title)
	assert.Equal(t, 2, out.Summary.PagesBuilt)
	assert.True(t, out.Summary.Succeeded)
}

func TestBuild_UnknownFormat(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "build", "--format", "xml")
	require.ErrorIs(t, res.err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestBuild_InvalidConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gomdsite.yml"), "base_path: no-slash\n")

	res := execute(t, "", "build", "--config", filepath.Join(root, ".gomdsite.yml"))
	var vErr *configloader.ValidationError
	require.ErrorAs(t, res.err, &vErr)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configPath := filepath.Join(root, ".gomdsite.yml")
	writeFile(t, configPath, "jobs: 3\nbase_path: /docs/\n")

	res := execute(t, "", "config", "show", "--config", configPath)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "# from "+configPath)
	assert.Contains(t, res.stdout, "jobs: 3")
	assert.Contains(t, res.stdout, "content_dir: "+filepath.Join(root, "content"))

	pinned := filepath.Join(root, "pinned.yml")
	res = execute(t, "", "config", "show", "--config", configPath, "--write", pinned)
	require.NoError(t, res.err, res.stderr)
	assert.Empty(t, res.stdout)

	content, err := os.ReadFile(pinned)
	require.NoError(t, err)
	assert.Contains(t, string(content), "base_path: /docs/")

	res = execute(t, "", "config", "show", "--config", pinned)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "jobs: 3")
}

func TestConfigShow_ListsEveryError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configPath := filepath.Join(root, ".gomdsite.yml")
	writeFile(t, configPath, "base_path: nope\njobs: -1\n")

	res := execute(t, "", "config", "show", "--config", configPath)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), configPath+": base_path: ")
	assert.Contains(t, res.err.Error(), configPath+": jobs: ")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
}

func TestConfigEnv(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "config", "env")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	assert.Len(t, lines, len(configloader.ListEnvVars()))
	assert.True(t, strings.HasPrefix(lines[0], "GOMDSITE_BASE_PATH "), lines[0])
	assert.Contains(t, res.stdout, "GOMDSITE_JOBS")
}

func TestRender(t *testing.T) {
	t.Parallel()

	res := execute(t, "# Hi\n\nsome **bold** text", "render", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "<div><h1>Hi</h1><p>some <b>bold</b> text</p></div>\n", res.stdout)

	res = execute(t, "```go\nx := 1\n```", "render", "-", "--code-language-class")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `class="language-go"`)
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	res := execute(t, "oops _open", "render", "-")
	assert.Equal(t, cli.ExitBuildErrors, cli.ExitCode(res.err))

	res = execute(t, "", "render", filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, res.err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(res.err))
}

func TestRender_Page(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmpl := filepath.Join(dir, "t.html")
	writeFile(t, tmpl, `<title>{{ Title }}</title><link href="/a.css">{{ Content }}`)

	res := execute(t, "# Page\n\n![x](/img.png)", "render", "-", "--template", tmpl, "--base-path", "/r/")
	require.NoError(t, res.err)
	assert.Equal(t,
		`<title>Page</title><link href="/r/a.css"><div><h1>Page</h1><p><img src="/r/img.png" alt="x"></img></p></div>`,
		res.stdout)

	writeFile(t, tmpl, "no placeholders")
	res = execute(t, "# Page", "render", "-", "--template", tmpl)
	require.ErrorIs(t, res.err, site.ErrTemplatePlaceholder)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	res := execute(t, "intro\n## Sub\n#  The Title \n", "title", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "The Title\n", res.stdout)

	res = execute(t, "no heading", "title", "-")
	require.ErrorIs(t, res.err, render.ErrNoTitleFound)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	res := execute(t, "# Head\n\n- [a](/b)\n- *x*\n\n> one\n> two\n\n```\nraw\n```", "inspect", "-", "--spans")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "heading")
	assert.Equal(t, `       plain("Head")`, lines[1])
	assert.Contains(t, lines[2], "unordered_list")
	assert.Equal(t, `       [1] link("a", "/b")`, lines[3])
	assert.Equal(t, `       [2] italic("x")`, lines[4])
	assert.Contains(t, lines[5], "quote")
	assert.Equal(t, `       plain("one<br>two")`, lines[6])
	assert.Contains(t, lines[7], "code")
	assert.NotContains(t, res.stdout, `"# Head"`)

	res = execute(t, "ok\n\nbad **", "inspect", "-", "--spans")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "block 2 (paragraph)")
	assert.Contains(t, res.stdout, "error:")
}

func TestInit_ExistingConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, execute(t, "", "init", root, "--config-only").err)
	assert.NoFileExists(t, filepath.Join(root, "template.html"))

	res := execute(t, "", "init", root)
	require.ErrorIs(t, res.err, cli.ErrConfigExists)

	require.NoError(t, os.Remove(filepath.Join(root, ".gomdsite.yml")))
	page := filepath.Join(root, "content", "index.md")
	writeFile(t, page, "# Mine")

	res = execute(t, "", "init", root)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "kept existing file")
	got, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, "# Mine", string(got), "init must not replace pages without --force")

	res = execute(t, "", "init", root, "--force")
	require.NoError(t, res.err)
	got, err = os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(got), "# Welcome")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1.2.3")
	assert.Contains(t, res.stdout, "abc123")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Commands:")
	assert.Contains(t, res.stdout, "build")
	assert.Contains(t, res.stdout, "--config")
	assert.NotContains(t, res.stdout, "\x1b[", "--color never must not emit escape codes")
}

func TestInvalidColorMode(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "version", "--color", "sometimes")
	require.ErrorIs(t, res.err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitSuccess},
		{fmt.Errorf("wrap: %w", site.ErrPagesFailed), cli.ExitBuildErrors},
		{fmt.Errorf("a.md: %w", render.ErrInvalidCodeBlock), cli.ExitBuildErrors},
		{&configloader.ValidationError{Field: "jobs"}, cli.ExitConfigError},
		{site.ErrOutputOverlap, cli.ExitConfigError},
		{fsutil.ErrPermissionDenied, cli.ExitIOError},
		{cli.ErrUsage, cli.ExitInvalidUsage},
		{errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), "%v", tt.err)
	}
}
