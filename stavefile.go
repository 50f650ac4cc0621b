//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"demo": Demo,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

const (
	binaryName = "gomdsite"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// corePackages compile Markdown without touching the file system.
var corePackages = []string{
	"./pkg/htmlnode/...",
	"./pkg/inline/...",
	"./pkg/block/...",
	"./pkg/render/...",
	"./pkg/langdetect/...",
}

// Build compiles the gomdsite binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binaryPath + " is up to date")
		return nil
	}
	fmt.Println("Building " + binaryName + "...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Demo scaffolds a site in a temporary directory with the freshly built
// binary, builds it and prints where the pages went.
func Demo() error {
	st.Deps(Build)
	bin, err := filepath.Abs(binaryPath)
	if err != nil {
		return fmt.Errorf("resolve binary: %w", err)
	}
	dir, err := os.MkdirTemp("", binaryName+"-demo-")
	if err != nil {
		return fmt.Errorf("create demo dir: %w", err)
	}
	if err := sh.RunV(bin, "init", dir); err != nil {
		return err
	}
	config := filepath.Join(dir, ".gomdsite.yml")
	if err := sh.RunV(bin, "build", "--config", config, "--list", "--summary"); err != nil {
		return err
	}
	fmt.Printf("Demo site written to %s\n", filepath.Join(dir, "docs"))
	return nil
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs gomdsite to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing " + binaryName + "...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Core runs only the Markdown compiler tests.
func (Test) Core() error {
	fmt.Println("Running compiler tests...")
	return gotestsum("testname", append([]string{"-race"}, corePackages...)...)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", "cmd", "internal", "pkg", "stavefile.go")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Gate runs the checks a pull request must pass, then builds the demo site.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Build,
		Test.Default,
		CI.Cross,
		Demo,
	)
	fmt.Println("All CI gate checks passed")
	return nil
}

// Cross builds the release platforms. The generator is pure Go, so cgo is
// disabled everywhere.
func (CI) Cross() error {
	for _, platform := range []string{"linux/amd64", "linux/arm64", "darwin/arm64", "windows/amd64"} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	return nil
}

// gotestsum runs go test through the gotestsum tool with the given output
// format. STAVE_NUM_PROCESSORS caps package and test parallelism.
func gotestsum(format string, args ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := []string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}
	return sh.RunV("go", append(cmdArgs, args...)...)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
