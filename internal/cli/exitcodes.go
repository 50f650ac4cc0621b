package cli

import (
	"errors"

	"github.com/yaklabco/gomdsite/internal/configloader"
	"github.com/yaklabco/gomdsite/pkg/fsutil"
	"github.com/yaklabco/gomdsite/pkg/site"
)

// Exit codes for gomdsite.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitBuildErrors indicates one or more pages or documents failed to
	// render.
	ExitBuildErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates an invalid configuration or template.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUsage marks command-line usage errors.
var ErrUsage = errors.New("invalid usage")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validation),
		errors.Is(err, site.ErrTemplatePlaceholder),
		errors.Is(err, site.ErrOutputOverlap):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrNotDirectory),
		errors.Is(err, fsutil.ErrUnsafePath):
		return ExitIOError
	case errors.Is(err, site.ErrPagesFailed), isRenderError(err):
		return ExitBuildErrors
	default:
		return ExitInternalError
	}
}
