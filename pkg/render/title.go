package render

import (
	"errors"
	"strings"

	"github.com/yaklabco/gomdsite/pkg/block"
)

// ErrNoTitleFound is returned when a document has no level-one heading.
var ErrNoTitleFound = errors.New("no title found")

// ExtractTitle returns the text of the first line that starts with exactly
// one '#'. The text is trimmed; an empty title is an error.
func ExtractTitle(markdown string) (string, error) {
	for line := range strings.SplitSeq(block.NormalizeLineEndings(markdown), "\n") {
		if len(line) == 0 || line[0] != block.HeadingMarker {
			continue
		}
		if len(line) > 1 && line[1] == block.HeadingMarker {
			continue
		}

		title := strings.TrimSpace(line[1:])
		if title == "" {
			return "", ErrNoTitleFound
		}
		return title, nil
	}

	return "", ErrNoTitleFound
}
