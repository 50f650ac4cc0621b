package inline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminatedDelimiter is returned when an opening delimiter has no
// matching closing delimiter in the same span.
var ErrUnterminatedDelimiter = errors.New("unterminated delimiter")

// Delimiters recognized by Tokenize.
const (
	DelimiterCode   = "`"
	DelimiterBold   = "**"
	DelimiterItalic = "_"
)

// SplitDelimiter splits every plain span on pairs of delimiter, turning the
// text between each pair into a span of the given kind. Spans of other
// kinds pass through unchanged.
//
// The text after a closing delimiter is scanned again for the next pair.
// Empty plain text before or after a pair is dropped; an empty span between
// a pair (for example "****") is kept.
func SplitDelimiter(spans []Span, delimiter string, kind Kind) ([]Span, error) {
	if delimiter == "" {
		return nil, errors.New("split delimiter: empty delimiter")
	}

	result := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != KindPlain {
			result = append(result, span)
			continue
		}

		rest := span.Text
		for {
			open := strings.Index(rest, delimiter)
			if open == -1 {
				result = appendPlain(result, rest)
				break
			}

			inner := rest[open+len(delimiter):]
			closing := strings.Index(inner, delimiter)
			if closing == -1 {
				return nil, fmt.Errorf("%w %q in %q", ErrUnterminatedDelimiter, delimiter, span.Text)
			}

			result = appendPlain(result, rest[:open])
			result = append(result, Span{Text: inner[:closing], Kind: kind})
			rest = inner[closing+len(delimiter):]
		}
	}

	return result, nil
}

// SplitImages extracts ![alt](url) references from plain spans.
func SplitImages(spans []Span) []Span {
	return splitRefs(spans, KindImage, findImage)
}

// SplitLinks extracts [label](url) references from plain spans.
func SplitLinks(spans []Span) []Span {
	return splitRefs(spans, KindLink, findLink)
}

// splitRefs repeatedly takes the first reference in the remaining text of
// each plain span and emits the text before it, then the reference itself.
func splitRefs(spans []Span, kind Kind, find func(string, int) (refMatch, bool)) []Span {
	result := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != KindPlain {
			result = append(result, span)
			continue
		}

		rest := span.Text
		for {
			m, ok := find(rest, 0)
			if !ok {
				result = appendPlain(result, rest)
				break
			}
			result = appendPlain(result, rest[:m.start])
			result = append(result, Span{Text: m.ref.Text, Kind: kind, Target: m.ref.URL})
			rest = rest[m.end:]
		}
	}
	return result
}

func appendPlain(spans []Span, text string) []Span {
	if text == "" {
		return spans
	}
	return append(spans, Plain(text))
}

// delimiterStages is the fixed order in which delimiters are applied after
// images and links. Code runs first so markers inside code are literal, and
// bold runs before italic so "**" is not split by "_" handling.
//
//nolint:gochecknoglobals // Read-only lookup table.
var delimiterStages = []struct {
	delimiter string
	kind      Kind
}{
	{DelimiterCode, KindCode},
	{DelimiterBold, KindBold},
	{DelimiterItalic, KindItalic},
}

// Tokenize converts a run of Markdown text into spans. Images are extracted
// first, then links, code, bold and italic, each stage seeing only the
// spans still plain after the previous one.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{Plain(text)}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)

	for _, stage := range delimiterStages {
		var err error
		spans, err = SplitDelimiter(spans, stage.delimiter, stage.kind)
		if err != nil {
			return nil, err
		}
	}

	return spans, nil
}
