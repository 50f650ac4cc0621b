// Package inline splits a run of Markdown text into typed spans (plain,
// bold, italic, code, link, image) and maps those spans to HTML nodes.
package inline

import "fmt"

// Kind classifies an inline span.
type Kind uint8

// Span kinds. The set is closed; Tokenize never produces any other value.
const (
	KindPlain Kind = iota
	KindBold
	KindItalic
	KindCode
	KindLink
	KindImage
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindPlain:  "plain",
	KindBold:   "bold",
	KindItalic: "italic",
	KindCode:   "code",
	KindLink:   "link",
	KindImage:  "image",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return int(k) < len(kindNames)
}

// HasTarget reports whether spans of this kind carry a URL.
func (k Kind) HasTarget() bool {
	return k == KindLink || k == KindImage
}

// Span is a contiguous run of inline text with one formatting kind.
// Target is the URL for links and images and empty for every other kind.
// Spans compare equal with == when kind, text and target match.
type Span struct {
	Text   string
	Kind   Kind
	Target string
}

// Plain returns an unformatted span.
func Plain(text string) Span { return Span{Text: text, Kind: KindPlain} }

// Bold returns a bold span.
func Bold(text string) Span { return Span{Text: text, Kind: KindBold} }

// Italic returns an italic span.
func Italic(text string) Span { return Span{Text: text, Kind: KindItalic} }

// Code returns an inline code span.
func Code(text string) Span { return Span{Text: text, Kind: KindCode} }

// Link returns a link span with the given label and URL.
func Link(label, url string) Span { return Span{Text: label, Kind: KindLink, Target: url} }

// Image returns an image span with the given alt text and URL.
func Image(alt, url string) Span { return Span{Text: alt, Kind: KindImage, Target: url} }

// String implements fmt.Stringer for debugging output.
func (s Span) String() string {
	if s.Kind.HasTarget() {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.Target)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}
