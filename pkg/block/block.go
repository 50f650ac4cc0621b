// Package block splits a Markdown document into blank-line separated blocks
// and classifies each block by its structural kind.
package block

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a block.
type Kind uint8

// Block kinds. Paragraph is the zero value and the fallback.
const (
	KindParagraph Kind = iota
	KindHeading
	KindCode
	KindQuote
	KindUnorderedList
	KindOrderedList
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindCode:          "code",
	KindQuote:         "quote",
	KindUnorderedList: "unordered_list",
	KindOrderedList:   "ordered_list",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Markers shared by the classifier and the compiler.
const (
	HeadingMarker       = '#'
	MaxHeadingLevel     = 6
	CodeFence           = "```"
	QuoteMarker         = ">"
	UnorderedListMarker = "- "
)

// Block is one top-level unit of a document.
type Block struct {
	Text string
	Kind Kind
}

//nolint:gochecknoglobals // Precompiled pattern.
var lineBreaks = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(doc string) string {
	return lineBreaks.ReplaceAllString(doc, "\n")
}

// Segment splits doc on blank lines. Each block is trimmed of surrounding
// whitespace and empty blocks are dropped; whitespace inside a block is kept.
func Segment(doc string) []string {
	parts := strings.Split(doc, "\n\n")
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, part)
	}
	return blocks
}

// Parse normalizes line endings, segments doc and classifies every block.
func Parse(doc string) []Block {
	texts := Segment(NormalizeLineEndings(doc))
	blocks := make([]Block, len(texts))
	for i, text := range texts {
		blocks[i] = Block{Text: text, Kind: Classify(text)}
	}
	return blocks
}

// Classify returns the kind of a single block. Rules are tried in order and
// the first match wins:
//
//  1. heading: one to six '#' followed by a space
//  2. code: starts and ends with a ``` fence
//  3. quote: every line starts with '>'
//  4. unordered list: every line starts with "- "
//  5. ordered list: line i starts with "i. ", counting from 1
//  6. paragraph otherwise
func Classify(text string) Kind {
	if isHeading(text) {
		return KindHeading
	}
	if strings.HasPrefix(text, CodeFence) && strings.HasSuffix(text, CodeFence) {
		return KindCode
	}

	lines := strings.Split(text, "\n")
	switch {
	case allLines(lines, func(_ int, line string) bool { return strings.HasPrefix(line, QuoteMarker) }):
		return KindQuote
	case allLines(lines, func(_ int, line string) bool { return strings.HasPrefix(line, UnorderedListMarker) }):
		return KindUnorderedList
	case allLines(lines, func(i int, line string) bool { return strings.HasPrefix(line, OrderedListMarker(i+1)) }):
		return KindOrderedList
	default:
		return KindParagraph
	}
}

// HeadingLevel returns the number of leading '#' characters in text.
func HeadingLevel(text string) int {
	level := 0
	for level < len(text) && text[level] == HeadingMarker {
		level++
	}
	return level
}

// OrderedListMarker returns the marker expected at the start of item n.
func OrderedListMarker(n int) string {
	return strconv.Itoa(n) + ". "
}

func isHeading(text string) bool {
	level := HeadingLevel(text)
	return level >= 1 && level <= MaxHeadingLevel && level < len(text) && text[level] == ' '
}

func allLines(lines []string, match func(int, string) bool) bool {
	for i, line := range lines {
		if !match(i, line) {
			return false
		}
	}
	return true
}
