// Package langdetect guesses the language of an unlabeled code block so the
// renderer can emit a language-* class for syntax highlighters.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// signature reports a language when the code starts with one of prefix,
// contains every marker in all and, if any is set, at least one marker in
// any. Prefixes compare case-insensitively.
type signature struct {
	lang   string
	prefix []string
	all    []string
	any    []string
}

// Signatures are tried in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var signatures = []signature{
	{lang: "go", prefix: []string{"package "}},
	{lang: "go", all: []string{"func ", ":= "}},
	{lang: "python", all: []string{"def ", "):"}},
	{lang: "python", any: []string{"__name__", "__main__", "self."}},
	{lang: "python", prefix: []string{"from "}, all: []string{" import "}},
	{lang: "html", prefix: []string{"<!doctype html", "<html"}},
	{lang: "json", prefix: []string{"{\"", "[{", "[\""}},
	{lang: "dockerfile", prefix: []string{"FROM "}, any: []string{"\nRUN ", "\nCOPY ", "\nCMD "}},
	{lang: "sql", prefix: []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"}},
	{lang: "rust", any: []string{"fn main()", "println!", "let mut "}},
	{lang: "javascript", any: []string{"console.log", "=> {", "function("}},
	{lang: "bash", prefix: []string{"$ ", "export ", "echo "}},
}

//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a fence tag such as "go" or "python" for code, or "" when
// no language is detected with confidence.
func Detect(code []byte) string {
	trimmed := bytes.TrimSpace(code)
	if len(trimmed) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	text := string(trimmed)
	for _, sig := range signatures {
		if sig.matches(text) {
			return sig.lang
		}
	}

	if looksLikeYAML(text) {
		return "yaml"
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

func (s signature) matches(text string) bool {
	if len(s.prefix) > 0 && !hasAnyPrefix(text, s.prefix) {
		return false
	}
	for _, marker := range s.all {
		if !strings.Contains(text, marker) {
			return false
		}
	}
	if len(s.any) > 0 && !containsAny(text, s.any) {
		return false
	}
	return len(s.prefix) > 0 || len(s.all) > 0 || len(s.any) > 0
}

func hasAnyPrefix(text string, prefixes []string) bool {
	upper := strings.ToUpper(text)
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) || strings.HasPrefix(upper, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// looksLikeYAML counts plain "key: value" lines and "- " items.
func looksLikeYAML(text string) bool {
	const minEntries = 2

	entries := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "- "):
			entries++
		case strings.Contains(line, ": ") && !strings.ContainsAny(line, "({;") && !strings.HasPrefix(line, `"`):
			entries++
		}
	}
	return entries >= minEntries
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
