package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatSummary Format = "summary"
	FormatJSON    Format = "json"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if s == "" {
		f = FormatText
	}
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, summary, json", s)
	}
	return f, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatSummary, FormatJSON:
		return true
	default:
		return false
	}
}
