package inline

import "regexp"

// Ref is a link label or image alt text together with its URL.
type Ref struct {
	Text string
	URL  string
}

// Precompiled patterns. Neither the bracketed text nor the URL may contain
// further brackets or parentheses.
var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// refMatch locates one reference in a string.
type refMatch struct {
	start, end int
	ref        Ref
}

// ExtractImages returns every ![alt](url) in text, left to right.
func ExtractImages(text string) []Ref {
	return collectRefs(text, findImage)
}

// ExtractLinks returns every [label](url) in text that is not part of an
// image, left to right.
func ExtractLinks(text string) []Ref {
	return collectRefs(text, findLink)
}

func collectRefs(text string, find func(string, int) (refMatch, bool)) []Ref {
	var refs []Ref
	offset := 0
	for {
		m, ok := find(text, offset)
		if !ok {
			return refs
		}
		refs = append(refs, m.ref)
		offset = m.end
	}
}

// findImage returns the first image at or after offset.
func findImage(text string, offset int) (refMatch, bool) {
	loc := imagePattern.FindStringSubmatchIndex(text[offset:])
	if loc == nil {
		return refMatch{}, false
	}
	return newRefMatch(text, offset, loc), true
}

// findLink returns the first link at or after offset whose opening bracket
// is not preceded by '!'. A rejected candidate resumes the scan one byte
// after its opening bracket, so a link nested after an image prefix can
// still be found.
func findLink(text string, offset int) (refMatch, bool) {
	for offset < len(text) {
		loc := linkPattern.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			return refMatch{}, false
		}
		start := offset + loc[0]
		if start > 0 && text[start-1] == '!' {
			offset = start + 1
			continue
		}
		return newRefMatch(text, offset, loc), true
	}
	return refMatch{}, false
}

func newRefMatch(text string, offset int, loc []int) refMatch {
	return refMatch{
		start: offset + loc[0],
		end:   offset + loc[1],
		ref: Ref{
			Text: text[offset+loc[2] : offset+loc[3]],
			URL:  text[offset+loc[4] : offset+loc[5]],
		},
	}
}
