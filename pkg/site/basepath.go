package site

import "strings"

// RewriteBasePath points root-relative href and src attributes at base.
// A base of "" or "/" leaves html unchanged; a missing trailing slash is
// added.
func RewriteBasePath(html, base string) string {
	if base == "" || base == "/" {
		return html
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return strings.NewReplacer(
		`href="/`, `href="`+base,
		`src="/`, `src="`+base,
	).Replace(html)
}
