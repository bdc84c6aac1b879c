package slug

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`[^\w-]+`)
	collapseRe   = regexp.MustCompile(`-{2,}`)
)

// Make derives a URL-safe slug from a display name: lowercase, whitespace
// to hyphens, non-word characters stripped, repeated hyphens collapsed,
// leading/trailing hyphens trimmed.
func Make(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = collapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
