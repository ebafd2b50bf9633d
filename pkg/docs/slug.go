// Package docs holds helpers used when rendering documentation pages.
package docs

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	nonWord   = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	dashRun   = regexp.MustCompile(`-{2,}`)
	lowerCase = cases.Lower(language.Und)
)

// Slugify returns a URL-friendly slug of text.
// Whitespace becomes a dash, & becomes -and-, other characters outside
// [A-Za-z0-9_-] are dropped.
func Slugify(text string) string {
	s := strings.TrimSpace(lowerCase.String(text))
	s = spaceRun.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "&", "-and-")
	s = nonWord.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
