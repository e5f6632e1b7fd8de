package ocr

import (
	"regexp"
	"strings"
)

var (
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// CollapseText flattens recognizer output into one search string: fragments
// separated by single spaces, in detection order. The classifier and the
// lexical extractor both run over this flat form.
func CollapseText(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
