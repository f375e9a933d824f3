package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize collapses every run of whitespace (spaces, tabs, newlines) into a
// single space and trims leading and trailing whitespace. Empty input yields
// an empty string. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
