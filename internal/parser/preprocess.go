package parser

import (
	"regexp"
	"strings"
)

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Preprocess normalizes line endings to LF, collapses runs of blank lines and
// trims the document. Line content is left untouched.
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
