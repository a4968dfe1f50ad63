package planner

import (
	"regexp"
	"strings"
)

const (
	overviewMaxLines      = 15
	overviewFallbackLines = 10
)

// dayMarkerRe allows any leading run of markup, bullets or emoji before the
// marker, but no letters or digits.
var dayMarkerRe = regexp.MustCompile(`(?i)^[^\p{L}\d]*(?:day\s*\d+|第\s*[0-9一二三四五六七八九十]+\s*[天日])`)

// extractOverview returns the non-blank lines before the first day marker,
// capped at 15. Without a marker, or with nothing before it, the first 10
// lines of the document are used instead.
func extractOverview(text string) string {
	lines := strings.Split(text, "\n")

	var kept []string
	marker := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if dayMarkerRe.MatchString(trimmed) {
			marker = true
			break
		}
		if trimmed != "" && len(kept) < overviewMaxLines {
			kept = append(kept, trimmed)
		}
	}
	if marker && len(kept) > 0 {
		return strings.Join(kept, "\n")
	}

	if len(lines) > overviewFallbackLines {
		lines = lines[:overviewFallbackLines]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
