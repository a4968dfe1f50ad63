package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var sx SectionExtractor

// nonBlankLines splits text into trimmed, non-empty lines.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// sectionOverview joins up to three leading prose lines, stopping at the
// first list item or sub-heading.
func sectionOverview(section, fallback string) string {
	var kept []string
	for _, line := range nonBlankLines(section) {
		if sx.IsListItem(line) || sx.IsSubheading(line) {
			break
		}
		kept = append(kept, line)
		if len(kept) >= 3 {
			break
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return strings.Join(kept, " ")
}

// firstSubmatch returns the trimmed first capture group of the first pattern
// that matches line.
func firstSubmatch(line string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// keywordItems collects list items from lines containing any keyword; a
// keyword line that is not itself a list item contributes its cleaned text.
func keywordItems(section string, keywords []string) []string {
	items := []string{}
	for _, line := range nonBlankLines(section) {
		if !containsAny(strings.ToLower(line), keywords) {
			continue
		}
		found := sx.ExtractListItems(line, 1)
		if len(found) == 0 {
			items = append(items, sx.CleanText(line))
			continue
		}
		items = append(items, found...)
	}
	return items
}

// splitEnumeration splits "WiFi、早餐, 停车" style lists.
func splitEnumeration(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '、', ',', '，', '/', ';', '；':
			return true
		}
		return false
	})
	out := []string{}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		dup := false
		for _, existing := range list {
			if strings.EqualFold(existing, it) {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, it)
		}
	}
	return list
}

// afterColon returns the text after the first ASCII or full-width colon.
func afterColon(s string) (string, bool) {
	i := strings.IndexAny(s, "：:")
	if i < 0 {
		return s, false
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return strings.TrimSpace(s[i+size:]), true
}
