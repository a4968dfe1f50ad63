package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	listItemRe   = regexp.MustCompile(`^(?:[-*•]\s+|\d+\.\s+)`)
	subheadingRe = regexp.MustCompile(`^(?:#{1,6}\s+|[一二三四五六七八九十]\s*[、.]\s*)`)
	listItemRes  = []*regexp.Regexp{
		regexp.MustCompile(`^[-*•]\s+(.+)$`),
		regexp.MustCompile(`^\d+\.\s+(.+)$`),
		regexp.MustCompile(`^[一二三四五六七八九十]\s*[、.]\s*(.+)$`),
	}
	markdownEmphasisRe = regexp.MustCompile("\\*\\*|__|`")
	headingMarkerRe    = regexp.MustCompile(`^#{1,6}\s*`)
	leadingMarkerRe    = regexp.MustCompile(`^(?:[-*•]\s*|\d+\.\s*)`)
	whitespaceRe       = regexp.MustCompile(`\s+`)

	priceRes = []*regexp.Regexp{
		regexp.MustCompile(`[¥￥](\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{1,2})?)\s*元`),
		regexp.MustCompile(`\$(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	}
	ratingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|[^\d.])(\d(?:\.\d)?)\s*[分星](?:[^钟]|$)`),
		regexp.MustCompile(`(?:^|[^\d.])(\d(?:\.\d)?)\s*/\s*(?:5|10)(?:\D|$)`),
	}
	clockRes = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}:\d{2}`),
		regexp.MustCompile(`\d{1,2}点(?:\d{1,2}分?)?`),
	}
	durationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:小时|hours?|hrs?)`),
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:分钟|minutes?|mins?)`),
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:天|days?)`),
	}
)

// SectionExtractor holds the stateless text helpers shared by every module
// parser. The zero value is ready to use.
type SectionExtractor struct{}

// TimeInfo groups clock times and durations found in a line.
type TimeInfo struct {
	Times     []string
	Durations []string
}

// ExtractSection returns the trimmed, non-blank lines that follow the first line
// containing any start keyword, up to (not including) the first later line
// containing any end keyword. Matching is case-insensitive. The start line
// itself is not captured. ok is false when nothing was captured.
func (SectionExtractor) ExtractSection(text string, start, end []string) (section string, ok bool) {
	var captured []string
	capturing := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if !capturing {
			if containsAny(lower, start) {
				capturing = true
			}
			continue
		}
		if containsAny(lower, end) {
			break
		}
		if trimmed != "" {
			captured = append(captured, trimmed)
		}
	}
	if len(captured) == 0 {
		return "", false
	}
	return strings.Join(captured, "\n"), true
}

// IsListItem reports whether line starts with a bullet or numbered marker.
func (SectionExtractor) IsListItem(line string) bool {
	return listItemRe.MatchString(strings.TrimSpace(line))
}

// IsSubheading reports whether line is a markdown heading or a Chinese ordinal heading.
func (SectionExtractor) IsSubheading(line string) bool {
	return subheadingRe.MatchString(strings.TrimSpace(line))
}

// ExtractListItems returns the bodies of list-style lines in text whose rune
// length is at least minLen.
func (SectionExtractor) ExtractListItems(text string, minLen int) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		for _, re := range listItemRes {
			m := re.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			item := strings.TrimSpace(m[1])
			if item != "" && utf8.RuneCountInString(item) >= minLen {
				items = append(items, item)
			}
			break
		}
	}
	return items
}

// StripMarkdown removes emphasis markers, heading markers and a leading list marker.
func (SectionExtractor) StripMarkdown(line string) string {
	s := strings.TrimSpace(line)
	s = headingMarkerRe.ReplaceAllString(s, "")
	s = leadingMarkerRe.ReplaceAllString(s, "")
	s = markdownEmphasisRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CleanText collapses runs of whitespace into single spaces and trims.
func (SectionExtractor) CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ExtractPrices returns every price mentioned in text, grouped by notation
// (¥N first, then N元, then $N).
func (SectionExtractor) ExtractPrices(text string) []float64 {
	var prices []float64
	for _, re := range priceRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err == nil {
				prices = append(prices, v)
			}
		}
	}
	return prices
}

// ExtractRatings returns ratings written as "4.5分", "5星" or "4.5/5".
func (SectionExtractor) ExtractRatings(text string) []float64 {
	var ratings []float64
	for _, re := range ratingRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				ratings = append(ratings, v)
			}
		}
	}
	return ratings
}

// ExtractTimeInfo returns the clock times and durations mentioned in text.
func (SectionExtractor) ExtractTimeInfo(text string) TimeInfo {
	var info TimeInfo
	for _, re := range clockRes {
		info.Times = append(info.Times, re.FindAllString(text, -1)...)
	}
	for _, re := range durationRes {
		for _, d := range re.FindAllString(text, -1) {
			info.Durations = append(info.Durations, strings.TrimSpace(d))
		}
	}
	return info
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
