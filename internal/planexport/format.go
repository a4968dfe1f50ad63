package planexport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"travelfuse/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write renders plan to out in format f.
func Write(out io.Writer, plan *domain.TravelPlan, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(out, plan)
	case FormatXLSX:
		return WriteXLSX(out, plan)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}
}

// unsafeChars matches characters that are not letters, digits, hyphen, or underscore.
var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a plan title for use in Content-Disposition.
// Replaces unsafe chars with _, collapses consecutive underscores, and
// truncates to 60 runes.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > 60 {
		s = string(r[:60])
	}
	if s == "" {
		s = "travel_plan"
	}
	return s
}

// BuildFilename returns {sanitized_title}_{YYYY-MM-DD}.{ext}.
func BuildFilename(title string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(title), now.Format("2006-01-02"), f)
}
