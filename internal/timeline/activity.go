package timeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

// PeriodRanges maps the five period words to their canonical time range.
var PeriodRanges = map[string]string{
	"上午": "09:00-12:00",
	"下午": "14:00-17:00",
	"晚上": "19:00-21:00",
	"早上": "08:00-10:00",
	"中午": "12:00-14:00",
}

var periodTable = parser.Table[domain.Period]{
	Rules: []parser.Rule[domain.Period]{
		{Match: parser.Keywords("上午", "早上"), Tag: domain.PeriodMorning},
		{Match: parser.Keywords("中午"), Tag: domain.PeriodNoon},
		{Match: parser.Keywords("下午"), Tag: domain.PeriodAfternoon},
		{Match: parser.Keywords("晚上"), Tag: domain.PeriodEvening},
	},
}

var categoryTable = parser.Table[domain.ActivityCategory]{
	Rules: []parser.Rule[domain.ActivityCategory]{
		{Match: parser.Keywords("游览", "参观", "景点"), Tag: domain.CategorySightseeing},
		{Match: parser.Keywords("美食", "品尝", "餐厅"), Tag: domain.CategoryFood},
		{Match: parser.Keywords("购物", "商场"), Tag: domain.CategoryShopping},
		{Match: parser.Keywords("休息", "酒店"), Tag: domain.CategoryRest},
		{Match: parser.Keywords("交通", "前往"), Tag: domain.CategoryTransport},
	},
	Default: domain.CategoryOther,
}

type categoryStyle struct {
	icon   string
	accent string
	cost   int // used when the text names no price
}

var categoryStyles = map[domain.ActivityCategory]categoryStyle{
	domain.CategorySightseeing: {"🏛️", "from-yellow-400 to-orange-400", 100},
	domain.CategoryFood:        {"🍜", "from-orange-400 to-red-400", 80},
	domain.CategoryShopping:    {"🛍️", "from-pink-400 to-rose-500", 60},
	domain.CategoryRest:        {"🏨", "from-purple-400 to-indigo-500", 60},
	domain.CategoryTransport:   {"🚗", "from-green-400 to-emerald-500", 25},
	domain.CategoryOther:       {"📍", "from-blue-400 to-cyan-400", 60},
}

// DefaultDuration is used when the text names no duration.
const DefaultDuration = "约2-3小时"

var (
	clockRangeRe = regexp.MustCompile(`^(\d{1,2})[:：](\d{2})\s*[-~]\s*(\d{1,2})[:：](\d{2})$`)
	hourRangeRe  = regexp.MustCompile(`^(\d{1,2})[点时]\s*[-~]\s*(\d{1,2})[点时]$`)
	leadingHrRe  = regexp.MustCompile(`^(\d{1,2})`)
	titleRe      = regexp.MustCompile(`^([^，。：:\n]+)`)

	costRes = []*regexp.Regexp{
		regexp.MustCompile(`[¥￥](\d+)`),
		regexp.MustCompile(`门票[：:]?(\d+)元`),
		regexp.MustCompile(`费用[：:]?(\d+)元`),
		regexp.MustCompile(`(\d+)元`),
	}
	durationRes = []*regexp.Regexp{
		regexp.MustCompile(`\d+小时\d+分钟`),
		regexp.MustCompile(`\d+小时`),
		regexp.MustCompile(`\d+分钟`),
		regexp.MustCompile(`(?:游览|建议)\d+小时`),
	}
)

// BuildActivity turns a time label (a period word or a raw range) and its
// free-text description into a normalized activity.
func BuildActivity(label, description string, pctx parser.Context) domain.TimelineActivity {
	label = strings.TrimSpace(label)
	description = strings.TrimSpace(description)

	category := categoryTable.Classify(description)
	style := categoryStyles[category]
	timeRange := NormalizeTime(label)

	return domain.TimelineActivity{
		Time:          timeRange,
		Period:        ResolvePeriod(label, timeRange),
		Title:         extractTitle(description),
		Description:   EnhanceDescription(description),
		Category:      category,
		Icon:          style.icon,
		Cost:          extractCost(description, style.cost),
		Duration:      extractDuration(description),
		DisplayAccent: style.accent,
	}
}

// NormalizeTime maps a period word to its fixed range and rewrites clock or
// hour ranges as zero-padded HH:MM-HH:MM. Anything else is returned as is.
func NormalizeTime(label string) string {
	if r, ok := PeriodRanges[label]; ok {
		return r
	}
	if m := clockRangeRe.FindStringSubmatch(label); m != nil {
		return fmt.Sprintf("%02d:%s-%02d:%s", atoi(m[1]), m[2], atoi(m[3]), m[4])
	}
	if m := hourRangeRe.FindStringSubmatch(label); m != nil {
		return fmt.Sprintf("%02d:00-%02d:00", atoi(m[1]), atoi(m[2]))
	}
	return label
}

// atoi is only called on \d{1,2} captures.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ResolvePeriod derives the semantic period from the label's period word,
// else from the leading hour of timeRange.
func ResolvePeriod(label, timeRange string) domain.Period {
	if p, ok := periodTable.Lookup(label); ok {
		return p
	}
	m := leadingHrRe.FindStringSubmatch(strings.TrimSpace(timeRange))
	if m == nil {
		return domain.PeriodNoon
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.PeriodNoon
	}
	return PeriodForHour(hour)
}

// PeriodForHour buckets an hour of day. 12 is noon and 18 is evening.
func PeriodForHour(hour int) domain.Period {
	switch {
	case hour < 12:
		return domain.PeriodMorning
	case hour == 12:
		return domain.PeriodNoon
	case hour < 18:
		return domain.PeriodAfternoon
	default:
		return domain.PeriodEvening
	}
}

func extractTitle(description string) string {
	if m := titleRe.FindStringSubmatch(description); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t
		}
	}
	if utf8.RuneCountInString(description) <= 20 {
		return description
	}
	return string([]rune(description)[:20])
}

func extractCost(description string, fallback int) int {
	for _, re := range costRes {
		if m := re.FindStringSubmatch(description); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return fallback
}

func extractDuration(description string) string {
	for _, re := range durationRes {
		if d := re.FindString(description); d != "" {
			return d
		}
	}
	return DefaultDuration
}
