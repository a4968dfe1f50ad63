package timeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	inlineRangeRe   = regexp.MustCompile(`\d{1,2}[:：]\d{2}\s*[-~]\s*\d{1,2}[:：]\d{2}`)
	leadingColonRe  = regexp.MustCompile(`^\s*[:：]\s*`)
	leadingMarkerRe = regexp.MustCompile(`^(?:[-*•]|💡|💰|🚗|⏰)\s*`)

	adviceRe  = regexp.MustCompile(`建议|推荐|注意|提醒|小贴士|温馨提示`)
	costRe    = regexp.MustCompile(`[¥￥]\d+|费用|门票|价格|约.*元|人均.*元`)
	transitRe = regexp.MustCompile(`交通|地铁|公交|打车|步行|乘坐|前往|到达|约.*分钟`)
	timeRe    = regexp.MustCompile(`\d{1,2}[:：]\d{2}|\d{1,2}[点时]|约.*小时|约.*分钟`)
)

// EnhanceDescription annotates each line of a raw description with a marker
// for its kind: advice, cost, transit or time. A long first raw line is kept
// as an unprefixed lead and every other line becomes a bullet.
func EnhanceDescription(raw string) string {
	if loc := inlineRangeRe.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]] + raw[loc[1]:]
	}
	raw = leadingColonRe.ReplaceAllString(raw, "")

	var out []string
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		line = strings.TrimSpace(leadingMarkerRe.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(line) < 3 {
			continue
		}
		out = append(out, annotate(line, i == 0))
	}
	return strings.Join(out, "\n")
}

func annotate(line string, first bool) string {
	switch {
	case adviceRe.MatchString(line):
		return "💡 " + line
	case costRe.MatchString(line):
		return "💰 " + line
	case transitRe.MatchString(line):
		return "🚗 " + line
	case timeRe.MatchString(line):
		return "⏰ " + line
	case first && utf8.RuneCountInString(line) > 10:
		return line
	default:
		return "• " + line
	}
}
