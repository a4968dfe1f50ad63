// Package timeline turns itinerary prose into a list of normalized timeline
// activities. Detection is a cascade: period headers, then explicit time
// ranges, then a destination-templated three-period skeleton.
package timeline

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

const (
	minProseRunes = 50
	maxProseRunes = 10000
)

var (
	periodHeaderRe = regexp.MustCompile(`-\s*\*\*\s*(上午|下午|晚上|早上|中午)\s*\*\*\s*`)
	explicitRangeRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}:\d{2}\s*[-~]\s*\d{1,2}:\d{2})[：:\s]*([^\n]+)`),
		regexp.MustCompile(`(\d{1,2}[点时]\s*[-~]\s*\d{1,2}[点时])[：:\s]*([^\n]+)`),
	}
	bulletPrefixRe = regexp.MustCompile(`^-\s*`)
)

// Parser parses timeline activities. Safe for concurrent use.
type Parser struct {
	skeleton *skeleton
}

// New creates a Parser. templates overrides the fallback description
// template of a period (上午, 下午, 晚上); nil keeps the built-in ones.
// Each override is checked by rendering it once.
func New(templates map[string]string) (*Parser, error) {
	sk, err := newSkeleton(templates)
	if err != nil {
		return nil, err
	}
	return &Parser{skeleton: sk}, nil
}

// Default returns a Parser with the built-in fallback templates.
func Default() *Parser {
	return defaultParser
}

var defaultParser = mustDefault()

func mustDefault() *Parser {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse runs the default parser.
func Parse(text string, pctx parser.Context) parser.Outcome[[]domain.TimelineActivity] {
	return defaultParser.Parse(text, pctx)
}

// CanHandle reports whether text looks like itinerary content worth parsing.
func CanHandle(text string) bool {
	if periodHeaderRe.MatchString(text) {
		return true
	}
	for _, re := range explicitRangeRes {
		if re.MatchString(text) {
			return true
		}
	}
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	return n > minProseRunes && n < maxProseRunes
}

// Parse detects activities in text. The outcome always carries data: empty
// input and recovered panics yield a failed outcome with the skeleton.
func (p *Parser) Parse(text string, pctx parser.Context) (out parser.Outcome[[]domain.TimelineActivity]) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("timeline.Parser: recovered: %v", r)
			fb := p.skeleton.activities(pctx)
			out = parser.Failure([]string{"时间线解析失败: " + parser.PanicError(r).Error()}, &fb)
		}
	}()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		fb := p.skeleton.activities(pctx)
		return parser.Failure([]string{"输入内容为空"}, &fb)
	}

	if activities := p.fromPeriodBlocks(trimmed, pctx); len(activities) > 0 {
		return parser.Success(activities)
	}
	if activities := p.fromExplicitRanges(trimmed, pctx); len(activities) > 0 {
		return parser.Success(activities)
	}
	return parser.Success(p.skeleton.activities(pctx), FallbackWarning)
}

// timeBlock is the text following one period header, up to the next header.
type timeBlock struct {
	period  string
	offset  int
	content string
}

func periodBlocks(text string) []timeBlock {
	matches := periodHeaderRe.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]timeBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, timeBlock{
			period:  text[m[2]:m[3]],
			offset:  m[0],
			content: strings.TrimSpace(text[m[1]:end]),
		})
	}
	return blocks
}

func (p *Parser) fromPeriodBlocks(text string, pctx parser.Context) []domain.TimelineActivity {
	var out []domain.TimelineActivity
	for _, b := range periodBlocks(text) {
		if utf8.RuneCountInString(b.content) < 3 {
			continue
		}
		desc := blockDescription(b.content)
		if utf8.RuneCountInString(desc) <= 3 {
			continue
		}
		out = append(out, BuildActivity(b.period, desc, pctx))
	}
	return out
}

// blockDescription keeps the list-item and "label: value" lines of a block,
// or the whole block when it has none.
func blockDescription(content string) string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 5 {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.ContainsAny(line, ":：") {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		lines = []string{content}
	}
	for i, line := range lines {
		line = bulletPrefixRe.ReplaceAllString(line, "")
		lines[i] = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (p *Parser) fromExplicitRanges(text string, pctx parser.Context) []domain.TimelineActivity {
	var out []domain.TimelineActivity
	for _, re := range explicitRangeRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			label := strings.Join(strings.Fields(m[1]), "")
			desc := strings.TrimSpace(m[2])
			if utf8.RuneCountInString(desc) <= 5 {
				continue
			}
			out = append(out, BuildActivity(label, desc, pctx))
		}
	}
	return out
}
