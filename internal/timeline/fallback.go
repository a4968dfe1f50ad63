package timeline

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/tyler-sommer/stick"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

// FallbackWarning is attached when no time notation was recognized.
const FallbackWarning = "未能识别标准时间格式，使用兜底解析"

var fallbackPeriods = []string{"上午", "下午", "晚上"}

var defaultSkeletonTemplates = map[string]string{
	"上午": "开始{{ destination }}的精彩一天\n• 游览当地著名景点\n💡 建议：早起避开人流高峰",
	"下午": "继续探索{{ destination }}\n• 深度体验当地文化\n🚗 交通：建议使用公共交通",
	"晚上": "享受{{ destination }}的夜晚时光\n• 品尝当地特色美食\n💰 预算：人均100-200元",
}

// skeleton renders the per-period fallback descriptions.
type skeleton struct {
	env       *stick.Env
	templates map[string]string
}

var templateDelims = [][2]string{{"{{", "}}"}, {"{%", "%}"}, {"{#", "#}"}}

// checkDelimiters rejects a template with an opening tag that is never
// closed; the template engine does not terminate on such input.
func checkDelimiters(tpl string) error {
	for _, d := range templateDelims {
		rest := tpl
		for {
			i := strings.Index(rest, d[0])
			if i < 0 {
				break
			}
			rest = rest[i+len(d[0]):]
			j := strings.Index(rest, d[1])
			if j < 0 {
				return fmt.Errorf("unterminated %q", d[0])
			}
			if k := strings.Index(rest[:j], d[0]); k >= 0 {
				return fmt.Errorf("nested %q", d[0])
			}
			rest = rest[j+len(d[1]):]
		}
	}
	return nil
}

func newSkeleton(templates map[string]string) (*skeleton, error) {
	s := &skeleton{
		env:       stick.New(nil),
		templates: make(map[string]string, len(defaultSkeletonTemplates)),
	}
	for k, v := range defaultSkeletonTemplates {
		s.templates[k] = v
	}
	for k, v := range templates {
		if _, ok := defaultSkeletonTemplates[k]; !ok {
			return nil, fmt.Errorf("template for unknown period %q", k)
		}
		if err := checkDelimiters(v); err != nil {
			return nil, fmt.Errorf("template %q: %w", k, err)
		}
		if err := s.env.Execute(v, io.Discard, renderContext(k, "目的地")); err != nil {
			return nil, fmt.Errorf("template %q: %w", k, err)
		}
		s.templates[k] = v
	}
	return s, nil
}

func renderContext(period, destination string) map[string]stick.Value {
	return map[string]stick.Value{
		"destination": destination,
		"period":      period,
	}
}

func (s *skeleton) render(tpl, period, destination string) (string, error) {
	var out strings.Builder
	if err := s.env.Execute(tpl, &out, renderContext(period, destination)); err != nil {
		return "", fmt.Errorf("execute %q: %w", period, err)
	}
	return out.String(), nil
}

// describe renders the template of period. When an override fails to render
// the built-in template is used instead.
func (s *skeleton) describe(period, destination string) (string, error) {
	tpl, ok := s.templates[period]
	if !ok {
		return "", fmt.Errorf("template %q not found", period)
	}
	if strings.TrimSpace(destination) == "" {
		destination = "目的地"
	}

	desc, err := s.render(tpl, period, destination)
	if err == nil {
		return desc, nil
	}
	builtin := defaultSkeletonTemplates[period]
	if builtin == tpl {
		return "", err
	}
	log.Printf("timeline.skeleton: override for %s failed, using built-in: %v", period, err)
	return s.render(builtin, period, destination)
}

// activities builds one activity per fallback period.
func (s *skeleton) activities(pctx parser.Context) []domain.TimelineActivity {
	out := make([]domain.TimelineActivity, 0, len(fallbackPeriods))
	for _, period := range fallbackPeriods {
		desc, err := s.describe(period, pctx.Destination)
		if err != nil {
			desc = period + "自由活动"
		}
		out = append(out, BuildActivity(period, desc, pctx))
	}
	return out
}
