package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"travelfuse/internal/domain"
)

var (
	routeRe     = regexp.MustCompile(`从\s*(.+?)\s*到\s*([^：:，。,\s]+)`)
	cardNameRes = []*regexp.Regexp{
		regexp.MustCompile(`(一卡通|交通卡|地铁卡|公交卡)`),
		regexp.MustCompile(`([^\s，,。：:]{1,8}卡)`),
	}
	transitCost = []*regexp.Regexp{
		regexp.MustCompile(`费用[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`价格[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`票价[：:]?\s*([^，。\n]+)`),
	}
	transitDuration = []*regexp.Regexp{
		regexp.MustCompile(`时长[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`耗时[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`需要[：:]?\s*([^，。\n]+)`),
	}
	transitFrequency = []*regexp.Regexp{
		regexp.MustCompile(`频次[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`班次[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`每(\d+(?:分钟|小时|天|分))`),
	}
	inlineTipRes = []*regexp.Regexp{
		regexp.MustCompile(`建议[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`注意[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`提醒[：:]?\s*([^，。\n]+)`),
	}
)

var transportTypes = Table[domain.TransportType]{
	Rules: []Rule[domain.TransportType]{
		{Keywords("飞机", "航班", "flight"), domain.TransportFlight},
		{Keywords("火车", "高铁", "动车", "train"), domain.TransportTrain},
		{Keywords("公交", "巴士", "bus"), domain.TransportBus},
		{Keywords("出租车", "打车", "taxi"), domain.TransportTaxi},
		{Keywords("地铁", "轻轨", "metro", "subway"), domain.TransportMetro},
		{Keywords("步行", "走路", "walk"), domain.TransportWalking},
		{Keywords("自行车", "单车", "bike"), domain.TransportBike},
	},
}

var transportNames = map[domain.TransportType]string{
	domain.TransportFlight:  "航班",
	domain.TransportTrain:   "火车",
	domain.TransportBus:     "公交",
	domain.TransportTaxi:    "出租车",
	domain.TransportMetro:   "地铁",
	domain.TransportWalking: "步行",
	domain.TransportBike:    "自行车",
}

// ParseTransport parses the transport section with the built-in keywords.
func ParseTransport(text string, pctx Context) Outcome[domain.TransportationData] {
	return NewTransportParser(DefaultKeywords(domain.ModuleTransport))(text, pctx)
}

// NewTransportParser returns a transport parser bound to kw.
func NewTransportParser(kw SectionKeywords) Func[domain.TransportationData] {
	return func(text string, _ Context) Outcome[domain.TransportationData] {
		return runModule(domain.ModuleTransport, kw, text,
			"未找到交通相关信息",
			DefaultTransportation,
			buildTransport)
	}
}

func buildTransport(section string) domain.TransportationData {
	arrival := transportOptions(section, []string{"到达", "抵达", "机场", "火车站", "arrival", "airport", "station"})
	if len(arrival) == 0 {
		arrival = []domain.TransportOption{defaultArrivalOption()}
	}
	local := transportOptions(section, []string{"市内", "当地", "本地", "地铁", "公交", "local", "metro", "bus"})
	if len(local) == 0 {
		local = defaultLocalOptions()
	}
	return domain.TransportationData{
		Overview:       sectionOverview(section, "便捷的交通出行方案"),
		ArrivalOptions: arrival,
		LocalTransport: local,
		Routes:         extractRoutes(section),
		TransportCards: extractTransportCards(section),
		Tips:           orDefault(keywordItems(section, []string{"建议", "提醒", "注意", "小贴士", "tip", "advice"}), "选择合适的交通方式"),
	}
}

func transportOptions(section string, keywords []string) []domain.TransportOption {
	var out []domain.TransportOption
	for _, line := range nonBlankLines(section) {
		if !containsAny(strings.ToLower(line), keywords) {
			continue
		}
		if opt, ok := parseTransportOption(line); ok {
			out = append(out, opt)
		}
	}
	return out
}

// parseTransportOption builds an option from a line naming a transport mode.
// ok is false when no mode is recognised.
func parseTransportOption(line string) (domain.TransportOption, bool) {
	kind, ok := transportTypes.Lookup(line)
	if !ok {
		return domain.TransportOption{}, false
	}
	return domain.TransportOption{
		Type:        kind,
		Name:        transportNames[kind],
		Description: sx.CleanText(sx.StripMarkdown(line)),
		Cost:        transitCostOf(line),
		Duration:    transitDurationOf(line),
		Frequency:   firstSubmatch(line, transitFrequency),
		Tips:        inlineTips(line),
	}, true
}

func transitCostOf(line string) string {
	if prices := sx.ExtractPrices(line); len(prices) > 0 {
		return fmt.Sprintf("约¥%s", strconv.FormatFloat(prices[0], 'f', -1, 64))
	}
	return firstSubmatch(line, transitCost)
}

func transitDurationOf(line string) string {
	if info := sx.ExtractTimeInfo(line); len(info.Durations) > 0 {
		return info.Durations[0]
	}
	return firstSubmatch(line, transitDuration)
}

func inlineTips(line string) []string {
	var tips []string
	for _, re := range inlineTipRes {
		if m := re.FindStringSubmatch(line); m != nil {
			tips = append(tips, strings.TrimSpace(m[1]))
		}
	}
	return tips
}

func extractRoutes(section string) []domain.RouteInfo {
	out := []domain.RouteInfo{}
	for _, line := range nonBlankLines(section) {
		m := routeRe.FindStringSubmatch(sx.StripMarkdown(line))
		if m == nil {
			continue
		}
		options := []domain.TransportOption{}
		if opt, ok := parseTransportOption(line); ok {
			options = append(options, opt)
		}
		out = append(out, domain.RouteInfo{
			From:    strings.TrimSpace(m[1]),
			To:      strings.TrimSpace(m[2]),
			Options: options,
		})
	}
	return out
}

func extractTransportCards(section string) []domain.TransportCard {
	out := []domain.TransportCard{}
	for _, line := range nonBlankLines(section) {
		if !containsAny(strings.ToLower(line), []string{"交通卡", "一卡通", "地铁卡", "transport card", "metro card"}) {
			continue
		}
		plain := sx.StripMarkdown(line)
		name := firstSubmatch(plain, cardNameRes)
		if name == "" {
			name = "交通卡"
		}
		cost := "价格咨询"
		if prices := sx.ExtractPrices(line); len(prices) > 0 {
			cost = "¥" + strconv.FormatFloat(prices[0], 'f', -1, 64)
		}
		out = append(out, domain.TransportCard{
			Name:        name,
			Description: sx.CleanText(plain),
			Cost:        cost,
			Benefits:    []string{"便捷出行", "优惠票价"},
		})
	}
	return out
}
