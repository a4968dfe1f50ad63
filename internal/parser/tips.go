package parser

import (
	"regexp"
	"strings"

	"travelfuse/internal/domain"
)

var (
	seasonRes = []*regexp.Regexp{
		regexp.MustCompile(`(春季|夏季|秋季|冬季)`),
		regexp.MustCompile(`(?i)\b(spring|summer|autumn|winter)\b`),
		regexp.MustCompile(`(\d+月)`),
	}
	temperatureRes = []*regexp.Regexp{
		regexp.MustCompile(`温度[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`气温[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`(\d+[-~]\d+\s*(?:°[CF]?|℃)?)`),
	}
	rainfallRes = []*regexp.Regexp{
		regexp.MustCompile(`降雨[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`雨量[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`(多雨|少雨|干燥|湿润)`),
	}
	tipTitleRes = []*regexp.Regexp{
		regexp.MustCompile(`^[-*•]\s*([^：:]+)[：:]`),
		regexp.MustCompile(`^\d+\.\s*([^：:]+)[：:]`),
	}
	shoppingCategoryRes = []*regexp.Regexp{
		regexp.MustCompile(`购买\s*([^，。\n]+)`),
		regexp.MustCompile(`特产[：:]?\s*([^，。\n]+)`),
		regexp.MustCompile(`纪念品[：:]?\s*([^，。\n]+)`),
	}
	shoppingLocationRes = []*regexp.Regexp{
		regexp.MustCompile(`在\s*([^，。\n]+?)\s*购买`),
		regexp.MustCompile(`地点[：:]?\s*([^，。\n]+)`),
	}
	phoneRe   = regexp.MustCompile(`\d{3,4}[-\s]?\d{3,8}|\b1\d{2}\b`)
	serviceRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(报警|警察|police)`),
		regexp.MustCompile(`(?i)(急救|医院|hospital)`),
		regexp.MustCompile(`(?i)(消防|fire)`),
	}
)

var (
	weatherKeywords   = []string{"天气", "气候", "温度", "气温", "降雨", "weather", "climate", "temperature"}
	culturalKeywords  = []string{"文化", "礼仪", "习俗", "传统", "culture", "custom", "etiquette"}
	safetyKeywords    = []string{"安全", "注意", "小心", "防范", "safety", "security", "caution"}
	shoppingKeywords  = []string{"购物", "特产", "纪念品", "shopping", "souvenir"}
	emergencyKeywords = []string{"紧急", "急救", "报警", "emergency", "police", "hospital"}
	budgetKeywords    = []string{"预算", "省钱", "费用", "budget", "save", "cost"}
	packingKeywords   = []string{"行李", "打包", "携带", "packing", "luggage", "bring"}
	clothingKeywords  = []string{"穿着", "服装", "衣物", "穿", "clothing", "wear"}
	bargainKeywords   = []string{"砍价", "讨价", "还价", "bargain"}
)

var culturalCategories = Table[domain.CulturalCategory]{
	Rules: []Rule[domain.CulturalCategory]{
		{Keywords("礼仪", "etiquette"), domain.CulturalEtiquette},
		{Keywords("语言", "language"), domain.CulturalLanguage},
		{Keywords("宗教", "religion"), domain.CulturalReligion},
		{Keywords("社交", "social"), domain.CulturalSocial},
	},
	Default: domain.CulturalCustoms,
}

var importanceLevels = Table[domain.Importance]{
	Rules: []Rule[domain.Importance]{
		{Keywords("重要", "必须", "important"), domain.ImportanceHigh},
		{Keywords("建议", "推荐", "recommend"), domain.ImportanceMedium},
	},
	Default: domain.ImportanceLow,
}

var safetyCategories = Table[domain.SafetyCategory]{
	Rules: []Rule[domain.SafetyCategory]{
		{Keywords("健康", "health"), domain.SafetyHealth},
		{Keywords("紧急", "emergency"), domain.SafetyEmergency},
		{Keywords("诈骗", "scam"), domain.SafetyScam},
		{Keywords("交通", "transport"), domain.SafetyTransport},
	},
	Default: domain.SafetyGeneral,
}

var urgencyLevels = Table[domain.Urgency]{
	Rules: []Rule[domain.Urgency]{
		{Keywords("危险", "紧急", "critical"), domain.UrgencyCritical},
		{Keywords("重要", "注意", "important"), domain.UrgencyImportant},
	},
	Default: domain.UrgencyAdvisory,
}

// ParseTips parses the tips section with the built-in keywords.
func ParseTips(text string, pctx Context) Outcome[domain.TravelTipsData] {
	return NewTipsParser(DefaultKeywords(domain.ModuleTips))(text, pctx)
}

// NewTipsParser returns a tips parser bound to kw.
func NewTipsParser(kw SectionKeywords) Func[domain.TravelTipsData] {
	return func(text string, _ Context) Outcome[domain.TravelTipsData] {
		return runModule(domain.ModuleTips, kw, text,
			"未找到实用贴士信息",
			DefaultTips,
			buildTips)
	}
}

// buildTips classifies every line of the section independently into the
// seven tip lists. A line may land in none, one or several of them.
func buildTips(section string) domain.TravelTipsData {
	data := domain.TravelTipsData{
		Overview:          sectionOverview(section, "实用的旅行贴士和建议"),
		Weather:           []domain.WeatherInfo{},
		Cultural:          []domain.CulturalTip{},
		Safety:            []domain.SafetyTip{},
		Shopping:          []domain.ShoppingInfo{},
		EmergencyContacts: []domain.EmergencyContact{},
		BudgetTips:        []string{},
		PackingList:       []string{},
	}

	for _, line := range nonBlankLines(section) {
		lower := strings.ToLower(line)
		if containsAny(lower, weatherKeywords) {
			if w, ok := parseWeather(line); ok {
				data.Weather = append(data.Weather, w)
			}
		}
		if containsAny(lower, culturalKeywords) {
			data.Cultural = append(data.Cultural, domain.CulturalTip{
				Category:    culturalCategories.Classify(line),
				Title:       tipTitle(line, "文化贴士"),
				Description: sx.CleanText(sx.StripMarkdown(line)),
				Importance:  importanceLevels.Classify(line),
			})
		}
		if containsAny(lower, safetyKeywords) {
			data.Safety = append(data.Safety, domain.SafetyTip{
				Category:    safetyCategories.Classify(line),
				Title:       tipTitle(line, "安全提醒"),
				Description: sx.CleanText(sx.StripMarkdown(line)),
				Urgency:     urgencyLevels.Classify(line),
			})
		}
		if containsAny(lower, shoppingKeywords) {
			if s, ok := parseShopping(line); ok {
				data.Shopping = append(data.Shopping, s)
			}
		}
		if containsAny(lower, emergencyKeywords) {
			if c, ok := parseEmergencyContact(line); ok {
				data.EmergencyContacts = append(data.EmergencyContacts, c)
			}
		}
		if containsAny(lower, budgetKeywords) {
			data.BudgetTips = append(data.BudgetTips, listBodyOrLine(line))
		}
		if containsAny(lower, packingKeywords) {
			if body, ok := afterColon(sx.StripMarkdown(line)); ok {
				data.PackingList = appendUnique(data.PackingList, splitEnumeration(body)...)
			} else {
				data.PackingList = appendUnique(data.PackingList, sx.ExtractListItems(line, 1)...)
			}
		}
	}

	if len(data.Weather) == 0 {
		data.Weather = append(data.Weather, defaultWeather())
	}
	if len(data.BudgetTips) == 0 {
		data.BudgetTips = []string{"合理规划预算"}
	}
	return data
}

func parseWeather(line string) (domain.WeatherInfo, bool) {
	season := firstSubmatch(line, seasonRes)
	temperature := firstSubmatch(line, temperatureRes)
	if season == "" && temperature == "" {
		return domain.WeatherInfo{}, false
	}
	w := defaultWeather()
	if season != "" {
		w.Season = season
	}
	if temperature != "" {
		w.Temperature = temperature
	}
	if rain := firstSubmatch(line, rainfallRes); rain != "" {
		w.Rainfall = rain
	}
	if containsAny(strings.ToLower(line), clothingKeywords) {
		if body, ok := afterColon(sx.StripMarkdown(line)); ok {
			if items := splitEnumeration(body); len(items) > 1 {
				w.Clothing = items
			}
		}
	}
	return w, true
}

func tipTitle(line, fallback string) string {
	if t := firstSubmatch(strings.ReplaceAll(line, "**", ""), tipTitleRes); t != "" {
		return t
	}
	return fallback
}

func parseShopping(line string) (domain.ShoppingInfo, bool) {
	category := firstSubmatch(line, shoppingCategoryRes)
	var items []string
	if body, ok := afterColon(sx.StripMarkdown(line)); ok {
		items = splitEnumeration(body)
	}
	if category == "" && len(items) == 0 {
		return domain.ShoppingInfo{}, false
	}
	info := domain.ShoppingInfo{
		Category:  category,
		Items:     items,
		Locations: []string{},
	}
	if info.Category == "" {
		info.Category = "特产购物"
	}
	if len(info.Items) == 0 {
		info.Items = []string{"当地特产"}
	}
	for _, re := range shoppingLocationRes {
		if m := re.FindStringSubmatch(line); m != nil {
			info.Locations = append(info.Locations, strings.TrimSpace(m[1]))
		}
	}
	if len(info.Locations) == 0 {
		info.Locations = []string{"商业区"}
	}
	if containsAny(strings.ToLower(line), bargainKeywords) {
		info.BargainingTips = []string{sx.CleanText(sx.StripMarkdown(line))}
	}
	return info, true
}

func parseEmergencyContact(line string) (domain.EmergencyContact, bool) {
	number := phoneRe.FindString(line)
	if number == "" {
		return domain.EmergencyContact{}, false
	}
	service := firstSubmatch(line, serviceRe)
	if service == "" {
		service = "紧急服务"
	}
	return domain.EmergencyContact{
		Service:     service,
		Number:      number,
		Description: sx.CleanText(sx.StripMarkdown(line)),
	}, true
}

func listBodyOrLine(line string) string {
	if items := sx.ExtractListItems(line, 1); len(items) > 0 {
		return sx.StripMarkdown(items[0])
	}
	return sx.CleanText(sx.StripMarkdown(line))
}
