package parser

import (
	"regexp"
	"strings"

	"travelfuse/internal/domain"
)

var (
	restaurantNameRes = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.\s*.+(?:餐厅|酒楼|饭店|小吃|店)`),
		regexp.MustCompile(`^[-*•]\s*.+(?:餐厅|酒楼|饭店|小吃|店)`),
		regexp.MustCompile(`(?i)\b(?:restaurant|cafe|bar|bistro)\b`),
	}
	specialtyPrefixRe = regexp.MustCompile(`(?i)^.*(?:特色菜?|招牌菜?|必吃)[：:]\s*`)
	cuisinePrefixRe   = regexp.MustCompile(`(?i)^.*(?:菜系|cuisine)[：:]\s*`)
	foodAddressRe     = regexp.MustCompile(`^.*(?:地址|位于)[：:]\s*`)
	districtNameRe    = regexp.MustCompile(`^(.+?(?:美食街|小吃街|夜市|市场|街))`)
)

var restaurantTypes = Table[domain.RestaurantType]{
	Rules: []Rule[domain.RestaurantType]{
		{Keywords("cafe", "咖啡"), domain.RestaurantCafe},
		{Keywords("bar", "酒吧"), domain.RestaurantBar},
		{Keywords("小吃", "摊", "street food"), domain.RestaurantStreetFood},
		{Keywords("市场", "market"), domain.RestaurantMarket},
	},
	Default: domain.RestaurantStandard,
}

// ParseFood parses the food section with the built-in keywords.
func ParseFood(text string, pctx Context) Outcome[domain.FoodExperienceData] {
	return NewFoodParser(DefaultKeywords(domain.ModuleFood))(text, pctx)
}

// NewFoodParser returns a food parser bound to kw.
func NewFoodParser(kw SectionKeywords) Func[domain.FoodExperienceData] {
	return func(text string, _ Context) Outcome[domain.FoodExperienceData] {
		return runModule(domain.ModuleFood, kw, text,
			"未找到美食相关信息，将使用默认数据",
			DefaultFood,
			buildFood)
	}
}

func buildFood(section string) domain.FoodExperienceData {
	return domain.FoodExperienceData{
		Overview:               sectionOverview(section, "探索当地特色美食文化"),
		Specialties:            extractSpecialties(section),
		RecommendedRestaurants: extractRestaurants(section),
		FoodDistricts:          extractFoodDistricts(section),
		BudgetGuide:            firstLineWith(section, []string{"预算", "价格", "消费", "人均"}, "人均消费: 50-150元，根据餐厅档次有所不同"),
		DiningEtiquette:        firstLineWith(section, []string{"礼仪", "注意", "文化", "习俗"}, "尊重当地饮食文化，注意用餐礼仪，适量点餐避免浪费"),
		LocalTips:              orDefault(keywordItems(section, []string{"建议", "提醒", "小贴士", "tip", "advice"}), "尝试当地特色菜肴"),
		DietaryConsiderations:  linesWith(section, []string{"素食", "清真", "过敏", "忌口", "vegetarian", "halal", "allergy"}),
	}
}

// extractSpecialties returns dish names from lines mentioning specialties.
// Empty when none are named, so a caller can prefer another source.
func extractSpecialties(section string) []string {
	out := []string{}
	for _, line := range nonBlankLines(section) {
		if !containsAny(strings.ToLower(line), []string{"特色", "招牌", "必吃", "特产", "specialty", "signature"}) {
			continue
		}
		body := specialtyPrefixRe.ReplaceAllString(sx.StripMarkdown(line), "")
		if body == sx.StripMarkdown(line) {
			if sx.IsListItem(line) {
				out = appendUnique(out, body)
			}
			continue
		}
		out = appendUnique(out, splitEnumeration(body)...)
	}
	return out
}

func isRestaurantName(line string) bool {
	for _, re := range restaurantNameRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func extractRestaurants(section string) []domain.FoodOption {
	var (
		out     []domain.FoodOption
		current *domain.FoodOption
	)
	for _, line := range nonBlankLines(section) {
		if isRestaurantName(line) {
			if current != nil {
				out = append(out, finalizeRestaurant(*current))
			}
			current = &domain.FoodOption{
				Name:        cleanEntryName(line),
				Type:        restaurantTypes.Classify(line),
				Specialties: []string{},
			}
			continue
		}
		if current != nil {
			applyRestaurantDetail(line, current)
		}
	}
	if current != nil {
		out = append(out, finalizeRestaurant(*current))
	}
	if len(out) == 0 {
		out = append(out, defaultFoodOption())
	}
	return out
}

func applyRestaurantDetail(line string, opt *domain.FoodOption) {
	lower := strings.ToLower(line)
	plain := sx.StripMarkdown(line)
	if prices := sx.ExtractPrices(line); len(prices) > 0 {
		opt.AveragePrice = prices[0]
	}
	if ratings := sx.ExtractRatings(line); len(ratings) > 0 {
		opt.Rating = ratings[0]
	}
	if strings.Contains(lower, "菜系") || strings.Contains(lower, "cuisine") {
		opt.Cuisine = strings.TrimSpace(cuisinePrefixRe.ReplaceAllString(plain, ""))
	}
	if containsAny(lower, []string{"招牌", "推荐", "必点"}) {
		if body, ok := afterColon(plain); ok {
			opt.MustTryDishes = splitEnumeration(body)
		}
	}
	if info := sx.ExtractTimeInfo(line); len(info.Times) > 0 {
		opt.OpeningHours = strings.Join(info.Times, " - ")
	}
	if strings.Contains(lower, "地址") || strings.Contains(lower, "位于") {
		opt.Address = strings.TrimSpace(foodAddressRe.ReplaceAllString(plain, ""))
	}
}

func finalizeRestaurant(opt domain.FoodOption) domain.FoodOption {
	if opt.Name == "" {
		opt.Name = "推荐餐厅"
	}
	if opt.Cuisine == "" {
		opt.Cuisine = "当地菜系"
	}
	opt.PriceRange = FoodPriceTier(opt.AveragePrice)
	return opt
}

// FoodPriceTier names the budget tier of an average meal price.
func FoodPriceTier(price float64) string {
	switch {
	case price <= 0:
		return "价格适中"
	case price < 50:
		return "经济实惠"
	case price < 150:
		return "价格适中"
	case price < 300:
		return "稍贵"
	default:
		return "高端消费"
	}
}

func extractFoodDistricts(section string) []domain.FoodDistrict {
	out := []domain.FoodDistrict{}
	for _, line := range nonBlankLines(section) {
		if !containsAny(strings.ToLower(line), []string{"美食街", "小吃街", "夜市", "市场", "food street", "market"}) {
			continue
		}
		plain := sx.StripMarkdown(line)
		name := "美食区域"
		if m := districtNameRe.FindStringSubmatch(plain); m != nil {
			name = strings.TrimSpace(m[1])
		}
		desc, _ := afterColon(plain)
		if desc == "" {
			desc = "当地知名美食聚集地"
		}
		var highlights []string
		if body, ok := afterColon(plain); ok {
			highlights = splitEnumeration(body)
		}
		if highlights == nil {
			highlights = []string{}
		}
		out = append(out, domain.FoodDistrict{Name: name, Description: desc, Highlights: highlights})
	}
	return out
}

func firstLineWith(section string, keywords []string, fallback string) string {
	for _, line := range nonBlankLines(section) {
		if containsAny(strings.ToLower(line), keywords) {
			return sx.StripMarkdown(line)
		}
	}
	return fallback
}

func linesWith(section string, keywords []string) []string {
	out := []string{}
	for _, line := range nonBlankLines(section) {
		if containsAny(strings.ToLower(line), keywords) {
			out = append(out, sx.CleanText(sx.StripMarkdown(line)))
		}
	}
	return out
}

func orDefault(items []string, fallback ...string) []string {
	if len(items) == 0 {
		return append([]string{}, fallback...)
	}
	return items
}
