package parser

import (
	"regexp"
	"strings"

	"travelfuse/internal/domain"
)

var (
	lodgingNameRes = []*regexp.Regexp{
		regexp.MustCompile(`^\d+\.\s*.+(?:酒店|旅馆|民宿|客栈)`),
		regexp.MustCompile(`^[-*•]\s*.+(?:酒店|旅馆|民宿|客栈)`),
		regexp.MustCompile(`(?i)\b(?:hotel|resort|inn|lodge)\b`),
	}
	trailingDetailRe  = regexp.MustCompile(`[：:].*$`)
	lodgingAddressRe  = regexp.MustCompile(`(?i)^.*(?:地址|位于|address)[：:]\s*`)
	priceRangeTokenRe = regexp.MustCompile(`\d+[-~]\d+元|经济型|舒适型|豪华型|预算|中档|高端`)
	comparisonHotelRe = regexp.MustCompile(`^(?:\d+\.\s*)?([^-]+(?:酒店|宾馆|旅馆|民宿|客栈))`)
	amenityTokenRe    = regexp.MustCompile(`(?i)wifi|停车|健身|游泳|早餐|空调|电视|冰箱`)
)

var accommodationTypes = Table[domain.AccommodationType]{
	Rules: []Rule[domain.AccommodationType]{
		{Keywords("resort", "度假"), domain.AccommodationResort},
		{Keywords("hostel", "青旅"), domain.AccommodationHostel},
		{Keywords("apartment", "公寓"), domain.AccommodationApartment},
		{Keywords("民宿", "客栈", "guesthouse"), domain.AccommodationGuesthouse},
	},
	Default: domain.AccommodationHotel,
}

// ParseAccommodation parses the accommodation section with the built-in keywords.
func ParseAccommodation(text string, pctx Context) Outcome[domain.AccommodationData] {
	return NewAccommodationParser(DefaultKeywords(domain.ModuleAccommodation))(text, pctx)
}

// NewAccommodationParser returns an accommodation parser bound to kw.
func NewAccommodationParser(kw SectionKeywords) Func[domain.AccommodationData] {
	return func(text string, _ Context) Outcome[domain.AccommodationData] {
		return runModule(domain.ModuleAccommodation, kw, text,
			"未找到住宿相关信息，将使用默认数据",
			DefaultAccommodation,
			buildAccommodation)
	}
}

func buildAccommodation(section string) domain.AccommodationData {
	return domain.AccommodationData{
		Overview:               sectionOverview(section, "为您推荐优质住宿选择"),
		Recommendations:        extractLodgings(section),
		BookingTips:            extractBookingTips(section),
		PriceRanges:            extractPriceRanges(section),
		AmenitiesComparison:    extractAmenitiesComparison(section),
		Amenities:              extractAmenityHighlights(section),
		BudgetAdvice:           extractBudgetAdvice(section),
		SeasonalConsiderations: extractSeasonal(section),
	}
}

func isLodgingName(line string) bool {
	for _, re := range lodgingNameRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func cleanEntryName(line string) string {
	name := sx.StripMarkdown(line)
	name = trailingDetailRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func extractLodgings(section string) []domain.AccommodationOption {
	var (
		out     []domain.AccommodationOption
		current *domain.AccommodationOption
	)
	for _, line := range nonBlankLines(section) {
		if isLodgingName(line) {
			if current != nil {
				out = append(out, finalizeLodging(*current))
			}
			current = &domain.AccommodationOption{
				Name:      cleanEntryName(line),
				Type:      accommodationTypes.Classify(line),
				Amenities: []string{},
			}
			continue
		}
		if current != nil {
			applyLodgingDetail(line, current)
		}
	}
	if current != nil {
		out = append(out, finalizeLodging(*current))
	}
	if len(out) == 0 {
		out = append(out, defaultAccommodationOption())
	}
	return out
}

func applyLodgingDetail(line string, opt *domain.AccommodationOption) {
	lower := strings.ToLower(line)
	if prices := sx.ExtractPrices(line); len(prices) > 0 {
		opt.PricePerNight = prices[0]
	}
	if ratings := sx.ExtractRatings(line); len(ratings) > 0 {
		opt.Rating = ratings[0]
	}
	if strings.Contains(lower, "设施") || strings.Contains(lower, "amenities") {
		body, _ := afterColon(sx.StripMarkdown(line))
		opt.Amenities = appendUnique(opt.Amenities, splitEnumeration(body)...)
	}
	if containsAny(lower, []string{"地址", "位于", "address"}) {
		opt.Address = strings.TrimSpace(lodgingAddressRe.ReplaceAllString(sx.StripMarkdown(line), ""))
	}
}

func finalizeLodging(opt domain.AccommodationOption) domain.AccommodationOption {
	if opt.Name == "" {
		opt.Name = "推荐住宿"
	}
	opt.PriceRange = LodgingPriceTier(opt.PricePerNight)
	return opt
}

// LodgingPriceTier names the budget tier of a nightly price.
func LodgingPriceTier(price float64) string {
	switch {
	case price <= 0:
		return "价格面议"
	case price < 200:
		return "经济型"
	case price < 500:
		return "舒适型"
	case price < 1000:
		return "豪华型"
	default:
		return "奢华型"
	}
}

// extractBookingTips collects booking lines and the list items following the
// first of them. Empty when the section says nothing about booking.
func extractBookingTips(section string) string {
	var tips []string
	inTips := false
	for _, line := range nonBlankLines(section) {
		lower := strings.ToLower(line)
		if containsAny(lower, []string{"预订", "预定", "booking"}) {
			inTips = true
			tips = append(tips, sx.StripMarkdown(line))
			continue
		}
		if inTips && sx.IsListItem(line) && containsAny(lower, []string{"建议", "注意", "tip"}) {
			tips = append(tips, sx.StripMarkdown(line))
		}
	}
	return strings.Join(tips, "；")
}

func extractPriceRanges(section string) []string {
	var ranges []string
	for _, line := range nonBlankLines(section) {
		ranges = append(ranges, priceRangeTokenRe.FindAllString(line, -1)...)
	}
	if len(ranges) == 0 {
		return defaultPriceRanges()
	}
	return ranges
}

func extractAmenitiesComparison(section string) []domain.AmenityComparison {
	out := []domain.AmenityComparison{}
	var (
		hotel     string
		amenities []string
	)
	flush := func() {
		if hotel != "" && len(amenities) > 0 {
			out = append(out, domain.AmenityComparison{Name: hotel, Amenities: amenities})
		}
	}
	for _, line := range nonBlankLines(section) {
		if m := comparisonHotelRe.FindStringSubmatch(sx.StripMarkdown(line)); m != nil {
			flush()
			hotel = strings.TrimSpace(m[1])
			amenities = nil
		}
		if hotel != "" {
			amenities = append(amenities, amenityTokenRe.FindAllString(line, -1)...)
		}
	}
	flush()
	return out
}

func extractAmenityHighlights(section string) []string {
	out := []string{}
	return appendUnique(out, amenityTokenRe.FindAllString(section, -1)...)
}

func extractBudgetAdvice(section string) string {
	for _, line := range nonBlankLines(section) {
		if containsAny(strings.ToLower(line), []string{"预算", "费用", "价格", "budget", "cost"}) {
			return sx.CleanText(sx.StripMarkdown(line))
		}
	}
	return "根据预算选择合适的住宿类型"
}

func extractSeasonal(section string) []string {
	out := []string{}
	for _, line := range nonBlankLines(section) {
		if containsAny(strings.ToLower(line), []string{"季节", "淡季", "旺季", "season", "peak"}) {
			out = append(out, sx.CleanText(sx.StripMarkdown(line)))
		}
	}
	return out
}
