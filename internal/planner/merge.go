package planner

import (
	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/port"
)

const (
	winnerModule = "module"
	winnerFixed  = "fixed"

	defaultBookingTips = "建议提前预订，关注官方渠道获取最新信息"
)

func defaultSpecialties() []string {
	return []string{"当地特色菜", "传统小吃"}
}

func defaultCultural() []domain.CulturalTip {
	return []domain.CulturalTip{
		{Category: domain.CulturalEtiquette, Title: "尊重当地文化", Description: "了解并尊重当地风俗习惯", Importance: domain.ImportanceMedium},
		{Category: domain.CulturalCustoms, Title: "遵守当地法规", Description: "遵守公共场所的规定和秩序", Importance: domain.ImportanceMedium},
	}
}

func defaultSafety() []domain.SafetyTip {
	return []domain.SafetyTip{
		{Category: domain.SafetyGeneral, Title: "保管好个人财物", Description: "证件和贵重物品随身妥善保管", Urgency: domain.UrgencyImportant},
		{Category: domain.SafetyGeneral, Title: "注意人身安全", Description: "夜间避免独自前往偏僻区域", Urgency: domain.UrgencyImportant},
	}
}

// merged holds the four fused module records and the winner of every field group.
type merged struct {
	accommodation domain.AccommodationData
	food          domain.FoodExperienceData
	transport     domain.TransportationData
	tips          domain.TravelTipsData
	provenance    map[string]string
}

// mergeBundle fuses module records (nil for a disabled module) with the
// enrichment bundle. Neither input is modified.
func mergeBundle(mods ModuleResults, bundle *port.EnrichmentBundle) merged {
	prov := make(map[string]string)
	return merged{
		accommodation: mergeAccommodation(mods.Accommodation.Data, bundle.Accommodation, prov),
		food:          mergeFood(mods.Food.Data, bundle.Food, prov),
		transport:     mergeTransport(mods.Transport.Data, bundle.Transport, prov),
		tips:          mergeTips(mods.Tips.Data, bundle.Tips, prov),
		provenance:    prov,
	}
}

// overlayString replaces *dst with src when src is set; enrichment wins.
func overlayString(dst *string, src string) bool {
	if src == "" {
		return false
	}
	*dst = src
	return true
}

func overlaySlice[T any](dst *[]T, src []T) bool {
	if len(src) == 0 {
		return false
	}
	*dst = src
	return true
}

// underlayString fills *dst from src only when *dst is empty; module wins.
func underlayString(dst *string, src string) bool {
	if *dst != "" || src == "" {
		return false
	}
	*dst = src
	return true
}

func underlaySlice[T any](dst *[]T, src []T) bool {
	if len(*dst) > 0 || len(src) == 0 {
		return false
	}
	*dst = src
	return true
}

// firstNonEmpty picks module, else enrichment, else fallback and records the winner.
func firstNonEmpty[T any](module, enrichment []T, source domain.Provenance, fallback func() []T, field string, prov map[string]string) []T {
	switch {
	case len(module) > 0:
		prov[field] = winnerModule
		return module
	case len(enrichment) > 0:
		prov[field] = string(source)
		return enrichment
	default:
		prov[field] = winnerFixed
		return fallback()
	}
}

func groupWinner(overlaid, hasModule bool, source domain.Provenance) string {
	switch {
	case overlaid:
		return string(source)
	case hasModule:
		return winnerModule
	default:
		return winnerFixed
	}
}

func mergeAccommodation(module *domain.AccommodationData, enr port.EnrichmentResult[domain.AccommodationData], prov map[string]string) domain.AccommodationData {
	out := parser.DefaultAccommodation()
	if module != nil {
		out = *module
	}

	overlaid := false
	if e := enr.Data; e != nil {
		overlaid = overlayString(&out.Overview, e.Overview) || overlaid
		overlaid = overlaySlice(&out.Recommendations, e.Recommendations) || overlaid
		overlaid = overlaySlice(&out.PriceRanges, e.PriceRanges) || overlaid
		overlaid = overlaySlice(&out.AmenitiesComparison, e.AmenitiesComparison) || overlaid
		overlaid = overlaySlice(&out.Amenities, e.Amenities) || overlaid
		overlaid = overlayString(&out.BudgetAdvice, e.BudgetAdvice) || overlaid
		overlaid = overlaySlice(&out.SeasonalConsiderations, e.SeasonalConsiderations) || overlaid
	}
	prov["accommodation"] = groupWinner(overlaid, module != nil, enr.Source)

	var moduleTips, enrTips string
	if module != nil {
		moduleTips = module.BookingTips
	}
	if enr.Data != nil {
		enrTips = enr.Data.BookingTips
	}
	switch {
	case moduleTips != "":
		out.BookingTips = moduleTips
		prov["accommodation.booking_tips"] = winnerModule
	case enrTips != "":
		out.BookingTips = enrTips
		prov["accommodation.booking_tips"] = string(enr.Source)
	default:
		out.BookingTips = defaultBookingTips
		prov["accommodation.booking_tips"] = winnerFixed
	}
	return out
}

func mergeFood(module *domain.FoodExperienceData, enr port.EnrichmentResult[domain.FoodExperienceData], prov map[string]string) domain.FoodExperienceData {
	out := parser.DefaultFood()
	var moduleSpecialties []string
	var moduleRestaurants []domain.FoodOption
	if module != nil {
		out = *module
		moduleSpecialties = module.Specialties
		moduleRestaurants = module.RecommendedRestaurants
	}

	var enrSpecialties []string
	var enrRestaurants []domain.FoodOption
	overlaid := false
	if e := enr.Data; e != nil {
		enrSpecialties = e.Specialties
		enrRestaurants = e.RecommendedRestaurants
		overlaid = overlayString(&out.Overview, e.Overview) || overlaid
		overlaid = overlaySlice(&out.FoodDistricts, e.FoodDistricts) || overlaid
		overlaid = overlayString(&out.BudgetGuide, e.BudgetGuide) || overlaid
		overlaid = overlayString(&out.DiningEtiquette, e.DiningEtiquette) || overlaid
		overlaid = overlaySlice(&out.LocalTips, e.LocalTips) || overlaid
		overlaid = overlaySlice(&out.DietaryConsiderations, e.DietaryConsiderations) || overlaid
	}
	prov["food"] = groupWinner(overlaid, module != nil, enr.Source)

	out.Specialties = firstNonEmpty(moduleSpecialties, enrSpecialties, enr.Source, defaultSpecialties, "food.specialties", prov)

	switch {
	case len(enrRestaurants) > 0:
		out.RecommendedRestaurants = enrRestaurants
		prov["food.recommended_restaurants"] = string(enr.Source)
	case len(moduleRestaurants) > 0:
		out.RecommendedRestaurants = moduleRestaurants
		prov["food.recommended_restaurants"] = winnerModule
	default:
		out.RecommendedRestaurants = []domain.FoodOption{}
		prov["food.recommended_restaurants"] = winnerFixed
	}
	return out
}

// mergeTransport takes the enrichment record wholesale when present.
func mergeTransport(module *domain.TransportationData, enr port.EnrichmentResult[domain.TransportationData], prov map[string]string) domain.TransportationData {
	switch {
	case enr.Data != nil:
		prov["transport"] = string(enr.Source)
		return *enr.Data
	case module != nil:
		prov["transport"] = winnerModule
		return *module
	default:
		prov["transport"] = winnerFixed
		return parser.DefaultTransportation()
	}
}

func mergeTips(module *domain.TravelTipsData, enr port.EnrichmentResult[domain.TravelTipsData], prov map[string]string) domain.TravelTipsData {
	out := parser.DefaultTips()
	var moduleWeather []domain.WeatherInfo
	var moduleCultural []domain.CulturalTip
	var moduleSafety []domain.SafetyTip
	if module != nil {
		out = *module
		moduleWeather = module.Weather
		moduleCultural = module.Cultural
		moduleSafety = module.Safety
	}

	var enrWeather []domain.WeatherInfo
	var enrCultural []domain.CulturalTip
	var enrSafety []domain.SafetyTip
	underlaid := false
	if e := enr.Data; e != nil {
		enrWeather = e.Weather
		enrCultural = e.Cultural
		enrSafety = e.Safety
		underlaid = underlayString(&out.Overview, e.Overview) || underlaid
		underlaid = underlaySlice(&out.Shopping, e.Shopping) || underlaid
		underlaid = underlaySlice(&out.EmergencyContacts, e.EmergencyContacts) || underlaid
		underlaid = underlaySlice(&out.BudgetTips, e.BudgetTips) || underlaid
		underlaid = underlaySlice(&out.PackingList, e.PackingList) || underlaid
	}
	prov["tips"] = groupWinner(underlaid && module == nil, module != nil, enr.Source)

	switch {
	case len(enrWeather) > 0:
		out.Weather = enrWeather
		prov["tips.weather"] = string(enr.Source)
	case len(moduleWeather) > 0:
		out.Weather = moduleWeather
		prov["tips.weather"] = winnerModule
	default:
		out.Weather = []domain.WeatherInfo{}
		prov["tips.weather"] = winnerFixed
	}

	out.Cultural = firstNonEmpty(moduleCultural, enrCultural, enr.Source, defaultCultural, "tips.cultural", prov)
	out.Safety = firstNonEmpty(moduleSafety, enrSafety, enr.Source, defaultSafety, "tips.safety", prov)
	return out
}
