package parser

import "travelfuse/internal/domain"

// Canned records returned when a module's section is missing or its parser fails.

func defaultAccommodationOption() domain.AccommodationOption {
	return domain.AccommodationOption{
		Name:       "推荐住宿",
		Type:       domain.AccommodationHotel,
		Amenities:  []string{"免费WiFi", "24小时前台"},
		PriceRange: "根据预算选择",
	}
}

func defaultPriceRanges() []string {
	return []string{"经济型: 200-400元", "舒适型: 400-800元", "豪华型: 800元以上"}
}

// DefaultAccommodation returns the canned accommodation record.
func DefaultAccommodation() domain.AccommodationData {
	return domain.AccommodationData{
		Overview:               "为您推荐优质住宿选择",
		Recommendations:        []domain.AccommodationOption{defaultAccommodationOption()},
		BookingTips:            "建议提前预订以获得更好的价格，选择交通便利的位置",
		PriceRanges:            defaultPriceRanges(),
		AmenitiesComparison:    []domain.AmenityComparison{},
		Amenities:              []string{},
		BudgetAdvice:           "根据预算选择合适的住宿类型",
		SeasonalConsiderations: []string{},
	}
}

func defaultFoodOption() domain.FoodOption {
	return domain.FoodOption{
		Name:        "当地特色餐厅",
		Type:        domain.RestaurantStandard,
		Cuisine:     "当地菜系",
		Specialties: []string{"当地特色菜"},
		PriceRange:  "价格适中",
	}
}

// DefaultFood returns the canned food record.
func DefaultFood() domain.FoodExperienceData {
	return domain.FoodExperienceData{
		Overview:               "探索当地特色美食文化",
		Specialties:            []string{"当地特色美食", "传统小吃", "特色饮品"},
		RecommendedRestaurants: []domain.FoodOption{defaultFoodOption()},
		FoodDistricts:          []domain.FoodDistrict{},
		BudgetGuide:            "人均消费: 50-150元，根据餐厅档次有所不同",
		DiningEtiquette:        "尊重当地饮食文化，注意用餐礼仪，适量点餐避免浪费",
		LocalTips:              []string{"尝试当地特色菜肴"},
		DietaryConsiderations:  []string{},
	}
}

func defaultArrivalOption() domain.TransportOption {
	return domain.TransportOption{Type: domain.TransportFlight, Name: "航班", Description: "便捷的到达方式"}
}

func defaultLocalOptions() []domain.TransportOption {
	return []domain.TransportOption{
		{Type: domain.TransportMetro, Name: "地铁", Description: "快速便捷的市内交通"},
		{Type: domain.TransportBus, Name: "公交", Description: "经济实惠的出行选择"},
	}
}

// DefaultTransportation returns the flight, metro and bus skeleton.
func DefaultTransportation() domain.TransportationData {
	return domain.TransportationData{
		Overview:       "便捷的交通出行方案",
		ArrivalOptions: []domain.TransportOption{defaultArrivalOption()},
		LocalTransport: defaultLocalOptions(),
		Routes:         []domain.RouteInfo{},
		TransportCards: []domain.TransportCard{},
		Tips:           []string{"选择合适的交通方式"},
	}
}

func defaultWeather() domain.WeatherInfo {
	return domain.WeatherInfo{
		Season:      "全年",
		Temperature: "当季适宜",
		Rainfall:    "正常",
		Clothing:    []string{"根据季节准备"},
	}
}

// DefaultTips returns the canned tips record.
func DefaultTips() domain.TravelTipsData {
	return domain.TravelTipsData{
		Overview:          "实用的旅行贴士和建议",
		Weather:           []domain.WeatherInfo{defaultWeather()},
		Cultural:          []domain.CulturalTip{},
		Safety:            []domain.SafetyTip{},
		Shopping:          []domain.ShoppingInfo{},
		EmergencyContacts: []domain.EmergencyContact{},
		BudgetTips:        []string{"合理规划预算"},
		PackingList:       []string{},
	}
}
