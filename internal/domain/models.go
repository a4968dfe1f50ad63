package domain

import (
	"time"
)

// PlanMetadata is the caller-supplied header of a travel plan.
type PlanMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	TotalDays   int     `json:"total_days"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalCost   float64 `json:"total_cost"`
	GroupSize   int     `json:"group_size"`
}

// TravelPlan is the fused plan: metadata, overview, the four merged modules and
// the daily timeline.
type TravelPlan struct {
	PlanMetadata
	Overview       string             `json:"overview"`
	Accommodation  AccommodationData  `json:"accommodation"`
	FoodExperience FoodExperienceData `json:"food_experience"`
	Transportation TransportationData `json:"transportation"`
	Tips           TravelTipsData     `json:"tips"`
	Timeline       []TimelineActivity `json:"timeline"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TimelineActivity is one normalized block of an itinerary day.
type TimelineActivity struct {
	Time          string           `json:"time"`
	Period        Period           `json:"period"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      ActivityCategory `json:"category"`
	Icon          string           `json:"icon"`
	Cost          int              `json:"cost"`
	Duration      string           `json:"duration"`
	DisplayAccent string           `json:"display_accent"`
}

// AccommodationOption is a single lodging recommendation.
type AccommodationOption struct {
	Name          string            `json:"name"`
	Type          AccommodationType `json:"type"`
	Amenities     []string          `json:"amenities"`
	Address       string            `json:"address,omitempty"`
	Rating        float64           `json:"rating,omitempty"`
	PricePerNight float64           `json:"price_per_night,omitempty"`
	PriceRange    string            `json:"price_range"`
}

// AmenityComparison lists amenities mentioned for one named lodging.
type AmenityComparison struct {
	Name      string   `json:"name"`
	Amenities []string `json:"amenities"`
}

// AccommodationData is the accommodation module record.
type AccommodationData struct {
	Overview               string                `json:"overview"`
	Recommendations        []AccommodationOption `json:"recommendations"`
	BookingTips            string                `json:"booking_tips"`
	PriceRanges            []string              `json:"price_ranges"`
	AmenitiesComparison    []AmenityComparison   `json:"amenities_comparison"`
	Amenities              []string              `json:"amenities"`
	BudgetAdvice           string                `json:"budget_advice"`
	SeasonalConsiderations []string              `json:"seasonal_considerations"`
}

// FoodOption is a single restaurant or food venue.
type FoodOption struct {
	Name          string         `json:"name"`
	Type          RestaurantType `json:"type"`
	Cuisine       string         `json:"cuisine"`
	Specialties   []string       `json:"specialties"`
	Address       string         `json:"address,omitempty"`
	Rating        float64        `json:"rating,omitempty"`
	AveragePrice  float64        `json:"average_price,omitempty"`
	PriceRange    string         `json:"price_range"`
	OpeningHours  string         `json:"opening_hours,omitempty"`
	MustTryDishes []string       `json:"must_try_dishes,omitempty"`
}

// FoodDistrict is a street or market known for food.
type FoodDistrict struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// FoodExperienceData is the food module record.
type FoodExperienceData struct {
	Overview               string         `json:"overview"`
	Specialties            []string       `json:"specialties"`
	RecommendedRestaurants []FoodOption   `json:"recommended_restaurants"`
	FoodDistricts          []FoodDistrict `json:"food_districts"`
	BudgetGuide            string         `json:"budget_guide"`
	DiningEtiquette        string         `json:"dining_etiquette"`
	LocalTips              []string       `json:"local_tips"`
	DietaryConsiderations  []string       `json:"dietary_considerations"`
}

// TransportOption is one way of getting somewhere.
type TransportOption struct {
	Type        TransportType `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Cost        string        `json:"cost,omitempty"`
	Duration    string        `json:"duration,omitempty"`
	Frequency   string        `json:"frequency,omitempty"`
	Tips        []string      `json:"tips,omitempty"`
}

// RouteInfo is a from/to leg with its transport options.
type RouteInfo struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Options []TransportOption `json:"options"`
}

// TransportCard is a stored-value or pass card.
type TransportCard struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        string   `json:"cost"`
	Benefits    []string `json:"benefits"`
}

// TransportationData is the transport module record.
type TransportationData struct {
	Overview       string            `json:"overview"`
	ArrivalOptions []TransportOption `json:"arrival_options"`
	LocalTransport []TransportOption `json:"local_transport"`
	Routes         []RouteInfo       `json:"routes"`
	TransportCards []TransportCard   `json:"transport_cards"`
	Tips           []string          `json:"tips"`
}

// WeatherInfo describes the weather for a season or month.
type WeatherInfo struct {
	Season      string   `json:"season"`
	Temperature string   `json:"temperature"`
	Rainfall    string   `json:"rainfall"`
	Clothing    []string `json:"clothing"`
}

// CulturalTip is an etiquette or customs note.
type CulturalTip struct {
	Category    CulturalCategory `json:"category"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Importance  Importance       `json:"importance"`
}

// SafetyTip is a safety note.
type SafetyTip struct {
	Category    SafetyCategory `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Urgency     Urgency        `json:"urgency"`
}

// ShoppingInfo describes what to buy and where.
type ShoppingInfo struct {
	Category       string   `json:"category"`
	Items          []string `json:"items"`
	Locations      []string `json:"locations"`
	BargainingTips []string `json:"bargaining_tips,omitempty"`
}

// EmergencyContact is a phone number for an emergency service.
type EmergencyContact struct {
	Service     string `json:"service"`
	Number      string `json:"number"`
	Description string `json:"description,omitempty"`
}

// TravelTipsData is the tips module record.
type TravelTipsData struct {
	Overview          string             `json:"overview"`
	Weather           []WeatherInfo      `json:"weather"`
	Cultural          []CulturalTip      `json:"cultural"`
	Safety            []SafetyTip        `json:"safety"`
	Shopping          []ShoppingInfo     `json:"shopping"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
	BudgetTips        []string           `json:"budget_tips"`
	PackingList       []string           `json:"packing_list"`
}
