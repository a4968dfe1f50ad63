package domain

// ModuleName identifies one of the four text-parsed plan modules.
type ModuleName string

const (
	ModuleAccommodation ModuleName = "accommodation"
	ModuleFood          ModuleName = "food"
	ModuleTransport     ModuleName = "transport"
	ModuleTips          ModuleName = "tips"
)

// AllModules lists the modules in their fixed aggregation order.
var AllModules = []ModuleName{ModuleAccommodation, ModuleFood, ModuleTransport, ModuleTips}

// ValidModuleName reports whether s names a known module.
func ValidModuleName(s string) bool {
	for _, m := range AllModules {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Provenance records where a piece of enrichment data came from.
type Provenance string

const (
	ProvenanceAPI     Provenance = "api"
	ProvenanceCache   Provenance = "cache"
	ProvenanceDefault Provenance = "default"
)

// Period is the semantic time-of-day bucket of a timeline activity.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodNoon      Period = "noon"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// ActivityCategory classifies a timeline activity for display.
type ActivityCategory string

const (
	CategorySightseeing ActivityCategory = "sightseeing"
	CategoryFood        ActivityCategory = "food"
	CategoryShopping    ActivityCategory = "shopping"
	CategoryRest        ActivityCategory = "rest"
	CategoryTransport   ActivityCategory = "transport"
	CategoryOther       ActivityCategory = "other"
)

// AccommodationType is the kind of lodging a recommendation describes.
type AccommodationType string

const (
	AccommodationHotel      AccommodationType = "hotel"
	AccommodationHostel     AccommodationType = "hostel"
	AccommodationApartment  AccommodationType = "apartment"
	AccommodationResort     AccommodationType = "resort"
	AccommodationGuesthouse AccommodationType = "guesthouse"
)

// RestaurantType is the kind of food venue.
type RestaurantType string

const (
	RestaurantStandard   RestaurantType = "restaurant"
	RestaurantStreetFood RestaurantType = "street_food"
	RestaurantMarket     RestaurantType = "market"
	RestaurantCafe       RestaurantType = "cafe"
	RestaurantBar        RestaurantType = "bar"
)

// TransportType is the mode of a transport option.
type TransportType string

const (
	TransportFlight  TransportType = "flight"
	TransportTrain   TransportType = "train"
	TransportBus     TransportType = "bus"
	TransportTaxi    TransportType = "taxi"
	TransportMetro   TransportType = "metro"
	TransportWalking TransportType = "walking"
	TransportBike    TransportType = "bike"
)

// CulturalCategory groups cultural tips.
type CulturalCategory string

const (
	CulturalEtiquette CulturalCategory = "etiquette"
	CulturalCustoms   CulturalCategory = "customs"
	CulturalLanguage  CulturalCategory = "language"
	CulturalReligion  CulturalCategory = "religion"
	CulturalSocial    CulturalCategory = "social"
)

// SafetyCategory groups safety tips.
type SafetyCategory string

const (
	SafetyGeneral   SafetyCategory = "general"
	SafetyHealth    SafetyCategory = "health"
	SafetyEmergency SafetyCategory = "emergency"
	SafetyScam      SafetyCategory = "scam"
	SafetyTransport SafetyCategory = "transport"
)

// Importance ranks a cultural tip.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Urgency ranks a safety tip.
type Urgency string

const (
	UrgencyCritical  Urgency = "critical"
	UrgencyImportant Urgency = "important"
	UrgencyAdvisory  Urgency = "advisory"
)

// ExportFormat is an output format supported by plan export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// AllowedExportContentTypes maps export formats to their MIME content type.
var AllowedExportContentTypes = map[ExportFormat]string{
	ExportCSV:  "text/csv; charset=utf-8",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
