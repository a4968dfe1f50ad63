package enrichment

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/port"
)

// Sheet names read by the workbook loader. The first row of every sheet is a
// header and is skipped.
//
//	accommodation: destination | name | type | address | rating | price_per_night | amenities
//	restaurants:   destination | name | type | cuisine | address | rating | average_price | must_try
//	transport:     destination | scope (arrival/local) | type | name | description | cost | duration
//	weather:       destination | season | temperature | rainfall | clothing
const (
	SheetAccommodation = "accommodation"
	SheetRestaurants   = "restaurants"
	SheetTransport     = "transport"
	SheetWeather       = "weather"
)

// WorkbookFetcher serves enrichment data loaded once from an XLSX dataset.
type WorkbookFetcher struct {
	byDestination map[string]*port.EnrichmentBundle
}

// LoadWorkbook opens the dataset at path and indexes it by destination.
func LoadWorkbook(path string) (*WorkbookFetcher, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open enrichment workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return NewWorkbookFetcher(f)
}

// NewWorkbookFetcher indexes an already open workbook. Missing sheets are
// treated as empty.
func NewWorkbookFetcher(f *excelize.File) (*WorkbookFetcher, error) {
	w := &WorkbookFetcher{byDestination: make(map[string]*port.EnrichmentBundle)}

	loaders := []struct {
		sheet string
		load  func(row []string)
	}{
		{SheetAccommodation, w.addLodging},
		{SheetRestaurants, w.addRestaurant},
		{SheetTransport, w.addTransport},
		{SheetWeather, w.addWeather},
	}
	for _, l := range loaders {
		if idx, _ := f.GetSheetIndex(l.sheet); idx < 0 {
			continue
		}
		rows, err := f.GetRows(l.sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", l.sheet, err)
		}
		for i := 1; i < len(rows); i++ {
			if strings.TrimSpace(cellVal(rows[i], 0)) == "" {
				continue
			}
			l.load(rows[i])
		}
	}
	for _, b := range w.byDestination {
		finalizeBundle(b)
	}

	log.Printf("enrichment.WorkbookFetcher: loaded %d destinations", len(w.byDestination))
	return w, nil
}

func (w *WorkbookFetcher) Fetch(_ context.Context, destination string) (*port.EnrichmentBundle, error) {
	b, ok := w.byDestination[destinationKey(destination)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, destination)
	}
	out := *b
	return &out, nil
}

// Destinations lists the destinations present in the dataset.
func (w *WorkbookFetcher) Destinations() []string {
	out := make([]string, 0, len(w.byDestination))
	for k := range w.byDestination {
		out = append(out, k)
	}
	return out
}

func (w *WorkbookFetcher) bundle(destination string) *port.EnrichmentBundle {
	key := destinationKey(destination)
	b, ok := w.byDestination[key]
	if !ok {
		b = port.EmptyBundle(domain.ProvenanceAPI)
		w.byDestination[key] = b
	}
	return b
}

func (w *WorkbookFetcher) addLodging(row []string) {
	b := w.bundle(cellVal(row, 0))
	if b.Accommodation.Data == nil {
		b.Accommodation.Data = &domain.AccommodationData{}
	}
	price := cellFloat(row, 5)
	opt := domain.AccommodationOption{
		Name:          cellVal(row, 1),
		Type:          parser.AccommodationTypeOf(cellVal(row, 2) + " " + cellVal(row, 1)),
		Address:       cellVal(row, 3),
		Rating:        cellFloat(row, 4),
		PricePerNight: price,
		PriceRange:    parser.LodgingPriceTier(price),
		Amenities:     splitList(cellVal(row, 6)),
	}
	b.Accommodation.Data.Recommendations = append(b.Accommodation.Data.Recommendations, opt)
}

func (w *WorkbookFetcher) addRestaurant(row []string) {
	b := w.bundle(cellVal(row, 0))
	if b.Food.Data == nil {
		b.Food.Data = &domain.FoodExperienceData{}
	}
	price := cellFloat(row, 6)
	opt := domain.FoodOption{
		Name:          cellVal(row, 1),
		Type:          parser.RestaurantTypeOf(cellVal(row, 2) + " " + cellVal(row, 1)),
		Cuisine:       cellVal(row, 3),
		Address:       cellVal(row, 4),
		Rating:        cellFloat(row, 5),
		AveragePrice:  price,
		PriceRange:    parser.FoodPriceTier(price),
		MustTryDishes: splitList(cellVal(row, 7)),
		Specialties:   splitList(cellVal(row, 7)),
	}
	b.Food.Data.RecommendedRestaurants = append(b.Food.Data.RecommendedRestaurants, opt)
}

func (w *WorkbookFetcher) addTransport(row []string) {
	b := w.bundle(cellVal(row, 0))
	if b.Transport.Data == nil {
		b.Transport.Data = &domain.TransportationData{}
	}
	kind, ok := parser.TransportTypeOf(cellVal(row, 2) + " " + cellVal(row, 3))
	if !ok {
		kind = domain.TransportBus
	}
	opt := domain.TransportOption{
		Type:        kind,
		Name:        cellVal(row, 3),
		Description: cellVal(row, 4),
		Cost:        cellVal(row, 5),
		Duration:    cellVal(row, 6),
	}
	data := b.Transport.Data
	if strings.EqualFold(cellVal(row, 1), "arrival") {
		data.ArrivalOptions = append(data.ArrivalOptions, opt)
	} else {
		data.LocalTransport = append(data.LocalTransport, opt)
	}
}

func (w *WorkbookFetcher) addWeather(row []string) {
	b := w.bundle(cellVal(row, 0))
	if b.Tips.Data == nil {
		b.Tips.Data = &domain.TravelTipsData{}
	}
	b.Tips.Data.Weather = append(b.Tips.Data.Weather, domain.WeatherInfo{
		Season:      cellVal(row, 1),
		Temperature: cellVal(row, 2),
		Rainfall:    cellVal(row, 3),
		Clothing:    splitList(cellVal(row, 4)),
	})
}

// finalizeBundle derives the summary fields from the loaded rows.
func finalizeBundle(b *port.EnrichmentBundle) {
	if acc := b.Accommodation.Data; acc != nil {
		seenTier := map[string]bool{}
		seenAmenity := map[string]bool{}
		for _, opt := range acc.Recommendations {
			if !seenTier[opt.PriceRange] {
				seenTier[opt.PriceRange] = true
				acc.PriceRanges = append(acc.PriceRanges, opt.PriceRange)
			}
			if len(opt.Amenities) > 0 {
				acc.AmenitiesComparison = append(acc.AmenitiesComparison, domain.AmenityComparison{Name: opt.Name, Amenities: opt.Amenities})
			}
			for _, a := range opt.Amenities {
				if !seenAmenity[a] {
					seenAmenity[a] = true
					acc.Amenities = append(acc.Amenities, a)
				}
			}
		}
	}
	if food := b.Food.Data; food != nil {
		for _, r := range food.RecommendedRestaurants {
			food.Specialties = append(food.Specialties, r.Specialties...)
		}
	}
	if tr := b.Transport.Data; tr != nil && tr.Overview == "" {
		tr.Overview = fmt.Sprintf("共%d种抵达方式，%d种市内交通方式", len(tr.ArrivalOptions), len(tr.LocalTransport))
	}
}

func destinationKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func cellFloat(row []string, idx int) float64 {
	v, err := strconv.ParseFloat(cellVal(row, idx), 64)
	if err != nil {
		return 0
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '、' || r == ',' || r == '，' || r == ';' || r == '；'
	}) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
