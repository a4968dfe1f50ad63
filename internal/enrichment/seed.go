package enrichment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LodgingSeed is one row of the accommodation sheet.
type LodgingSeed struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
}

// RestaurantSeed is one row of the restaurants sheet.
type RestaurantSeed struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Cuisine      string   `json:"cuisine"`
	Address      string   `json:"address"`
	Rating       float64  `json:"rating"`
	AveragePrice float64  `json:"average_price"`
	MustTry      []string `json:"must_try"`
}

// TransportSeed is one row of the transport sheet. Scope is "arrival" or "local".
type TransportSeed struct {
	Scope       string `json:"scope"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Duration    string `json:"duration"`
}

// WeatherSeed is one row of the weather sheet.
type WeatherSeed struct {
	Season      string   `json:"season"`
	Temperature string   `json:"temperature"`
	Rainfall    string   `json:"rainfall"`
	Clothing    []string `json:"clothing"`
}

// DestinationSeed is the source record for one destination of the dataset.
type DestinationSeed struct {
	Destination string           `json:"destination"`
	Lodgings    []LodgingSeed    `json:"lodgings"`
	Restaurants []RestaurantSeed `json:"restaurants"`
	Transport   []TransportSeed  `json:"transport"`
	Weather     []WeatherSeed    `json:"weather"`
}

var sheetHeaders = map[string][]string{
	SheetAccommodation: {"destination", "name", "type", "address", "rating", "price_per_night", "amenities"},
	SheetRestaurants:   {"destination", "name", "type", "cuisine", "address", "rating", "average_price", "must_try"},
	SheetTransport:     {"destination", "scope", "type", "name", "description", "cost", "duration"},
	SheetWeather:       {"destination", "season", "temperature", "rainfall", "clothing"},
}

// BuildWorkbook lays seeds out in the sheet format read by LoadWorkbook.
// The caller owns the returned file.
func BuildWorkbook(seeds []DestinationSeed) (*excelize.File, error) {
	rows := map[string][][]string{}
	for _, s := range seeds {
		if strings.TrimSpace(s.Destination) == "" {
			return nil, fmt.Errorf("seed without destination")
		}
		d := s.Destination
		for _, l := range s.Lodgings {
			rows[SheetAccommodation] = append(rows[SheetAccommodation],
				[]string{d, l.Name, l.Type, l.Address, formatFloat(l.Rating), formatFloat(l.PricePerNight), strings.Join(l.Amenities, "、")})
		}
		for _, r := range s.Restaurants {
			rows[SheetRestaurants] = append(rows[SheetRestaurants],
				[]string{d, r.Name, r.Type, r.Cuisine, r.Address, formatFloat(r.Rating), formatFloat(r.AveragePrice), strings.Join(r.MustTry, "、")})
		}
		for _, t := range s.Transport {
			rows[SheetTransport] = append(rows[SheetTransport],
				[]string{d, t.Scope, t.Type, t.Name, t.Description, t.Cost, t.Duration})
		}
		for _, w := range s.Weather {
			rows[SheetWeather] = append(rows[SheetWeather],
				[]string{d, w.Season, w.Temperature, w.Rainfall, strings.Join(w.Clothing, "、")})
		}
	}

	f := excelize.NewFile()
	for i, sheet := range []string{SheetAccommodation, SheetRestaurants, SheetTransport, SheetWeather} {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
		all := append([][]string{sheetHeaders[sheet]}, rows[sheet]...)
		for r, values := range all {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("write %s row %d: %w", sheet, r+1, err)
			}
		}
	}
	return f, nil
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
