package enrichment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/domain"
	"travelfuse/internal/enrichment"
)

func TestBuildWorkbook_RoundTrip(t *testing.T) {
	seeds := []enrichment.DestinationSeed{{
		Destination: "成都",
		Lodgings:    []enrichment.LodgingSeed{{Name: "宽窄巷子民宿", Type: "民宿", PricePerNight: 320, Amenities: []string{"WiFi", "茶室"}}},
		Restaurants: []enrichment.RestaurantSeed{{Name: "蜀九香火锅", Type: "火锅", Cuisine: "川菜", AveragePrice: 130, MustTry: []string{"毛肚", "鸭肠"}}},
		Transport:   []enrichment.TransportSeed{{Scope: "arrival", Type: "高铁", Name: "成渝高铁", Cost: "154元"}},
		Weather:     []enrichment.WeatherSeed{{Season: "夏季", Temperature: "25-33℃", Clothing: []string{"短袖"}}},
	}}

	f, err := enrichment.BuildWorkbook(seeds)
	require.NoError(t, err)
	defer f.Close()

	wf, err := enrichment.NewWorkbookFetcher(f)
	require.NoError(t, err)

	b, err := wf.Fetch(context.Background(), "成都")
	require.NoError(t, err)

	require.NotNil(t, b.Accommodation.Data)
	assert.Equal(t, domain.AccommodationGuesthouse, b.Accommodation.Data.Recommendations[0].Type)
	assert.Equal(t, 320.0, b.Accommodation.Data.Recommendations[0].PricePerNight)
	require.NotNil(t, b.Food.Data)
	assert.Equal(t, []string{"毛肚", "鸭肠"}, b.Food.Data.Specialties)
	require.NotNil(t, b.Transport.Data)
	assert.Equal(t, domain.TransportTrain, b.Transport.Data.ArrivalOptions[0].Type)
	require.NotNil(t, b.Tips.Data)
	assert.Equal(t, []string{"短袖"}, b.Tips.Data.Weather[0].Clothing)
}

func TestBuildWorkbook_MissingDestination(t *testing.T) {
	_, err := enrichment.BuildWorkbook([]enrichment.DestinationSeed{{}})
	assert.Error(t, err)
}
