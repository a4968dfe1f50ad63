package planner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/planner"
	"travelfuse/internal/port"
	"travelfuse/mocks"
)

const sampleItinerary = `北京三日游
经典皇城文化之旅

Day 1
- **上午** 参观故宫博物院，门票60元，建议游览3小时
- **下午** 前往王府井品尝北京烤鸭

## 住宿推荐
- 王府井希尔顿酒店，价格850元/晚`

func testMeta() domain.PlanMetadata {
	return domain.PlanMetadata{ID: "plan-1", Title: "北京三日游", Destination: "北京", TotalDays: 3, StartDate: "2025-05-01"}
}

func fastConfig() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.BaseDelay = time.Millisecond
	return cfg
}

func stubModules() parser.Modules {
	return parser.Modules{
		Accommodation: func(string, parser.Context) parser.Outcome[domain.AccommodationData] {
			return parser.Success(domain.AccommodationData{Overview: "模块住宿", BookingTips: "A"})
		},
		Food: func(string, parser.Context) parser.Outcome[domain.FoodExperienceData] {
			return parser.Success(domain.FoodExperienceData{
				Overview:               "模块美食",
				Specialties:            []string{"烤鸭"},
				RecommendedRestaurants: []domain.FoodOption{{Name: "模块餐厅"}},
			})
		},
		Transport: func(string, parser.Context) parser.Outcome[domain.TransportationData] {
			return parser.Success(domain.TransportationData{
				Overview: "模块交通",
				Routes:   []domain.RouteInfo{{From: "机场", To: "市区"}},
			})
		},
		Tips: func(string, parser.Context) parser.Outcome[domain.TravelTipsData] {
			return parser.Success(domain.TravelTipsData{
				Overview: "模块贴士",
				Weather:  []domain.WeatherInfo{{Season: "模块季节"}},
			})
		},
	}
}

func enrichmentBundle(source domain.Provenance) *port.EnrichmentBundle {
	b := port.EmptyBundle(source)
	b.Accommodation.Data = &domain.AccommodationData{Overview: "增强住宿", Amenities: []string{"泳池"}, BookingTips: "B"}
	b.Food.Data = &domain.FoodExperienceData{
		Overview:               "增强美食",
		Specialties:            []string{"炸酱面"},
		RecommendedRestaurants: []domain.FoodOption{{Name: "增强餐厅"}},
	}
	b.Transport.Data = &domain.TransportationData{Overview: "增强交通", Tips: []string{"避开早高峰"}}
	b.Tips.Data = &domain.TravelTipsData{
		Overview:   "增强贴士",
		Weather:    []domain.WeatherInfo{{Season: "春季"}},
		BudgetTips: []string{"办理交通卡"},
		Cultural:   []domain.CulturalTip{{Title: "排队礼仪"}},
	}
	return b
}

func TestPlanner_MergePrecedence(t *testing.T) {
	fetcher := new(mocks.MockEnrichmentFetcher)
	bundle := enrichmentBundle(domain.ProvenanceAPI)
	fetcher.On("Fetch", mock.Anything, "北京").Return(bundle, nil)

	p := planner.New(fastConfig(), stubModules(), nil, fetcher)
	res := p.Parse(context.Background(), sampleItinerary, testMeta())

	require.True(t, res.Succeeded)
	require.NotNil(t, res.Data)
	plan := res.Data

	assert.Equal(t, "A", plan.Accommodation.BookingTips)
	assert.Equal(t, "增强住宿", plan.Accommodation.Overview)
	assert.Equal(t, []string{"泳池"}, plan.Accommodation.Amenities)

	assert.Equal(t, "增强美食", plan.FoodExperience.Overview)
	assert.Equal(t, []string{"烤鸭"}, plan.FoodExperience.Specialties)
	require.Len(t, plan.FoodExperience.RecommendedRestaurants, 1)
	assert.Equal(t, "增强餐厅", plan.FoodExperience.RecommendedRestaurants[0].Name)

	assert.Equal(t, *bundle.Transport.Data, plan.Transportation)

	assert.Equal(t, "模块贴士", plan.Tips.Overview)
	assert.Equal(t, "春季", plan.Tips.Weather[0].Season)
	assert.Equal(t, []string{"办理交通卡"}, plan.Tips.BudgetTips)
	assert.Equal(t, "排队礼仪", plan.Tips.Cultural[0].Title)

	assert.Equal(t, "api", res.Provenance["accommodation"])
	assert.Equal(t, "module", res.Provenance["accommodation.booking_tips"])
	assert.Equal(t, "module", res.Provenance["food.specialties"])
	assert.Equal(t, "api", res.Provenance["food.recommended_restaurants"])
	assert.Equal(t, "api", res.Provenance["transport"])
	assert.Equal(t, "module", res.Provenance["tips"])
	assert.Equal(t, "api", res.Provenance["tips.weather"])
	assert.Equal(t, "api", res.Provenance["tips.cultural"])
	assert.Equal(t, "fixed", res.Provenance["tips.safety"])
	assert.False(t, res.Performance.CacheHit)
	fetcher.AssertExpectations(t)
}

func TestPlanner_Assembly(t *testing.T) {
	p := planner.New(fastConfig(), stubModules(), nil, nil)

	res := p.Parse(context.Background(), sampleItinerary, testMeta())

	require.NotNil(t, res.Data)
	assert.Equal(t, "plan-1", res.Data.ID)
	assert.Equal(t, "北京", res.Data.Destination)
	assert.Equal(t, 3, res.Data.TotalDays)
	assert.Equal(t, "北京三日游\n经典皇城文化之旅", res.Data.Overview)
	assert.False(t, res.Data.CreatedAt.IsZero())

	require.NotEmpty(t, res.Data.Timeline)
	first := res.Data.Timeline[0]
	assert.Equal(t, "09:00-12:00", first.Time)
	assert.Equal(t, domain.PeriodMorning, first.Period)
	assert.Equal(t, 60, first.Cost)

	assert.Equal(t, 4, res.Performance.ModuleCount)
	assert.Equal(t, 1.0, res.Performance.SuccessRate)
	assert.GreaterOrEqual(t, res.Performance.TotalMs, res.Performance.ParsePhaseMs)
}

func TestPlanner_GeneratesPlanID(t *testing.T) {
	meta := testMeta()
	meta.ID = ""

	res := planner.New(fastConfig(), stubModules(), nil, nil).Parse(context.Background(), sampleItinerary, meta)

	require.NotNil(t, res.Data)
	_, err := uuid.Parse(res.Data.ID)
	assert.NoError(t, err)
}

func TestPlanner_CacheHit(t *testing.T) {
	fetcher := new(mocks.MockEnrichmentFetcher)
	bundle := enrichmentBundle(domain.ProvenanceAPI)
	bundle.Tips.Source = domain.ProvenanceCache
	fetcher.On("Fetch", mock.Anything, "北京").Return(bundle, nil)

	res := planner.New(fastConfig(), stubModules(), nil, fetcher).Parse(context.Background(), sampleItinerary, testMeta())

	assert.True(t, res.Performance.CacheHit)
}

func TestPlanner_EnrichmentFailure(t *testing.T) {
	fetcher := new(mocks.MockEnrichmentFetcher)
	fetcher.On("Fetch", mock.Anything, "北京").Return(nil, errors.New("connection refused"))

	res := planner.New(fastConfig(), stubModules(), nil, fetcher).Parse(context.Background(), sampleItinerary, testMeta())

	require.True(t, res.Succeeded)
	require.NotNil(t, res.Data)
	assert.Contains(t, res.Warnings, "增强数据获取失败: connection refused")
	assert.Equal(t, "模块交通", res.Data.Transportation.Overview)
	assert.Equal(t, "module", res.Provenance["transport"])
	assert.Equal(t, "模块季节", res.Data.Tips.Weather[0].Season)
}

func TestPlanner_RetriesPanickingModule(t *testing.T) {
	var calls atomic.Int32
	mods := stubModules()
	mods.Accommodation = func(string, parser.Context) parser.Outcome[domain.AccommodationData] {
		if calls.Add(1) < 3 {
			panic("regex engine exploded")
		}
		return parser.Success(domain.AccommodationData{BookingTips: "第三次成功"})
	}

	res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	assert.Equal(t, int32(3), calls.Load())
	assert.True(t, res.ModuleResults.Accommodation.Succeeded)
	assert.Equal(t, "第三次成功", res.Data.Accommodation.BookingTips)
	assert.True(t, res.ModuleResults.Food.Succeeded)
	assert.True(t, res.ModuleResults.Transport.Succeeded)
	assert.True(t, res.ModuleResults.Tips.Succeeded)
}

func TestPlanner_RetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	mods := stubModules()
	mods.Food = func(string, parser.Context) parser.Outcome[domain.FoodExperienceData] {
		calls.Add(1)
		panic("always broken")
	}

	res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	assert.Equal(t, int32(3), calls.Load())
	food := res.ModuleResults.Food
	assert.False(t, food.Succeeded)
	require.NotNil(t, food.Data)
	assert.Equal(t, parser.DefaultFood().Overview, food.Data.Overview)
	require.Len(t, food.Errors, 4)
	assert.Contains(t, food.Errors[0], "attempt 1")
	assert.Contains(t, food.Errors[0], "always broken")
	assert.Contains(t, food.Errors[3], "attempts exhausted")
	assert.Equal(t, food.Errors, res.Errors)
	assert.False(t, res.Succeeded)
	require.NotNil(t, res.Data)
	assert.Equal(t, 0.75, res.Performance.SuccessRate)
}

func TestPlanner_NonPanickingFailure(t *testing.T) {
	tests := []struct {
		name      string
		strict    bool
		wantCalls int32
	}{
		{name: "accepted on first try", strict: false, wantCalls: 1},
		{name: "retried in strict mode", strict: true, wantCalls: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			mods := stubModules()
			mods.Transport = func(string, parser.Context) parser.Outcome[domain.TransportationData] {
				calls.Add(1)
				fb := domain.TransportationData{Overview: "部分结果"}
				return parser.Failure([]string{"交通段落不完整"}, &fb)
			}
			cfg := fastConfig()
			cfg.StrictMode = tt.strict

			res := planner.New(cfg, mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

			assert.Equal(t, tt.wantCalls, calls.Load())
			assert.False(t, res.ModuleResults.Transport.Succeeded)
			require.NotNil(t, res.ModuleResults.Transport.Data)
			assert.Equal(t, "部分结果", res.ModuleResults.Transport.Data.Overview)
		})
	}
}

func TestPlanner_StrictModeRecovers(t *testing.T) {
	var calls atomic.Int32
	mods := stubModules()
	mods.Tips = func(string, parser.Context) parser.Outcome[domain.TravelTipsData] {
		if calls.Add(1) == 1 {
			return parser.Failure[domain.TravelTipsData]([]string{"暂时失败"}, nil)
		}
		return parser.Success(domain.TravelTipsData{Overview: "第二次"})
	}
	cfg := fastConfig()
	cfg.StrictMode = true

	res := planner.New(cfg, mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, res.ModuleResults.Tips.Succeeded)
	assert.Equal(t, "第二次", res.Data.Tips.Overview)
}

func TestPlanner_DisabledModules(t *testing.T) {
	cfg := fastConfig()
	cfg.EnabledModules = []domain.ModuleName{domain.ModuleAccommodation}

	res := planner.New(cfg, stubModules(), nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	food := res.ModuleResults.Food
	assert.False(t, food.Succeeded)
	assert.Nil(t, food.Data)
	assert.Empty(t, food.Errors)

	require.NotNil(t, res.Data)
	assert.Equal(t, []string{"当地特色菜", "传统小吃"}, res.Data.FoodExperience.Specialties)
	assert.Equal(t, []domain.FoodOption{}, res.Data.FoodExperience.RecommendedRestaurants)
	assert.Equal(t, parser.DefaultTransportation(), res.Data.Transportation)
	assert.Equal(t, "fixed", res.Provenance["transport"])
	assert.Equal(t, "fixed", res.Provenance["food"])

	assert.Equal(t, 1, res.Performance.ModuleCount)
	assert.Equal(t, 1.0, res.Performance.SuccessRate)
	assert.NotContains(t, res.Warnings, planner.LowSuccessWarning)
}

func TestPlanner_LowSuccessWarning(t *testing.T) {
	failing := func(string, parser.Context) parser.Outcome[domain.FoodExperienceData] {
		return parser.Failure[domain.FoodExperienceData]([]string{"失败"}, nil)
	}
	failingTips := func(string, parser.Context) parser.Outcome[domain.TravelTipsData] {
		return parser.Failure[domain.TravelTipsData]([]string{"失败"}, nil)
	}
	failingTransport := func(string, parser.Context) parser.Outcome[domain.TransportationData] {
		return parser.Failure[domain.TransportationData]([]string{"失败"}, nil)
	}

	t.Run("one of four succeeds", func(t *testing.T) {
		mods := stubModules()
		mods.Food, mods.Tips, mods.Transport = failing, failingTips, failingTransport

		res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

		assert.Equal(t, 0.25, res.Performance.SuccessRate)
		assert.Contains(t, res.Warnings, planner.LowSuccessWarning)
	})

	t.Run("half succeed", func(t *testing.T) {
		mods := stubModules()
		mods.Food, mods.Tips = failing, failingTips

		res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

		assert.Equal(t, 0.5, res.Performance.SuccessRate)
		assert.NotContains(t, res.Warnings, planner.LowSuccessWarning)
	})
}

func TestPlanner_DiagnosticsInModuleOrder(t *testing.T) {
	mods := parser.Modules{
		Accommodation: func(string, parser.Context) parser.Outcome[domain.AccommodationData] {
			return parser.Success(domain.AccommodationData{}, "w-accommodation")
		},
		Food: func(string, parser.Context) parser.Outcome[domain.FoodExperienceData] {
			time.Sleep(5 * time.Millisecond)
			return parser.Success(domain.FoodExperienceData{}, "w-food")
		},
		Transport: func(string, parser.Context) parser.Outcome[domain.TransportationData] {
			return parser.Success(domain.TransportationData{}, "w-transport")
		},
		Tips: func(string, parser.Context) parser.Outcome[domain.TravelTipsData] {
			return parser.Success(domain.TravelTipsData{}, "w-tips")
		},
	}

	res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	require.GreaterOrEqual(t, len(res.Warnings), 4)
	assert.Equal(t, []string{"w-accommodation", "w-food", "w-transport", "w-tips"}, res.Warnings[:4])
}

func TestPlanner_EmptyDocument(t *testing.T) {
	res := planner.New(fastConfig(), parser.DefaultModules(), nil, nil).Parse(context.Background(), " \r\n\r\n ", testMeta())

	require.NotNil(t, res.Data)
	assert.Contains(t, res.Errors, "输入内容为空")
	assert.False(t, res.Succeeded)
	assert.Len(t, res.Data.Timeline, 3)
	assert.Equal(t, "", res.Data.Overview)
}

func TestPlanner_DefaultModulesEndToEnd(t *testing.T) {
	res := planner.New(fastConfig(), parser.DefaultModules(), nil, nil).Parse(context.Background(), sampleItinerary, testMeta())

	require.True(t, res.Succeeded)
	require.NotNil(t, res.Data)
	for _, ok := range []bool{
		res.ModuleResults.Accommodation.Succeeded,
		res.ModuleResults.Food.Succeeded,
		res.ModuleResults.Transport.Succeeded,
		res.ModuleResults.Tips.Succeeded,
	} {
		assert.True(t, ok)
	}
	assert.NotNil(t, res.ModuleResults.Accommodation.Data)
	assert.NotEmpty(t, res.Data.Accommodation.BookingTips)
	assert.NotEmpty(t, res.Data.Transportation.LocalTransport)
}

func TestResult_Stats(t *testing.T) {
	mods := stubModules()
	mods.Food = func(string, parser.Context) parser.Outcome[domain.FoodExperienceData] {
		return parser.Failure[domain.FoodExperienceData]([]string{"e1", "e2"}, nil)
	}

	res := planner.New(fastConfig(), mods, nil, nil).Parse(context.Background(), sampleItinerary, testMeta())
	stats := res.Stats()

	assert.Equal(t, 4, stats.TotalModules)
	assert.Equal(t, 3, stats.SuccessfulModules)
	assert.Equal(t, 0.75, stats.SuccessRate)
	require.Len(t, stats.Modules, 4)
	assert.Equal(t, domain.ModuleFood, stats.Modules[1].Module)
	assert.False(t, stats.Modules[1].Succeeded)
	assert.Equal(t, 2, stats.Modules[1].ErrorCount)
}
