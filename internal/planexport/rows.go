package planexport

import (
	"strconv"
	"strings"

	"travelfuse/internal/domain"
)

// Section names, in export order.
const (
	SectionTimeline      = "timeline"
	SectionAccommodation = "accommodation"
	SectionFood          = "food"
	SectionTransport     = "transport"
	SectionTips          = "tips"
)

// columns defines the shared header row (8 columns).
var columns = []string{
	"Section",
	"Time",
	"Period",
	"Title",
	"Category",
	"Cost",
	"Duration",
	"Description",
}

type section struct {
	name string
	rows [][]string
}

// sections flattens a plan into per-section rows sharing the column layout.
func sections(plan *domain.TravelPlan) []section {
	return []section{
		{SectionTimeline, timelineRows(plan.Timeline)},
		{SectionAccommodation, accommodationRows(plan.Accommodation)},
		{SectionFood, foodRows(plan.FoodExperience)},
		{SectionTransport, transportRows(plan.Transportation)},
		{SectionTips, tipsRows(plan.Tips)},
	}
}

func row(sec, timeRange, period, title, category, cost, duration, desc string) []string {
	return []string{sec, timeRange, period, title, category, cost, duration, desc}
}

func timelineRows(activities []domain.TimelineActivity) [][]string {
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, row(SectionTimeline, a.Time, string(a.Period), a.Title, string(a.Category),
			strconv.Itoa(a.Cost), a.Duration, a.Description))
	}
	return rows
}

func accommodationRows(d domain.AccommodationData) [][]string {
	rows := make([][]string, 0, len(d.Recommendations)+1)
	for _, r := range d.Recommendations {
		desc := joinNonEmpty("; ", r.Address, strings.Join(r.Amenities, "、"), r.PriceRange)
		rows = append(rows, row(SectionAccommodation, "", "", r.Name, string(r.Type), formatMoney(r.PricePerNight), "", desc))
	}
	if d.BookingTips != "" {
		rows = append(rows, row(SectionAccommodation, "", "", "预订建议", "", "", "", d.BookingTips))
	}
	return rows
}

func foodRows(d domain.FoodExperienceData) [][]string {
	rows := make([][]string, 0, len(d.RecommendedRestaurants)+1)
	for _, r := range d.RecommendedRestaurants {
		dishes := r.MustTryDishes
		if len(dishes) == 0 {
			dishes = r.Specialties
		}
		desc := joinNonEmpty("; ", r.Cuisine, strings.Join(dishes, "、"), r.Address, r.OpeningHours)
		rows = append(rows, row(SectionFood, "", "", r.Name, string(r.Type), formatMoney(r.AveragePrice), "", desc))
	}
	if len(d.Specialties) > 0 {
		rows = append(rows, row(SectionFood, "", "", "特色美食", "", "", "", strings.Join(d.Specialties, "、")))
	}
	return rows
}

func transportRows(d domain.TransportationData) [][]string {
	rows := make([][]string, 0, len(d.ArrivalOptions)+len(d.LocalTransport))
	add := func(scope string, opts []domain.TransportOption) {
		for _, o := range opts {
			rows = append(rows, row(SectionTransport, "", scope, o.Name, string(o.Type), o.Cost, o.Duration, o.Description))
		}
	}
	add("arrival", d.ArrivalOptions)
	add("local", d.LocalTransport)
	for _, r := range d.Routes {
		rows = append(rows, row(SectionTransport, "", "route", r.From+" → "+r.To, "", "", "", ""))
	}
	return rows
}

func tipsRows(d domain.TravelTipsData) [][]string {
	var rows [][]string
	for _, w := range d.Weather {
		rows = append(rows, row(SectionTips, "", "", w.Season, "weather", "", "",
			joinNonEmpty("; ", w.Temperature, w.Rainfall, strings.Join(w.Clothing, "、"))))
	}
	for _, c := range d.Cultural {
		rows = append(rows, row(SectionTips, "", "", c.Title, "cultural", "", "", c.Description))
	}
	for _, s := range d.Safety {
		rows = append(rows, row(SectionTips, "", "", s.Title, "safety", "", "", s.Description))
	}
	for _, e := range d.EmergencyContacts {
		rows = append(rows, row(SectionTips, "", "", e.Service, "emergency", "", "", e.Number))
	}
	for _, b := range d.BudgetTips {
		rows = append(rows, row(SectionTips, "", "", "预算", "budget", "", "", b))
	}
	for _, p := range d.PackingList {
		rows = append(rows, row(SectionTips, "", "", "行李", "packing", "", "", p))
	}
	return rows
}

func formatMoney(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
