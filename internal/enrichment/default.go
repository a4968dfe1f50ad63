package enrichment

import (
	"context"

	"travelfuse/internal/domain"
	"travelfuse/internal/port"
)

// DefaultFetcher serves built-in data that is safe for any destination. Only
// tips are populated; the other parts carry no data so the merge keeps what
// the text parsers found.
type DefaultFetcher struct{}

// NewDefaultFetcher creates a DefaultFetcher.
func NewDefaultFetcher() *DefaultFetcher {
	return &DefaultFetcher{}
}

func (f *DefaultFetcher) Fetch(_ context.Context, _ string) (*port.EnrichmentBundle, error) {
	bundle := port.EmptyBundle(domain.ProvenanceDefault)
	tips := DefaultTips()
	bundle.Tips.Data = &tips
	return bundle, nil
}

// DefaultTips holds the nationwide emergency numbers and a baseline of
// cultural and safety guidance.
func DefaultTips() domain.TravelTipsData {
	return domain.TravelTipsData{
		Cultural: []domain.CulturalTip{{
			Category:    domain.CulturalEtiquette,
			Title:       "尊重当地习俗",
			Description: "参观宗教场所时衣着得体，遵守场所规定",
			Importance:  domain.ImportanceMedium,
		}},
		Safety: []domain.SafetyTip{{
			Category:    domain.SafetyGeneral,
			Title:       "保管好随身物品",
			Description: "人流密集区域注意防范扒窃",
			Urgency:     domain.UrgencyImportant,
		}},
		EmergencyContacts: []domain.EmergencyContact{
			{Service: "报警", Number: "110", Description: "公安报警电话"},
			{Service: "急救", Number: "120", Description: "医疗急救电话"},
			{Service: "火警", Number: "119", Description: "消防报警电话"},
			{Service: "交通事故", Number: "122", Description: "交通事故报警电话"},
		},
	}
}
