package port

import (
	"context"

	"travelfuse/internal/domain"
)

// EnrichmentResult is one module's share of an enrichment bundle. Data is nil
// when the source had nothing for the destination.
type EnrichmentResult[T any] struct {
	Data   *T                `json:"data,omitempty"`
	Source domain.Provenance `json:"source"`
}

// EnrichmentBundle carries externally sourced data for the four plan modules.
type EnrichmentBundle struct {
	Accommodation EnrichmentResult[domain.AccommodationData]  `json:"accommodation"`
	Food          EnrichmentResult[domain.FoodExperienceData] `json:"food"`
	Transport     EnrichmentResult[domain.TransportationData] `json:"transport"`
	Tips          EnrichmentResult[domain.TravelTipsData]     `json:"tips"`
}

// EmptyBundle returns a bundle with no data, every part tagged with source.
func EmptyBundle(source domain.Provenance) *EnrichmentBundle {
	return &EnrichmentBundle{
		Accommodation: EnrichmentResult[domain.AccommodationData]{Source: source},
		Food:          EnrichmentResult[domain.FoodExperienceData]{Source: source},
		Transport:     EnrichmentResult[domain.TransportationData]{Source: source},
		Tips:          EnrichmentResult[domain.TravelTipsData]{Source: source},
	}
}

// Retag returns a shallow copy of b with every part tagged with source.
func (b EnrichmentBundle) Retag(source domain.Provenance) *EnrichmentBundle {
	b.Accommodation.Source = source
	b.Food.Source = source
	b.Transport.Source = source
	b.Tips.Source = source
	return &b
}

// Sources maps each module to the provenance of its part.
func (b *EnrichmentBundle) Sources() map[domain.ModuleName]domain.Provenance {
	return map[domain.ModuleName]domain.Provenance{
		domain.ModuleAccommodation: b.Accommodation.Source,
		domain.ModuleFood:          b.Food.Source,
		domain.ModuleTransport:     b.Transport.Source,
		domain.ModuleTips:          b.Tips.Source,
	}
}

// EnrichmentFetcher retrieves the enrichment bundle for a destination.
type EnrichmentFetcher interface {
	Fetch(ctx context.Context, destination string) (*EnrichmentBundle, error)
}
