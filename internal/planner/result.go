package planner

import (
	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

// ModuleResults holds the raw outcome of each module parser.
type ModuleResults struct {
	Accommodation parser.Outcome[domain.AccommodationData]  `json:"accommodation"`
	Food          parser.Outcome[domain.FoodExperienceData] `json:"food"`
	Transport     parser.Outcome[domain.TransportationData] `json:"transport"`
	Tips          parser.Outcome[domain.TravelTipsData]     `json:"tips"`
}

// Performance reports per-phase timings of a parse.
type Performance struct {
	ParsePhaseMs int64   `json:"parse_phase_ms"`
	MergePhaseMs int64   `json:"merge_phase_ms"`
	TotalMs      int64   `json:"total_ms"`
	CacheHit     bool    `json:"cache_hit"`
	SuccessRate  float64 `json:"success_rate"`
	ModuleCount  int     `json:"module_count"`
}

// Result is the fused travel plan with its diagnostics. Succeeded reports an
// empty Errors list. Data is nil only when the parse aborted at the planner
// boundary.
//
// Provenance maps each merged field group to its winner: "module", the
// enrichment source ("api", "cache", "default") or "fixed" for a built-in value.
type Result struct {
	Succeeded     bool               `json:"succeeded"`
	Data          *domain.TravelPlan `json:"data"`
	Errors        []string           `json:"errors"`
	Warnings      []string           `json:"warnings"`
	ModuleResults ModuleResults      `json:"module_results"`
	Provenance    map[string]string  `json:"provenance"`
	Performance   Performance        `json:"performance"`
}

// ModuleStat summarizes one module's outcome.
type ModuleStat struct {
	Module       domain.ModuleName `json:"module"`
	Succeeded    bool              `json:"succeeded"`
	ErrorCount   int               `json:"error_count"`
	WarningCount int               `json:"warning_count"`
}

// Stats summarizes a Result.
type Stats struct {
	TotalModules      int          `json:"total_modules"`
	SuccessfulModules int          `json:"successful_modules"`
	SuccessRate       float64      `json:"success_rate"`
	TotalMs           int64        `json:"total_ms"`
	Modules           []ModuleStat `json:"modules"`
}

// Stats returns per-module counts for r.
func (r *Result) Stats() Stats {
	mr := r.ModuleResults
	modules := []ModuleStat{
		stat(domain.ModuleAccommodation, mr.Accommodation.Succeeded, mr.Accommodation.Errors, mr.Accommodation.Warnings),
		stat(domain.ModuleFood, mr.Food.Succeeded, mr.Food.Errors, mr.Food.Warnings),
		stat(domain.ModuleTransport, mr.Transport.Succeeded, mr.Transport.Errors, mr.Transport.Warnings),
		stat(domain.ModuleTips, mr.Tips.Succeeded, mr.Tips.Errors, mr.Tips.Warnings),
	}
	s := Stats{
		TotalModules: len(modules),
		SuccessRate:  r.Performance.SuccessRate,
		TotalMs:      r.Performance.TotalMs,
		Modules:      modules,
	}
	for _, m := range modules {
		if m.Succeeded {
			s.SuccessfulModules++
		}
	}
	return s
}

func stat(module domain.ModuleName, ok bool, errs, warns []string) ModuleStat {
	return ModuleStat{Module: module, Succeeded: ok, ErrorCount: len(errs), WarningCount: len(warns)}
}
