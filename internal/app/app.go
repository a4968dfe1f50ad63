// Package app assembles the parsing pipeline from configuration.
package app

import (
	"fmt"

	"travelfuse/internal/config"
	"travelfuse/internal/domain"
	"travelfuse/internal/enrichment"
	"travelfuse/internal/parser"
	"travelfuse/internal/planner"
	"travelfuse/internal/service"
	"travelfuse/internal/timeline"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Planner  *planner.Planner
	Timeline *timeline.Parser
	Chain    *enrichment.Chain
	Service  service.PlanService
}

// New builds the module parsers, the enrichment chain and the planner from cfg.
func New(cfg *config.Config) (*App, error) {
	overrides := make(map[domain.ModuleName]parser.SectionKeywords, len(cfg.Parser.Keywords))
	for m, kw := range cfg.Parser.Keywords {
		overrides[m] = parser.SectionKeywords{Start: kw.Start, End: kw.End}
	}
	mods, err := parser.NewModules(overrides)
	if err != nil {
		return nil, fmt.Errorf("building module parsers: %w", err)
	}

	chain, err := enrichment.NewChain(cfg.Enrichment)
	if err != nil {
		return nil, err
	}

	tl, err := timeline.New(cfg.Parser.Templates)
	if err != nil {
		return nil, fmt.Errorf("building timeline parser: %w", err)
	}
	p := planner.New(planner.Config{
		MaxAttempts:    cfg.Parser.MaxAttempts,
		BaseDelay:      cfg.Parser.BaseDelay,
		StrictMode:     cfg.Parser.StrictMode,
		EnabledModules: cfg.Parser.EnabledModules,
	}, mods, tl, chain)

	return &App{
		Planner:  p,
		Timeline: tl,
		Chain:    chain,
		Service:  service.NewPlanService(p, tl, cfg.Parser.MaxInputRunes),
	}, nil
}
