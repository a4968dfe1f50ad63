package enrichment

import (
	"fmt"
	"log"

	"travelfuse/internal/config"
)

// Chain is the configured enrichment stack: the sources in fallback order
// behind a cache.
type Chain struct {
	*CachedFetcher
	Sources []string
}

// NewChain builds workbook → remote → default from cfg, skipping sources
// that are not configured, and wraps the result in a CachedFetcher.
func NewChain(cfg config.EnrichmentConfig) (*Chain, error) {
	var sources []Source
	if cfg.WorkbookPath != "" {
		wb, err := LoadWorkbook(cfg.WorkbookPath)
		if err != nil {
			return nil, fmt.Errorf("loading enrichment workbook: %w", err)
		}
		sources = append(sources, Source{Name: "workbook", Fetcher: wb})
	}
	if cfg.Endpoint != "" {
		sources = append(sources, Source{Name: "remote", Fetcher: NewHTTPFetcher("remote", cfg.Endpoint, cfg.APIKey, cfg.Timeout)})
	}
	sources = append(sources, Source{Name: "default", Fetcher: NewDefaultFetcher()})

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	log.Printf("enrichment.NewChain: sources=%v cache_ttl=%s", names, cfg.CacheTTL)

	return &Chain{
		CachedFetcher: NewCachedFetcher(NewFallbackFetcher(sources...), cfg.CacheTTL),
		Sources:       names,
	}, nil
}
