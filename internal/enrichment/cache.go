package enrichment

import (
	"context"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"travelfuse/internal/domain"
	"travelfuse/internal/port"
)

// CachedFetcher memoizes bundles per destination. Bundles served from the
// cache are tagged with provenance cache. Errors and bundles built only from
// default data are not cached.
type CachedFetcher struct {
	next  port.EnrichmentFetcher
	cache *cache.Cache
}

// NewCachedFetcher wraps next with an in-memory cache. ttl of 0 means one hour.
func NewCachedFetcher(next port.EnrichmentFetcher, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedFetcher{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedFetcher) Fetch(ctx context.Context, destination string) (*port.EnrichmentBundle, error) {
	key := destinationKey(destination)
	if cached, found := c.cache.Get(key); found {
		return cached.(*port.EnrichmentBundle).Retag(domain.ProvenanceCache), nil
	}

	bundle, err := c.next.Fetch(ctx, destination)
	if err != nil {
		return nil, err
	}
	if defaultOnly(bundle) {
		return bundle, nil
	}
	c.cache.Set(key, bundle, cache.DefaultExpiration)
	log.Printf("enrichment.CachedFetcher: cached bundle for %q", destination)
	return bundle, nil
}

func defaultOnly(b *port.EnrichmentBundle) bool {
	for _, src := range b.Sources() {
		if src != domain.ProvenanceDefault {
			return false
		}
	}
	return true
}

// Invalidate drops the cached bundle for destination.
func (c *CachedFetcher) Invalidate(destination string) {
	c.cache.Delete(destinationKey(destination))
}

// Len reports the number of cached destinations.
func (c *CachedFetcher) Len() int {
	return c.cache.ItemCount()
}
