package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"travelfuse/internal/domain"
	"travelfuse/internal/port"
)

const (
	failureThreshold = 3
	failureCooldown  = 30 * time.Second
)

// sourceHealth is the circuit of one source. It opens for the server's
// Retry-After on a rate limit, or for failureCooldown after
// failureThreshold consecutive hard failures.
type sourceHealth struct {
	mu        sync.Mutex
	openUntil time.Time
	failures  int
}

func (h *sourceHealth) available(now time.Time) (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openUntil, !now.Before(h.openUntil)
}

func (h *sourceHealth) succeeded() {
	h.mu.Lock()
	h.failures = 0
	h.mu.Unlock()
}

func (h *sourceHealth) rateLimited(until time.Time) {
	h.mu.Lock()
	h.openUntil = until
	h.mu.Unlock()
}

// failed records a hard failure and reports whether it opened the circuit.
func (h *sourceHealth) failed(now time.Time) (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures++
	if h.failures < failureThreshold {
		return time.Time{}, false
	}
	h.failures = 0
	h.openUntil = now.Add(failureCooldown)
	return h.openUntil, true
}

// Source is a named fetcher in a fallback chain.
type Source struct {
	Name    string
	Fetcher port.EnrichmentFetcher
}

// FallbackFetcher asks sources in order for a destination's bundle and
// returns the first one found. A source that does not know the destination
// is passed over silently; rate-limited or repeatedly failing sources are
// skipped until their circuit closes. Put a DefaultFetcher last to guarantee
// data.
type FallbackFetcher struct {
	sources []Source
	health  []*sourceHealth
	now     func() time.Time
}

// NewFallbackFetcher creates a FallbackFetcher over an ordered list of sources.
func NewFallbackFetcher(sources ...Source) *FallbackFetcher {
	health := make([]*sourceHealth, len(sources))
	for i := range health {
		health[i] = &sourceHealth{}
	}
	return &FallbackFetcher{sources: sources, health: health, now: time.Now}
}

func (f *FallbackFetcher) Fetch(ctx context.Context, destination string) (*port.EnrichmentBundle, error) {
	now := f.now()
	var (
		hardErr       error
		notFound      int
		earliestReset time.Time
	)
	deferUntil := func(t time.Time) {
		if earliestReset.IsZero() || t.Before(earliestReset) {
			earliestReset = t
		}
	}

	for i, s := range f.sources {
		h := f.health[i]
		if until, ok := h.available(now); !ok {
			log.Printf("enrichment.FallbackFetcher: skipping %s until %s", s.Name, until.Format(time.RFC3339))
			deferUntil(until)
			continue
		}

		bundle, err := s.Fetcher.Fetch(ctx, destination)
		var rlErr *RateLimitError
		switch {
		case err == nil:
			h.succeeded()
			return bundle, nil
		case errors.Is(err, domain.ErrDestinationNotFound):
			notFound++
		case errors.As(err, &rlErr):
			log.Printf("enrichment.FallbackFetcher: %s rate limited for %s", s.Name, rlErr.RetryAfter)
			h.rateLimited(now.Add(rlErr.RetryAfter))
			deferUntil(now.Add(rlErr.RetryAfter))
		default:
			log.Printf("enrichment.FallbackFetcher: %s failed for %q: %v", s.Name, destination, err)
			if until, opened := h.failed(now); opened {
				log.Printf("enrichment.FallbackFetcher: %s disabled until %s after %d failures", s.Name, until.Format(time.RFC3339), failureThreshold)
			}
			hardErr = err
		}
	}

	switch {
	case hardErr != nil:
		return nil, fmt.Errorf("all enrichment sources failed: %w", hardErr)
	case !earliestReset.IsZero():
		retryAfter := max(earliestReset.Sub(now), time.Second)
		return nil, NewRateLimitError("all", fmt.Errorf("all enrichment sources unavailable"), int(retryAfter.Seconds()))
	case notFound > 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, destination)
	default:
		return nil, fmt.Errorf("no enrichment sources configured")
	}
}
