package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"travelfuse/internal/domain"
	"travelfuse/internal/port"
)

// HTTPFetcher retrieves an enrichment bundle as JSON from a remote endpoint.
type HTTPFetcher struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPFetcher creates a fetcher for endpoint. timeout of 0 means 10s.
func NewHTTPFetcher(name, endpoint, apiKey string, timeout time.Duration) *HTTPFetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if name == "" {
		name = "http"
	}
	return &HTTPFetcher{
		name:     name,
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// bundleResponse is the wire shape served by enrichment endpoints.
type bundleResponse struct {
	Accommodation *domain.AccommodationData  `json:"accommodation"`
	Food          *domain.FoodExperienceData `json:"food"`
	Transport     *domain.TransportationData `json:"transport"`
	Tips          *domain.TravelTipsData     `json:"tips"`
}

func (h *HTTPFetcher) Fetch(ctx context.Context, destination string) (*port.EnrichmentBundle, error) {
	u, err := url.Parse(h.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("destination", destination)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		req.Header.Set("X-API-Key", h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", h.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := ParseRetryAfterHeader(resp.Header.Get("Retry-After"), time.Now())
		return nil, NewRateLimitError(h.name, fmt.Errorf("status 429: %s", truncate(string(respBody), 200)), retryAfter)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, destination)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s error (status %d): %s", h.name, resp.StatusCode, truncate(string(respBody), 500))
	}

	var parsed bundleResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	bundle := port.EmptyBundle(domain.ProvenanceAPI)
	bundle.Accommodation.Data = parsed.Accommodation
	bundle.Food.Data = parsed.Food
	bundle.Transport.Data = parsed.Transport
	bundle.Tips.Data = parsed.Tips
	return bundle, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
