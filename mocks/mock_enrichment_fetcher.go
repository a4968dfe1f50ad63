package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travelfuse/internal/port"
)

// MockEnrichmentFetcher is a mock implementation of port.EnrichmentFetcher.
type MockEnrichmentFetcher struct {
	mock.Mock
}

func (m *MockEnrichmentFetcher) Fetch(ctx context.Context, destination string) (*port.EnrichmentBundle, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EnrichmentBundle), args.Error(1)
}
