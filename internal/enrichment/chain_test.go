package enrichment_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/config"
	"travelfuse/internal/domain"
	"travelfuse/internal/enrichment"
)

func TestNewChain_DefaultOnly(t *testing.T) {
	chain, err := enrichment.NewChain(config.EnrichmentConfig{CacheTTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, chain.Sources)

	b, err := chain.Fetch(context.Background(), "西安")
	require.NoError(t, err)
	assert.Equal(t, domain.ProvenanceDefault, b.Tips.Source)

	b, err = chain.Fetch(context.Background(), "西安")
	require.NoError(t, err)
	assert.Equal(t, domain.ProvenanceDefault, b.Tips.Source)
	assert.Equal(t, 0, chain.Len())
}

func TestNewChain_WorkbookThenDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	require.NoError(t, sampleWorkbook(t).SaveAs(path))

	chain, err := enrichment.NewChain(config.EnrichmentConfig{WorkbookPath: path, Endpoint: "http://127.0.0.1:1/bundle"})
	require.NoError(t, err)
	assert.Equal(t, []string{"workbook", "remote", "default"}, chain.Sources)

	b, err := chain.Fetch(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, domain.ProvenanceAPI, b.Accommodation.Source)
	require.NotNil(t, b.Accommodation.Data)

	b, err = chain.Fetch(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, domain.ProvenanceCache, b.Accommodation.Source)
	assert.Equal(t, 1, chain.Len())
}

func TestNewChain_MissingWorkbook(t *testing.T) {
	_, err := enrichment.NewChain(config.EnrichmentConfig{WorkbookPath: filepath.Join(t.TempDir(), "missing.xlsx")})
	assert.Error(t, err)
}
