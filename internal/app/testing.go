//go:build integration
// +build integration

package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/cache"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/connector"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/messaging"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/testutil"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	GenerationService datasets.GenerationService
	MetadataService   datasets.MetadataService
	DownloadService   datasets.DownloadService

	IdempotencyStore cache.IdempotencyStore
	ArtifactStore    datasets.ArtifactStore
	DBContext        *persistence.TestContext
}

// SetupTestServices initializes all application services for integration
// tests: a sqlite repository, a temp-dir filesystem store, a noop publisher
// and an in-memory idempotency store.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t, dbType)

	artifactStore, err := connector.NewFilesystemStore(t.TempDir(), logger)
	require.NoError(t, err, "Failed to create artifact store")

	engine, err := generation.NewEngine(corpus.DefaultCatalog(), logger)
	require.NoError(t, err, "Failed to create generation engine")

	defaults := config.GenerationSettings{
		DefaultSamples: 1200,
		DefaultSeed:    42,
		DefaultFormat:  datasets.FormatCSV,
	}

	generationService, err := NewGenerationService(
		engine,
		dbContext.DatasetRepo,
		artifactStore,
		messaging.NewNoopPublisher(),
		defaults,
		logger,
	)
	require.NoError(t, err, "Failed to create generation service")

	metadataService, err := NewMetadataService(dbContext.DatasetRepo, artifactStore, logger)
	require.NoError(t, err, "Failed to create metadata service")

	downloadService, err := NewDownloadService(dbContext.DatasetRepo, artifactStore, logger)
	require.NoError(t, err, "Failed to create download service")

	idempotencyStore := cache.NewMemoryStore()
	t.Cleanup(func() { _ = idempotencyStore.Close() })

	return &TestServices{
		GenerationService: generationService,
		MetadataService:   metadataService,
		DownloadService:   downloadService,
		IdempotencyStore:  idempotencyStore,
		ArtifactStore:     artifactStore,
		DBContext:         dbContext,
	}
}
