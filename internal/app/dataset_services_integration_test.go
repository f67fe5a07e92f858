//go:build integration
// +build integration

package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/connector"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/messaging"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/testutil"
)

func TestGenerationService_GenerateAndDownload(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	requestedBy := uuid.New().String()

	spec := &datasets.GenerationSpec{
		Samples: 120,
		Seed:    7,
		Format:  datasets.FormatCSV,
		Name:    "smoke",
	}

	metas, err := services.GenerationService.Generate(ctx, spec, requestedBy)
	require.NoError(t, err)
	require.Len(t, metas, 1)

	parent := metas[0]
	assert.Equal(t, "smoke", parent.Name)
	assert.Equal(t, datasets.FormatCSV, parent.Format)
	assert.Equal(t, 120, parent.Samples)
	assert.Equal(t, int64(7), parent.Seed)
	assert.Equal(t, requestedBy, parent.RequestedBy)
	assert.Nil(t, parent.Split)
	assert.Nil(t, parent.SplitOfID)

	// Balanced: 120 samples over 12 categories
	require.Len(t, parent.CategoryCounts, 12)
	for _, category := range movement.Ladder() {
		assert.Equal(t, 10, parent.CategoryCounts[category], "category %s", category)
	}

	// Download and verify checksum and row count
	data, err := services.DownloadService.DownloadByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.SizeBytes, int64(len(data)))

	checksum := sha256.Sum256(data)
	assert.Equal(t, parent.Checksum, hex.EncodeToString(checksum[:]))

	rows, err := generation.DecodeSamples(strings.NewReader(string(data)), parent.Format, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 120)

	// Listed via metadata service
	listed, err := services.MetadataService.List(ctx, datasets.NewDatasetQuery())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, parent.ID, listed[0].ID)
}

func TestGenerationService_AppliesDefaults(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	metas, err := services.GenerationService.Generate(ctx, &datasets.GenerationSpec{}, uuid.New().String())
	require.NoError(t, err)
	require.Len(t, metas, 1)

	parent := metas[0]
	assert.Equal(t, 1200, parent.Samples)
	assert.Equal(t, int64(42), parent.Seed)
	assert.Equal(t, datasets.FormatCSV, parent.Format)
	assert.Equal(t, "dataset-42", parent.Name)
}

func TestGenerationService_Deterministic(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	spec := func() *datasets.GenerationSpec {
		return &datasets.GenerationSpec{Samples: 120, Seed: 11, Format: datasets.FormatJSONL, Name: "det"}
	}

	first, err := services.GenerationService.Generate(ctx, spec(), uuid.New().String())
	require.NoError(t, err)
	second, err := services.GenerationService.Generate(ctx, spec(), uuid.New().String())
	require.NoError(t, err)

	assert.Equal(t, first[0].Checksum, second[0].Checksum)
	assert.Equal(t, first[0].SizeBytes, second[0].SizeBytes)
}

func TestGenerationService_Split(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	spec := &datasets.GenerationSpec{
		Samples: 120,
		Seed:    3,
		Format:  datasets.FormatCSV,
		Name:    "splits",
		SplitRatios: &datasets.SplitRatios{
			Train:      0.8,
			Validation: 0.1,
			Test:       0.1,
		},
	}

	metas, err := services.GenerationService.Generate(ctx, spec, uuid.New().String())
	require.NoError(t, err)
	require.Len(t, metas, 4)

	parent := metas[0]
	require.Nil(t, parent.SplitOfID)

	bySplit := map[string]*datasets.DatasetMeta{}
	for _, meta := range metas[1:] {
		require.NotNil(t, meta.Split)
		require.NotNil(t, meta.SplitOfID)
		assert.Equal(t, parent.ID, *meta.SplitOfID)
		assert.Equal(t, "splits-"+*meta.Split, meta.Name)
		bySplit[*meta.Split] = meta
	}

	assert.Equal(t, 96, bySplit[datasets.SplitTrain].Samples)
	assert.Equal(t, 12, bySplit[datasets.SplitValidation].Samples)
	assert.Equal(t, 12, bySplit[datasets.SplitTest].Samples)

	// Concatenating the shards in order reproduces the parent corpus
	var combined []string
	for _, split := range []string{datasets.SplitTrain, datasets.SplitValidation, datasets.SplitTest} {
		data, err := services.DownloadService.DownloadByID(ctx, bySplit[split].ID)
		require.NoError(t, err)
		rows, err := generation.DecodeSamples(strings.NewReader(string(data)), datasets.FormatCSV, 0)
		require.NoError(t, err)
		for _, row := range rows {
			combined = append(combined, row.Ticker+"|"+row.Headline+"|"+row.Change)
		}
	}

	parentData, err := services.DownloadService.DownloadByID(ctx, parent.ID)
	require.NoError(t, err)
	parentRows, err := generation.DecodeSamples(strings.NewReader(string(parentData)), datasets.FormatCSV, 0)
	require.NoError(t, err)

	var expected []string
	for _, row := range parentRows {
		expected = append(expected, row.Ticker+"|"+row.Headline+"|"+row.Change)
	}
	assert.Equal(t, expected, combined)
}

func TestMetadataService_DeleteParentCascades(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	spec := &datasets.GenerationSpec{
		Samples: 120,
		Seed:    5,
		Format:  datasets.FormatCSV,
		Name:    "doomed",
		SplitRatios: &datasets.SplitRatios{
			Train:      0.8,
			Validation: 0.1,
			Test:       0.1,
		},
	}

	metas, err := services.GenerationService.Generate(ctx, spec, uuid.New().String())
	require.NoError(t, err)
	require.Len(t, metas, 4)

	require.NoError(t, services.MetadataService.DeleteByID(ctx, metas[0].ID))

	for _, meta := range metas {
		_, err := services.MetadataService.GetByID(ctx, meta.ID)
		assert.ErrorIs(t, err, datasets.ErrNotFound, "metadata for '%s' should be gone", meta.Name)

		_, err = services.ArtifactStore.Get(ctx, meta.StorageKey)
		assert.ErrorIs(t, err, datasets.ErrNotFound, "artifact for '%s' should be gone", meta.Name)
	}
}

func TestMetadataService_DeleteShardKeepsParent(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	spec := &datasets.GenerationSpec{
		Samples: 120,
		Seed:    5,
		Format:  datasets.FormatCSV,
		Name:    "partial",
		SplitRatios: &datasets.SplitRatios{
			Train:      0.8,
			Validation: 0.1,
			Test:       0.1,
		},
	}

	metas, err := services.GenerationService.Generate(ctx, spec, uuid.New().String())
	require.NoError(t, err)
	require.Len(t, metas, 4)

	require.NoError(t, services.MetadataService.DeleteByID(ctx, metas[1].ID))

	_, err = services.MetadataService.GetByID(ctx, metas[1].ID)
	assert.ErrorIs(t, err, datasets.ErrNotFound)

	parent, err := services.MetadataService.GetByID(ctx, metas[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "partial", parent.Name)
}

func TestGenerationService_InvalidSpec(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.GenerationService.Generate(ctx, &datasets.GenerationSpec{
		Samples: 5, // below the balanced minimum
		Seed:    1,
		Format:  datasets.FormatCSV,
	}, uuid.New().String())
	assert.ErrorIs(t, err, datasets.ErrInvalidSpec)
}

func TestGenerationService_RejectsEmptyShardSplit(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	// 12 samples with skewed ratios floor validation and test to zero rows
	_, err := services.GenerationService.Generate(ctx, &datasets.GenerationSpec{
		Samples: 12,
		Seed:    1,
		Format:  datasets.FormatCSV,
		SplitRatios: &datasets.SplitRatios{
			Train:      0.98,
			Validation: 0.01,
			Test:       0.01,
		},
	}, uuid.New().String())
	assert.ErrorIs(t, err, datasets.ErrInvalidSpec)

	// rejected upfront, so nothing was stored
	listed, err := services.MetadataService.List(ctx, datasets.NewDatasetQuery())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

// failingCreateRepo lets the first failAfter creates through, then rejects.
type failingCreateRepo struct {
	datasets.Repository
	failAfter int
	creates   int
}

func (r *failingCreateRepo) Create(ctx context.Context, meta *datasets.DatasetMeta) error {
	r.creates++
	if r.creates > r.failAfter {
		return fmt.Errorf("create rejected")
	}
	return r.Repository.Create(ctx, meta)
}

func TestGenerationService_UnwindOnShardFailure(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	ctx := context.Background()

	dbContext := persistence.SetupTestDB(t, config.SqliteDbType)
	repo := &failingCreateRepo{Repository: dbContext.DatasetRepo, failAfter: 2}

	storeRoot := t.TempDir()
	artifactStore, err := connector.NewFilesystemStore(storeRoot, logger)
	require.NoError(t, err)

	engine, err := generation.NewEngine(corpus.DefaultCatalog(), logger)
	require.NoError(t, err)

	service, err := NewGenerationService(engine, repo, artifactStore, messaging.NewNoopPublisher(), config.GenerationSettings{
		DefaultSamples: 1200,
		DefaultSeed:    42,
		DefaultFormat:  datasets.FormatCSV,
	}, logger)
	require.NoError(t, err)

	// parent and train persist, the validation shard fails
	_, err = service.Generate(ctx, &datasets.GenerationSpec{
		Samples: 120,
		Seed:    3,
		Format:  datasets.FormatCSV,
		Name:    "torn",
		SplitRatios: &datasets.SplitRatios{
			Train:      0.8,
			Validation: 0.1,
			Test:       0.1,
		},
	}, uuid.New().String())
	require.Error(t, err)

	// the already-persisted metadata was unwound
	listed, err := dbContext.DatasetRepo.List(ctx, datasets.NewDatasetQuery())
	require.NoError(t, err)
	assert.Empty(t, listed)

	// and so were the already-stored artifacts
	var files []string
	err = filepath.WalkDir(storeRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDownloadService_NotFound(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, err := services.DownloadService.DownloadByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, datasets.ErrNotFound)
}
