// Package app wires the domain services for dataset generation, metadata
// management and artifact download.
package app

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/metrics"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// generationService implements the GenerationService interface for building
// and storing dataset artifacts
type generationService struct {
	engine         *generation.Engine
	repository     datasets.Repository
	artifactStore  datasets.ArtifactStore
	eventPublisher datasets.EventPublisher
	defaults       config.GenerationSettings
	logger         logger.Logger
}

// NewGenerationService creates a new instance of GenerationService
func NewGenerationService(
	engine *generation.Engine,
	repository datasets.Repository,
	artifactStore datasets.ArtifactStore,
	eventPublisher datasets.EventPublisher,
	defaults config.GenerationSettings,
	logger logger.Logger,
) (datasets.GenerationService, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation defaults: %w", err)
	}

	return &generationService{
		engine:         engine,
		repository:     repository,
		artifactStore:  artifactStore,
		eventPublisher: eventPublisher,
		defaults:       defaults,
		logger:         logger,
	}, nil
}

// applyDefaults fills zero-valued spec fields from the configured defaults.
func (s *generationService) applyDefaults(spec *datasets.GenerationSpec) {
	if spec.Samples == 0 {
		spec.Samples = s.defaults.DefaultSamples
	}
	if spec.Seed == 0 {
		spec.Seed = s.defaults.DefaultSeed
	}
	if spec.Format == "" {
		spec.Format = s.defaults.DefaultFormat
	}
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("dataset-%d", spec.Seed)
	}
}

// Generate builds a corpus from the spec, encodes and stores the parent
// artifact plus any split shards, persists their metadata and publishes a
// creation event. The parent dataset is returned first.
func (s *generationService) Generate(ctx context.Context, spec *datasets.GenerationSpec, requestedBy string) ([]*datasets.DatasetMeta, error) {
	start := time.Now()

	s.applyDefaults(spec)

	if err := spec.Validate(); err != nil {
		metrics.RecordGenerationFailure("spec")
		return nil, fmt.Errorf("%w: %v", datasets.ErrInvalidSpec, err)
	}

	build, err := s.engine.Build(spec)
	if err != nil {
		metrics.RecordGenerationFailure("build")
		return nil, fmt.Errorf("failed to build corpus: %w", err)
	}

	encoder, err := generation.EncoderFor(spec.Format)
	if err != nil {
		metrics.RecordGenerationFailure("encode")
		return nil, err
	}

	parent, err := s.storeArtifact(ctx, spec, encoder, spec.Name, build.Samples, requestedBy, nil, nil)
	if err != nil {
		return nil, err
	}

	result := []*datasets.DatasetMeta{parent}
	for i := range build.Shards {
		shard := &build.Shards[i]
		split := shard.Split

		meta, err := s.storeArtifact(ctx, spec, encoder, spec.Name+"-"+split, shard.Samples, requestedBy, &split, &parent.ID)
		if err != nil {
			s.unwind(ctx, result)
			return nil, err
		}
		result = append(result, meta)
	}

	s.publishCreated(ctx, parent)
	metrics.ObserveGenerationDuration(start)

	s.logger.Info(fmt.Sprintf("generated dataset '%s' with %d samples in %d artifact(s)", parent.Name, parent.Samples, len(result)))
	return result, nil
}

// storeArtifact encodes one sample set, writes it to the artifact store and
// persists its metadata.
func (s *generationService) storeArtifact(
	ctx context.Context,
	spec *datasets.GenerationSpec,
	encoder generation.Encoder,
	name string,
	samples []corpus.Sample,
	requestedBy string,
	split *string,
	splitOfID *string,
) (*datasets.DatasetMeta, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, samples); err != nil {
		metrics.RecordGenerationFailure("encode")
		return nil, fmt.Errorf("failed to encode dataset '%s': %w", name, err)
	}

	data := buf.Bytes()
	checksum := sha256.Sum256(data)

	id := uuid.New().String()
	meta := &datasets.DatasetMeta{
		ID:             id,
		CreatedAt:      time.Now().UTC(),
		RequestedBy:    requestedBy,
		Name:           name,
		Format:         spec.Format,
		Samples:        len(samples),
		Seed:           spec.Seed,
		SizeBytes:      int64(len(data)),
		Checksum:       hex.EncodeToString(checksum[:]),
		StorageKey:     fmt.Sprintf("datasets/%s/%s.%s", id, name, encoder.Ext()),
		CategoryCounts: generation.CategoryCounts(samples),
		Split:          split,
		SplitOfID:      splitOfID,
	}

	if err := s.artifactStore.Put(ctx, meta.StorageKey, data); err != nil {
		metrics.RecordGenerationFailure("store")
		return nil, fmt.Errorf("failed to store artifact '%s': %w", meta.StorageKey, err)
	}

	if err := s.repository.Create(ctx, meta); err != nil {
		metrics.RecordGenerationFailure("persist")
		// Best effort cleanup of the orphaned artifact.
		if cleanupErr := s.artifactStore.Delete(ctx, meta.StorageKey); cleanupErr != nil {
			s.logger.Warn(fmt.Sprintf("failed to clean up artifact '%s': %v", meta.StorageKey, cleanupErr))
		}
		return nil, fmt.Errorf("failed to persist metadata for dataset '%s': %w", name, err)
	}

	metrics.RecordDatasetGenerated(meta.Format)
	metrics.RecordArtifactBytes(meta.SizeBytes)
	recordSampleCounts(meta)

	return meta, nil
}

// unwind removes artifacts and metadata already stored by a generation run
// that failed on a later shard, so no partial dataset is left behind.
func (s *generationService) unwind(ctx context.Context, stored []*datasets.DatasetMeta) {
	for _, meta := range stored {
		if err := s.artifactStore.Delete(ctx, meta.StorageKey); err != nil {
			s.logger.Warn(fmt.Sprintf("failed to unwind artifact '%s': %v", meta.StorageKey, err))
		}
		if err := s.repository.DeleteByID(ctx, meta.ID); err != nil {
			s.logger.Warn(fmt.Sprintf("failed to unwind metadata for dataset '%s': %v", meta.ID, err))
		}
	}
}

// publishCreated emits the dataset.created event. Publish failures are
// logged, not returned: the dataset itself was stored successfully.
func (s *generationService) publishCreated(ctx context.Context, parent *datasets.DatasetMeta) {
	event := &datasets.Event{
		Type:       datasets.EventTypeDatasetCreated,
		DatasetID:  parent.ID,
		Name:       parent.Name,
		Format:     parent.Format,
		Samples:    parent.Samples,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.eventPublisher.DatasetCreated(ctx, event); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to publish %s event for dataset '%s': %v", event.Type, parent.ID, err))
	}
}

func recordSampleCounts(meta *datasets.DatasetMeta) {
	// Shards re-count samples already counted on the parent.
	if meta.SplitOfID != nil {
		return
	}

	counts := make(map[string]int, len(meta.CategoryCounts))
	for category, n := range meta.CategoryCounts {
		counts[string(category)] = n
	}
	metrics.RecordSamplesGenerated(counts)
}

// metadataService implements the MetadataService interface for listing and
// deleting dataset metadata
type metadataService struct {
	repository    datasets.Repository
	artifactStore datasets.ArtifactStore
	logger        logger.Logger
}

// NewMetadataService creates a new instance of MetadataService
func NewMetadataService(
	repository datasets.Repository,
	artifactStore datasets.ArtifactStore,
	logger logger.Logger,
) (datasets.MetadataService, error) {
	return &metadataService{
		repository:    repository,
		artifactStore: artifactStore,
		logger:        logger,
	}, nil
}

// List retrieves dataset metadata considering a query filter when set.
func (s *metadataService) List(ctx context.Context, query *datasets.DatasetQuery) ([]*datasets.DatasetMeta, error) {
	metas, err := s.repository.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	return metas, nil
}

// GetByID retrieves dataset metadata by ID.
func (s *metadataService) GetByID(ctx context.Context, datasetID string) (*datasets.DatasetMeta, error) {
	meta, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset '%s': %w", datasetID, err)
	}
	return meta, nil
}

// DeleteByID deletes a dataset artifact and its metadata. Deleting a parent
// dataset cascades to its split shards.
func (s *metadataService) DeleteByID(ctx context.Context, datasetID string) error {
	meta, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return fmt.Errorf("failed to get dataset '%s': %w", datasetID, err)
	}

	// Parents take their shards with them.
	if meta.SplitOfID == nil {
		shards, err := s.repository.ListBySplitOf(ctx, meta.ID)
		if err != nil {
			return fmt.Errorf("failed to list shards of dataset '%s': %w", meta.ID, err)
		}
		for _, shard := range shards {
			if err := s.deleteOne(ctx, shard); err != nil {
				return err
			}
		}
	}

	return s.deleteOne(ctx, meta)
}

func (s *metadataService) deleteOne(ctx context.Context, meta *datasets.DatasetMeta) error {
	if err := s.artifactStore.Delete(ctx, meta.StorageKey); err != nil {
		return fmt.Errorf("failed to delete artifact '%s': %w", meta.StorageKey, err)
	}
	if err := s.repository.DeleteByID(ctx, meta.ID); err != nil {
		return fmt.Errorf("failed to delete metadata for dataset '%s': %w", meta.ID, err)
	}

	metrics.RecordDatasetDeleted()
	s.logger.Info(fmt.Sprintf("deleted dataset '%s' ('%s')", meta.ID, meta.Name))
	return nil
}

// downloadService implements the DownloadService interface for retrieving
// stored dataset artifacts
type downloadService struct {
	repository    datasets.Repository
	artifactStore datasets.ArtifactStore
	logger        logger.Logger
}

// NewDownloadService creates a new instance of DownloadService
func NewDownloadService(
	repository datasets.Repository,
	artifactStore datasets.ArtifactStore,
	logger logger.Logger,
) (datasets.DownloadService, error) {
	return &downloadService{
		repository:    repository,
		artifactStore: artifactStore,
		logger:        logger,
	}, nil
}

// DownloadByID retrieves the raw artifact bytes for a dataset.
func (s *downloadService) DownloadByID(ctx context.Context, datasetID string) ([]byte, error) {
	meta, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset '%s': %w", datasetID, err)
	}

	data, err := s.artifactStore.Get(ctx, meta.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download artifact '%s': %w", meta.StorageKey, err)
	}
	return data, nil
}
