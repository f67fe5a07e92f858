package datasets

import (
	"context"
)

// GenerationService defines methods for generating dataset artifacts.
type GenerationService interface {
	// Generate builds a corpus from the spec, stores the artifact(s) and
	// persists their metadata. It returns the parent dataset first, followed
	// by any split shards.
	Generate(ctx context.Context, spec *GenerationSpec, requestedBy string) ([]*DatasetMeta, error)
}

// MetadataService defines methods for retrieving and deleting dataset
// metadata.
type MetadataService interface {
	// List retrieves dataset metadata considering a query filter when set.
	List(ctx context.Context, query *DatasetQuery) ([]*DatasetMeta, error)

	// GetByID retrieves dataset metadata by ID.
	GetByID(ctx context.Context, datasetID string) (*DatasetMeta, error)

	// DeleteByID deletes a dataset artifact and its metadata by ID. Deleting
	// a parent dataset also deletes its split shards.
	DeleteByID(ctx context.Context, datasetID string) error
}

// DownloadService defines methods for downloading dataset artifacts.
type DownloadService interface {
	// DownloadByID retrieves the raw artifact bytes for a dataset.
	DownloadByID(ctx context.Context, datasetID string) ([]byte, error)
}

// Repository defines the persistence interface for dataset metadata.
type Repository interface {
	// Create adds a new DatasetMeta to the database
	Create(ctx context.Context, dataset *DatasetMeta) error
	// List lists DatasetMetas in the database with optional filter
	List(ctx context.Context, query *DatasetQuery) ([]*DatasetMeta, error)
	// GetByID retrieves a DatasetMeta from the database by ID
	GetByID(ctx context.Context, datasetID string) (*DatasetMeta, error)
	// ListBySplitOf retrieves the split shards of a parent dataset
	ListBySplitOf(ctx context.Context, parentID string) ([]*DatasetMeta, error)
	// DeleteByID deletes a DatasetMeta in the database by ID
	DeleteByID(ctx context.Context, datasetID string) error
}

// ArtifactStore is an interface for storing encoded dataset artifacts.
type ArtifactStore interface {
	// Put stores the artifact bytes under the storage key.
	Put(ctx context.Context, storageKey string, data []byte) error

	// Get retrieves the artifact bytes by storage key.
	Get(ctx context.Context, storageKey string) ([]byte, error)

	// Delete removes the artifact at the storage key.
	Delete(ctx context.Context, storageKey string) error
}

// EventPublisher publishes dataset lifecycle events.
type EventPublisher interface {
	// DatasetCreated announces a newly generated dataset.
	DatasetCreated(ctx context.Context, event *Event) error
}
