//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
)

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, spec *datasets.GenerationSpec, requestedBy string) ([]*datasets.DatasetMeta, error) {
	args := m.Called(ctx, spec, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*datasets.DatasetMeta), args.Error(1)
}

// MockMetadataService is a mock implementation of MetadataService
type MockMetadataService struct {
	mock.Mock
}

func (m *MockMetadataService) List(ctx context.Context, query *datasets.DatasetQuery) ([]*datasets.DatasetMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*datasets.DatasetMeta), args.Error(1)
}

func (m *MockMetadataService) GetByID(ctx context.Context, datasetID string) (*datasets.DatasetMeta, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*datasets.DatasetMeta), args.Error(1)
}

func (m *MockMetadataService) DeleteByID(ctx context.Context, datasetID string) error {
	args := m.Called(ctx, datasetID)
	return args.Error(0)
}

// MockDownloadService is a mock implementation of DownloadService
type MockDownloadService struct {
	mock.Mock
}

func (m *MockDownloadService) DownloadByID(ctx context.Context, datasetID string) ([]byte, error) {
	args := m.Called(ctx, datasetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of cache.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
