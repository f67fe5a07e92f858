package connector

import (
	"context"
	"fmt"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// NewArtifactStore creates the artifact store selected by the settings.
func NewArtifactStore(ctx context.Context, settings *config.ArtifactStoreSettings, logger logger.Logger) (datasets.ArtifactStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact store settings: %w", err)
	}

	switch settings.Backend {
	case config.FilesystemStoreBackend:
		return NewFilesystemStore(settings.Directory, logger)
	case config.S3StoreBackend:
		return NewS3Store(ctx, settings.S3, logger)
	default:
		return nil, fmt.Errorf("unsupported artifact store backend: %s", settings.Backend)
	}
}
