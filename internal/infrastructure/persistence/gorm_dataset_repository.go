package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence/models"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"

	"gorm.io/gorm"
)

// sortColumns whitelists the columns a list query may sort by.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"name":       "name",
	"samples":    "samples",
	"size_bytes": "size_bytes",
}

type gormDatasetRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDatasetRepository creates a new GORM-based datasets.Repository implementation
func NewGormDatasetRepository(db *gorm.DB, logger logger.Logger) (datasets.Repository, error) {
	return &gormDatasetRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDatasetRepository) Create(ctx context.Context, dataset *datasets.DatasetMeta) error {
	// Validate domain entity (business rules)
	if err := dataset.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.DatasetModel{}
	if err := model.FromDomain(dataset); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	r.logger.Info("Created dataset metadata with id ", dataset.ID)
	return nil
}

func (r *gormDatasetRepository) List(ctx context.Context, query *datasets.DatasetQuery) ([]*datasets.DatasetMeta, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.DatasetModel
	dbQuery := r.db.WithContext(ctx).Model(&models.DatasetModel{})

	// Apply filters
	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Format != "" {
		dbQuery = dbQuery.Where("format = ?", query.Format)
	}
	if !query.CreatedAfter.IsZero() {
		dbQuery = dbQuery.Where("created_at >= ?", query.CreatedAfter)
	}

	// Sorting against the whitelisted column set
	if query.SortBy != "" {
		column, ok := sortColumns[query.SortBy]
		if !ok {
			return nil, fmt.Errorf("unsupported sort column: %s", query.SortBy)
		}
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", column, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch datasets: %w", err)
	}

	return toDomainList(modelList)
}

func (r *gormDatasetRepository) GetByID(ctx context.Context, datasetID string) (*datasets.DatasetMeta, error) {
	var model models.DatasetModel
	if err := r.db.WithContext(ctx).Where("id = ?", datasetID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", datasets.ErrNotFound, datasetID)
		}
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	return model.ToDomain()
}

func (r *gormDatasetRepository) ListBySplitOf(ctx context.Context, parentID string) ([]*datasets.DatasetMeta, error) {
	var modelList []*models.DatasetModel
	if err := r.db.WithContext(ctx).
		Where("split_of_id = ?", parentID).
		Order("created_at asc").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch split shards: %w", err)
	}

	return toDomainList(modelList)
}

func (r *gormDatasetRepository) DeleteByID(ctx context.Context, datasetID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", datasetID).Delete(&models.DatasetModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	r.logger.Info("Deleted dataset metadata with id ", datasetID)
	return nil
}

func toDomainList(modelList []*models.DatasetModel) ([]*datasets.DatasetMeta, error) {
	domainList := make([]*datasets.DatasetMeta, len(modelList))
	for i, model := range modelList {
		meta, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		domainList[i] = meta
	}
	return domainList, nil
}
