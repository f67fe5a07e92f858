package models

import (
	"fmt"
	"time"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"

	json "github.com/goccy/go-json"
)

// DatasetModel is the GORM database model for dataset metadata
// (infrastructure concern)
type DatasetModel struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	CreatedAt      time.Time `gorm:"not null;index"`
	RequestedBy    string    `gorm:"not null;type:uuid"`
	Name           string    `gorm:"not null;type:varchar(255);index"`
	Format         string    `gorm:"not null;type:varchar(10)"`
	Samples        int       `gorm:"not null"`
	Seed           int64     `gorm:"not null"`
	SizeBytes      int64     `gorm:"not null"`
	Checksum       string    `gorm:"not null;type:varchar(64)"`
	StorageKey     string    `gorm:"not null;type:varchar(512)"`
	CategoryCounts string    `gorm:"not null;type:text"`
	Split          *string   `gorm:"type:varchar(16)"`
	SplitOfID      *string   `gorm:"type:uuid;index"`
}

// TableName specifies the table name for GORM
func (DatasetModel) TableName() string {
	return "datasets"
}

// ToDomain converts GORM model to domain entity
func (m *DatasetModel) ToDomain() (*datasets.DatasetMeta, error) {
	counts := make(map[movement.Category]int)
	if m.CategoryCounts != "" {
		if err := json.Unmarshal([]byte(m.CategoryCounts), &counts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category counts: %w", err)
		}
	}

	return &datasets.DatasetMeta{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		RequestedBy:    m.RequestedBy,
		Name:           m.Name,
		Format:         m.Format,
		Samples:        m.Samples,
		Seed:           m.Seed,
		SizeBytes:      m.SizeBytes,
		Checksum:       m.Checksum,
		StorageKey:     m.StorageKey,
		CategoryCounts: counts,
		Split:          m.Split,
		SplitOfID:      m.SplitOfID,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *DatasetModel) FromDomain(d *datasets.DatasetMeta) error {
	counts, err := json.Marshal(d.CategoryCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal category counts: %w", err)
	}

	m.ID = d.ID
	m.CreatedAt = d.CreatedAt
	m.RequestedBy = d.RequestedBy
	m.Name = d.Name
	m.Format = d.Format
	m.Samples = d.Samples
	m.Seed = d.Seed
	m.SizeBytes = d.SizeBytes
	m.Checksum = d.Checksum
	m.StorageKey = d.StorageKey
	m.CategoryCounts = string(counts)
	m.Split = d.Split
	m.SplitOfID = d.SplitOfID
	return nil
}
