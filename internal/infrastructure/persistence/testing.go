//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence/models"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	DatasetRepo datasets.Repository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = db.AutoMigrate(&models.DatasetModel{})
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := testutil.SetupTestLogger(t)

	datasetRepo, err := NewGormDatasetRepository(db, logger)
	require.NoError(t, err, "Failed to create dataset repository")

	return &TestContext{
		DB:          db,
		DatasetRepo: datasetRepo,
	}
}

// CreateTestDataset creates a dataset metadata entity with default values
func CreateTestDataset(t *testing.T, name string) *datasets.DatasetMeta {
	t.Helper()

	if name == "" {
		name = "test-dataset"
	}

	counts := make(map[movement.Category]int, 12)
	for _, category := range movement.Ladder() {
		counts[category] = 10
	}

	return &datasets.DatasetMeta{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		RequestedBy:    uuid.NewString(),
		Name:           name,
		Format:         datasets.FormatCSV,
		Samples:        120,
		Seed:           42,
		SizeBytes:      9000,
		Checksum:       strings.Repeat("ab", 32),
		StorageKey:     "datasets/" + name + "/" + name + ".csv",
		CategoryCounts: counts,
	}
}

// CreateTestShard creates a split shard entity referencing a parent dataset
func CreateTestShard(t *testing.T, parent *datasets.DatasetMeta, split string) *datasets.DatasetMeta {
	t.Helper()

	shard := CreateTestDataset(t, parent.Name+"-"+split)
	shard.Split = &split
	shard.SplitOfID = &parent.ID
	return shard
}
