package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/cache"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	generationService datasets.GenerationService,
	metadataService datasets.MetadataService,
	downloadService datasets.DownloadService,
	idempotencyStore cache.IdempotencyStore,
	idempotencyTTL time.Duration,
	catalog *corpus.Catalog,
	db *gorm.DB) {

	v1 := r.Group(BasePath) // lookup in version file

	// Dataset Routes
	datasetHandler := NewDatasetHandler(generationService, metadataService, downloadService, idempotencyStore, idempotencyTTL)
	v1.POST("/datasets", datasetHandler.Generate)
	v1.GET("/datasets", datasetHandler.ListMetadata)
	v1.GET("/datasets/:id", datasetHandler.GetMetadataByID)
	v1.GET("/datasets/:id/file", datasetHandler.DownloadByID)
	v1.GET("/datasets/:id/preview", datasetHandler.Preview)
	v1.DELETE("/datasets/:id", datasetHandler.DeleteByID)

	// Corpus Routes
	corpusHandler := NewCorpusHandler(catalog)
	v1.GET("/corpus/categories", corpusHandler.ListCategories)
	v1.GET("/corpus/tickers", corpusHandler.ListTickers)
	v1.GET("/corpus/templates", corpusHandler.ListTemplates)

	// Label Routes
	labelHandler := NewLabelHandler()
	v1.POST("/labels/classifications", labelHandler.Classify)

	// Health Routes
	healthHandler := NewHealthHandler(db)
	v1.GET("/health", healthHandler.Status)
}
