package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/cache"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/strutil"
)

// defaultPreviewLimit caps preview responses when no limit is given.
const defaultPreviewLimit = 10

// DatasetHandler defines the interface for handling dataset-related operations
type DatasetHandler interface {
	Generate(ctx *gin.Context)
	ListMetadata(ctx *gin.Context)
	GetMetadataByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	Preview(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// datasetHandler struct holds the services
type datasetHandler struct {
	generationService datasets.GenerationService
	metadataService   datasets.MetadataService
	downloadService   datasets.DownloadService
	idempotencyStore  cache.IdempotencyStore
	idempotencyTTL    time.Duration
}

// NewDatasetHandler creates a new DatasetHandler
func NewDatasetHandler(
	generationService datasets.GenerationService,
	metadataService datasets.MetadataService,
	downloadService datasets.DownloadService,
	idempotencyStore cache.IdempotencyStore,
	idempotencyTTL time.Duration,
) DatasetHandler {
	return &datasetHandler{
		generationService: generationService,
		metadataService:   metadataService,
		downloadService:   downloadService,
		idempotencyStore:  idempotencyStore,
		idempotencyTTL:    idempotencyTTL,
	}
}

// Generate creates a dataset (and shards when split ratios are given)
func (handler *datasetHandler) Generate(ctx *gin.Context) {
	var request GenerateDatasetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if key := ctx.GetHeader("Idempotency-Key"); len(key) > 0 {
		first, err := handler.idempotencyStore.MarkProcessed(ctx, key, handler.idempotencyTTL)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("idempotency check failed: %v", err.Error())})
			return
		}
		if !first {
			ctx.JSON(http.StatusConflict, ErrorResponse{Message: fmt.Sprintf("request with idempotency key %s was already processed", key)})
			return
		}
	}

	spec := &datasets.GenerationSpec{
		Samples: request.Samples,
		Seed:    request.Seed,
		Format:  request.Format,
		Name:    request.Name,
	}
	if request.SplitRatios != nil {
		spec.SplitRatios = &datasets.SplitRatios{
			Train:      request.SplitRatios.Train,
			Validation: request.SplitRatios.Validation,
			Test:       request.SplitRatios.Test,
		}
	}

	requestedBy := uuid.New().String() // no auth layer, requests get a generated id

	metas, err := handler.generationService.Generate(ctx, spec, requestedBy)
	if err != nil {
		if errors.Is(err, datasets.ErrInvalidSpec) {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error generating dataset: %v", err.Error())})
		return
	}

	response := make([]DatasetMetaResponse, 0, len(metas))
	for _, meta := range metas {
		response = append(response, toDatasetMetaResponse(meta))
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListMetadata fetches dataset metadata optionally with query parameters
func (handler *datasetHandler) ListMetadata(ctx *gin.Context) {
	query := datasets.NewDatasetQuery()

	if name := ctx.Query("name"); len(name) > 0 {
		query.Name = name
	}

	if format := ctx.Query("format"); len(format) > 0 {
		query.Format = format
	}

	if createdAfter := ctx.Query("createdAfter"); len(createdAfter) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, createdAfter)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid createdAfter value '%s': must be RFC3339", createdAfter)})
			return
		}
		query.CreatedAfter = parsedTime
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("validation failed: %v", err.Error())})
		return
	}

	metas, err := handler.metadataService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err.Error())})
		return
	}

	listResponse := []DatasetMetaResponse{}
	for _, meta := range metas {
		listResponse = append(listResponse, toDatasetMetaResponse(meta))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetMetadataByID fetches dataset metadata by ID
func (handler *datasetHandler) GetMetadataByID(ctx *gin.Context) {
	datasetID := ctx.Param("id")

	meta, err := handler.metadataService.GetByID(ctx, datasetID)
	if err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	ctx.JSON(http.StatusOK, toDatasetMetaResponse(meta))
}

// DownloadByID downloads a dataset artifact by ID
func (handler *datasetHandler) DownloadByID(ctx *gin.Context) {
	datasetID := ctx.Param("id")

	meta, err := handler.metadataService.GetByID(ctx, datasetID)
	if err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	data, err := handler.downloadService.DownloadByID(ctx, datasetID)
	if err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	encoder, err := generation.EncoderFor(meta.Format)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return
	}

	fileName := fmt.Sprintf("%s.%s", meta.Name, encoder.Ext())
	ctx.Header("Content-Disposition", "attachment; filename="+fileName)
	ctx.Data(http.StatusOK, encoder.ContentType(), data)
}

// Preview returns the first rows of a dataset artifact parsed into samples
func (handler *datasetHandler) Preview(ctx *gin.Context) {
	datasetID := ctx.Param("id")

	limit := defaultPreviewLimit
	if rawLimit := ctx.Query("limit"); len(rawLimit) > 0 {
		if parsed := strutil.ConvertToInt(rawLimit); parsed > 0 {
			limit = parsed
		}
	}

	meta, err := handler.metadataService.GetByID(ctx, datasetID)
	if err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	data, err := handler.downloadService.DownloadByID(ctx, datasetID)
	if err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	samples, err := generation.DecodeSamples(bytes.NewReader(data), meta.Format, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("could not parse artifact: %v", err.Error())})
		return
	}

	response := make([]SampleResponse, 0, len(samples))
	for _, sample := range samples {
		response = append(response, SampleResponse{
			Ticker: sample.Ticker,
			News:   sample.Headline,
			Change: sample.Change,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteByID deletes a dataset artifact and its metadata by ID
func (handler *datasetHandler) DeleteByID(ctx *gin.Context) {
	datasetID := ctx.Param("id")

	if err := handler.metadataService.DeleteByID(ctx, datasetID); err != nil {
		handler.writeLookupError(ctx, datasetID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// writeLookupError maps a service error for one dataset to a status code.
func (handler *datasetHandler) writeLookupError(ctx *gin.Context, datasetID string, err error) {
	if errors.Is(err, datasets.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("dataset with id %s not found", datasetID)})
		return
	}
	ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
}

func toDatasetMetaResponse(meta *datasets.DatasetMeta) DatasetMetaResponse {
	counts := make(map[string]int, len(meta.CategoryCounts))
	for category, n := range meta.CategoryCounts {
		counts[string(category)] = n
	}

	return DatasetMetaResponse{
		ID:             meta.ID,
		CreatedAt:      meta.CreatedAt,
		RequestedBy:    meta.RequestedBy,
		Name:           meta.Name,
		Format:         meta.Format,
		Samples:        meta.Samples,
		Seed:           meta.Seed,
		SizeBytes:      meta.SizeBytes,
		Checksum:       meta.Checksum,
		CategoryCounts: counts,
		Split:          meta.Split,
		SplitOfID:      meta.SplitOfID,
	}
}
