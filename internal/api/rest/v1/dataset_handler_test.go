//go:build unit
// +build unit

package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
)

func newTestDatasetMeta(name string) *datasets.DatasetMeta {
	return &datasets.DatasetMeta{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		RequestedBy: uuid.New().String(),
		Name:        name,
		Format:      datasets.FormatCSV,
		Samples:     120,
		Seed:        7,
		SizeBytes:   4096,
		Checksum:    "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		StorageKey:  "datasets/some-id/" + name + ".csv",
		CategoryCounts: map[movement.Category]int{
			movement.GainsSharply: 10,
		},
	}
}

func setupDatasetHandler() (DatasetHandler, *MockGenerationService, *MockMetadataService, *MockDownloadService, *MockIdempotencyStore) {
	mockGeneration := new(MockGenerationService)
	mockMetadata := new(MockMetadataService)
	mockDownload := new(MockDownloadService)
	mockIdempotency := new(MockIdempotencyStore)

	handler := NewDatasetHandler(mockGeneration, mockMetadata, mockDownload, mockIdempotency, time.Hour)
	return handler, mockGeneration, mockMetadata, mockDownload, mockIdempotency
}

func TestDatasetHandler_Generate_Success(t *testing.T) {
	handler, mockGeneration, _, _, _ := setupDatasetHandler()

	meta := newTestDatasetMeta("nightly")
	mockGeneration.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*datasets.DatasetMeta{meta}, nil)

	body := bytes.NewBufferString(`{"samples": 120, "seed": 7, "format": "csv", "name": "nightly"}`)
	req, err := http.NewRequest("POST", "/datasets", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), meta.ID)
	mockGeneration.AssertExpectations(t)
}

func TestDatasetHandler_Generate_InvalidBody_Error(t *testing.T) {
	handler, _, _, _, _ := setupDatasetHandler()

	req, err := http.NewRequest("POST", "/datasets", bytes.NewBufferString("not json"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetHandler_Generate_ValidationError(t *testing.T) {
	handler, _, _, _, _ := setupDatasetHandler()

	// Below the minimum of one sample per category
	body := bytes.NewBufferString(`{"samples": 5}`)
	req, err := http.NewRequest("POST", "/datasets", body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Samples")
}

func TestDatasetHandler_Generate_IdempotentReplay_Conflict(t *testing.T) {
	handler, mockGeneration, _, _, mockIdempotency := setupDatasetHandler()

	meta := newTestDatasetMeta("replayed")
	mockGeneration.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return([]*datasets.DatasetMeta{meta}, nil).Once()
	mockIdempotency.On("MarkProcessed", mock.Anything, "req-1", time.Hour).
		Return(true, nil).Once()
	mockIdempotency.On("MarkProcessed", mock.Anything, "req-1", time.Hour).
		Return(false, nil).Once()

	send := func() *httptest.ResponseRecorder {
		body := bytes.NewBufferString(`{"samples": 120, "seed": 7}`)
		req, err := http.NewRequest("POST", "/datasets", body)
		require.NoError(t, err)
		req.Header.Set("Idempotency-Key", "req-1")

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		handler.Generate(c)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)

	second := send()
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "req-1")

	mockGeneration.AssertExpectations(t)
	mockIdempotency.AssertExpectations(t)
}

func TestDatasetHandler_Generate_InvalidSpec_BadRequest(t *testing.T) {
	handler, mockGeneration, _, _, _ := setupDatasetHandler()

	// a spec that only fails validation once defaults are applied (e.g. a
	// split flooring a shard to zero rows) surfaces as a client error
	mockGeneration.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: splitting 12 samples leaves an empty shard", datasets.ErrInvalidSpec))

	body := bytes.NewBufferString(`{"samples": 12, "split_ratios": {"train": 0.98, "validation": 0.01, "test": 0.01}}`)
	req, err := http.NewRequest("POST", "/datasets", body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty shard")
}

func TestDatasetHandler_Generate_ServiceError(t *testing.T) {
	handler, mockGeneration, _, _, _ := setupDatasetHandler()

	mockGeneration.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("artifact store unavailable"))

	body := bytes.NewBufferString(`{"samples": 120, "seed": 7}`)
	req, err := http.NewRequest("POST", "/datasets", body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDatasetHandler_ListMetadata_Success(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	meta := newTestDatasetMeta("listed")
	mockMetadata.On("List", mock.Anything, mock.Anything).
		Return([]*datasets.DatasetMeta{meta}, nil)

	req, err := http.NewRequest("GET", "/datasets?name=listed&limit=10&sortBy=created_at&sortOrder=desc", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), meta.ID)

	query := mockMetadata.Calls[0].Arguments.Get(1).(*datasets.DatasetQuery)
	assert.Equal(t, "listed", query.Name)
	assert.Equal(t, 10, query.Limit)
	assert.Equal(t, "created_at", query.SortBy)
	assert.Equal(t, "desc", query.SortOrder)
}

func TestDatasetHandler_ListMetadata_InvalidQuery_Error(t *testing.T) {
	handler, _, _, _, _ := setupDatasetHandler()

	req, err := http.NewRequest("GET", "/datasets?sortBy=checksum", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetHandler_ListMetadata_InvalidCreatedAfter_Error(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	req, err := http.NewRequest("GET", "/datasets?createdAfter=yesterday", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListMetadata(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "createdAfter")
	mockMetadata.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestDatasetHandler_GetMetadataByID_Success(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	meta := newTestDatasetMeta("fetched")
	mockMetadata.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/datasets/"+meta.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: meta.ID}}

	handler.GetMetadataByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), meta.Checksum)
}

func TestDatasetHandler_GetMetadataByID_NotFound(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	datasetID := uuid.New().String()
	mockMetadata.On("GetByID", mock.Anything, datasetID).
		Return(nil, fmt.Errorf("failed to get dataset: %w", datasets.ErrNotFound))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/datasets/"+datasetID, nil)
	c.Params = gin.Params{{Key: "id", Value: datasetID}}

	handler.GetMetadataByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDatasetHandler_DownloadByID_Success(t *testing.T) {
	handler, _, mockMetadata, mockDownload, _ := setupDatasetHandler()

	meta := newTestDatasetMeta("downloaded")
	content := []byte("ticker,news,change\nNVDA,headline,Gains sharply.\n")
	mockMetadata.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)
	mockDownload.On("DownloadByID", mock.Anything, meta.ID).Return(content, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/datasets/"+meta.ID+"/file", nil)
	c.Params = gin.Params{{Key: "id", Value: meta.ID}}

	handler.DownloadByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "downloaded.csv")
}

func TestDatasetHandler_Preview_Success(t *testing.T) {
	handler, _, mockMetadata, mockDownload, _ := setupDatasetHandler()

	meta := newTestDatasetMeta("previewed")
	content := []byte("ticker,news,change\n" +
		"NVDA,Nvidia receives a major analyst upgrade.,Gains sharply.\n" +
		"AAPL,Apple issues a mild profit warning.,Declines modestly.\n" +
		"MSFT,Microsoft trades in line with the market.,Edges up slightly.\n")
	mockMetadata.On("GetByID", mock.Anything, meta.ID).Return(meta, nil)
	mockDownload.On("DownloadByID", mock.Anything, meta.ID).Return(content, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/datasets/"+meta.ID+"/preview?limit=2", nil)
	c.Params = gin.Params{{Key: "id", Value: meta.ID}}

	handler.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NVDA")
	assert.Contains(t, w.Body.String(), "AAPL")
	assert.NotContains(t, w.Body.String(), "MSFT")
}

func TestDatasetHandler_DeleteByID_Success(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	datasetID := uuid.New().String()
	mockMetadata.On("DeleteByID", mock.Anything, datasetID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/datasets/"+datasetID, nil)
	c.Params = gin.Params{{Key: "id", Value: datasetID}}

	handler.DeleteByID(c)
	// ctx.Status alone does not flush the header to the recorder
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	mockMetadata.AssertExpectations(t)
}

func TestDatasetHandler_DeleteByID_NotFound(t *testing.T) {
	handler, _, mockMetadata, _, _ := setupDatasetHandler()

	datasetID := uuid.New().String()
	mockMetadata.On("DeleteByID", mock.Anything, datasetID).
		Return(fmt.Errorf("failed to get dataset: %w", datasets.ErrNotFound))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/datasets/"+datasetID, nil)
	c.Params = gin.Params{{Key: "id", Value: datasetID}}

	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
