package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
)

// CorpusHandler defines the interface for inspecting the corpus vocabulary
type CorpusHandler interface {
	ListCategories(ctx *gin.Context)
	ListTickers(ctx *gin.Context)
	ListTemplates(ctx *gin.Context)
}

// corpusHandler struct holds the catalog
type corpusHandler struct {
	catalog *corpus.Catalog
}

// NewCorpusHandler creates a new CorpusHandler
func NewCorpusHandler(catalog *corpus.Catalog) CorpusHandler {
	return &corpusHandler{catalog: catalog}
}

// ListCategories returns the movement ladder with bounds and alignment rates
func (handler *corpusHandler) ListCategories(ctx *gin.Context) {
	ladder := movement.Ladder()

	response := make([]CategoryResponse, 0, len(ladder))
	for _, category := range ladder {
		lo, hi, unbounded := movement.Bounds(category)

		categoryResponse := CategoryResponse{
			Category:      string(category),
			Sentence:      category.Sentence(),
			Direction:     category.Direction(),
			Keyword:       category.Keyword(),
			LowerBound:    lo.String(),
			AlignmentRate: handler.catalog.AlignmentRate(category),
			TemplateCount: len(handler.catalog.Templates[category]),
		}
		if !unbounded {
			upper := hi.String()
			categoryResponse.UpperBound = &upper
		}

		response = append(response, categoryResponse)
	}

	ctx.JSON(http.StatusOK, response)
}

// ListTickers returns the ticker vocabulary
func (handler *corpusHandler) ListTickers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, handler.catalog.Tickers)
}

// ListTemplates returns headline templates, optionally for one category
func (handler *corpusHandler) ListTemplates(ctx *gin.Context) {
	if rawCategory := ctx.Query("category"); len(rawCategory) > 0 {
		category := movement.Category(rawCategory)
		if !category.Valid() {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("unknown category: %s", rawCategory)})
			return
		}
		ctx.JSON(http.StatusOK, handler.catalog.Templates[category])
		return
	}

	templates := make(map[string][]string, len(handler.catalog.Templates))
	for category, categoryTemplates := range handler.catalog.Templates {
		templates[string(category)] = categoryTemplates
	}
	ctx.JSON(http.StatusOK, templates)
}
