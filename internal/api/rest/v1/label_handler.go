package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
)

// LabelHandler defines the interface for classifying price moves
type LabelHandler interface {
	Classify(ctx *gin.Context)
}

type labelHandler struct{}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler() LabelHandler {
	return &labelHandler{}
}

// Classify maps a return and implied volatility to a movement category
func (handler *labelHandler) Classify(ctx *gin.Context) {
	var request ClassifyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	ret, err := decimal.NewFromString(request.Return)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid return: %v", err.Error())})
		return
	}

	impliedVol, err := decimal.NewFromString(request.ImpliedVol)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid implied_vol: %v", err.Error())})
		return
	}

	z, err := movement.Normalize(ret, impliedVol, request.HorizonDays)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	category := movement.Classify(z)

	ctx.JSON(http.StatusOK, ClassifyResponse{
		Category: string(category),
		Z:        z.String(),
	})
}
