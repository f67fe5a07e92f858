package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/validators"
)

// SplitRatiosRequest carries the train/validation/test fractions of a split
// generation request.
type SplitRatiosRequest struct {
	Train      float64 `json:"train" validate:"split_ratio"`
	Validation float64 `json:"validation" validate:"split_ratio"`
	Test       float64 `json:"test" validate:"split_ratio"`
}

// GenerateDatasetRequest is the payload for creating a dataset. Zero-valued
// fields fall back to the configured generation defaults.
type GenerateDatasetRequest struct {
	Samples     int                 `json:"samples" validate:"omitempty,min=12,max=1000000"`
	Seed        int64               `json:"seed" validate:"omitempty"`
	Format      string              `json:"format" validate:"omitempty,oneof=csv jsonl"`
	Name        string              `json:"name" validate:"omitempty,min=1,max=255"`
	SplitRatios *SplitRatiosRequest `json:"split_ratios" validate:"omitempty"`
}

// Validate for validating GenerateDatasetRequest struct
func (r *GenerateDatasetRequest) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("split_ratio", validators.SplitRatioValidation); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// ClassifyRequest is the payload for classifying a price move. Return and
// implied volatility are decimal strings to avoid float rounding on the wire.
type ClassifyRequest struct {
	Return      string `json:"return" validate:"required"`
	ImpliedVol  string `json:"implied_vol" validate:"required"`
	HorizonDays int    `json:"horizon_days" validate:"required,min=1"`
}

// Validate for validating ClassifyRequest struct
func (r *ClassifyRequest) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// DatasetMetaResponse is the wire representation of dataset metadata.
type DatasetMetaResponse struct {
	ID             string         `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	RequestedBy    string         `json:"requested_by"`
	Name           string         `json:"name"`
	Format         string         `json:"format"`
	Samples        int            `json:"samples"`
	Seed           int64          `json:"seed"`
	SizeBytes      int64          `json:"size_bytes"`
	Checksum       string         `json:"checksum"`
	CategoryCounts map[string]int `json:"category_counts"`
	Split          *string        `json:"split,omitempty"`
	SplitOfID      *string        `json:"split_of_id,omitempty"`
}

// CategoryResponse describes one rung of the movement ladder.
type CategoryResponse struct {
	Category      string  `json:"category"`
	Sentence      string  `json:"sentence"`
	Direction     string  `json:"direction"`
	Keyword       string  `json:"keyword"`
	LowerBound    string  `json:"lower_bound"`
	UpperBound    *string `json:"upper_bound,omitempty"`
	AlignmentRate float64 `json:"alignment_rate"`
	TemplateCount int     `json:"template_count"`
}

// SampleResponse is one parsed dataset row.
type SampleResponse struct {
	Ticker string `json:"ticker"`
	News   string `json:"news"`
	Change string `json:"change"`
}

// ClassifyResponse is the classification result for a price move.
type ClassifyResponse struct {
	Category string `json:"category"`
	Z        string `json:"z"`
}

// ErrorResponse carries an error message to the client.
type ErrorResponse struct {
	Message string `json:"message"`
}
