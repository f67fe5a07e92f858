package datasets

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned by repositories and services when a dataset does
// not exist.
var ErrNotFound = errors.New("dataset not found")

// ErrInvalidSpec is returned by the generation service when a spec fails
// validation after defaults were applied, so transports can map it to a
// client error.
var ErrInvalidSpec = errors.New("invalid generation spec")

// Supported artifact formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Split names for dataset shards.
const (
	SplitTrain      = "train"
	SplitValidation = "validation"
	SplitTest       = "test"
)

// DatasetMeta entity
type DatasetMeta struct {
	ID             string                    `validate:"required,uuid4"`
	CreatedAt      time.Time                 `validate:"required"`
	RequestedBy    string                    `validate:"required,uuid4"`
	Name           string                    `validate:"required,min=1,max=255"`
	Format         string                    `validate:"required,oneof=csv jsonl"`
	Samples        int                       `validate:"required,min=1"`
	Seed           int64                     `validate:"required"`
	SizeBytes      int64                     `validate:"required,min=1"`
	Checksum       string                    `validate:"required,len=64,hexadecimal"`
	StorageKey     string                    `validate:"required,min=1,max=512"`
	CategoryCounts map[movement.Category]int `validate:"required"`
	Split          *string                   `validate:"omitempty,oneof=train validation test"`
	SplitOfID      *string                   `validate:"omitempty,uuid4"`
}

// Validate for validating DatasetMeta struct
func (d *DatasetMeta) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
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

	// A shard carries both split fields or neither.
	if (d.Split == nil) != (d.SplitOfID == nil) {
		return fmt.Errorf("validation failed: Split and SplitOfID must be set together")
	}

	return nil
}

// DatasetQuery is the filter for listing dataset metadata.
type DatasetQuery struct {
	Name         string    `validate:"omitempty,max=255"`
	Format       string    `validate:"omitempty,oneof=csv jsonl"`
	CreatedAfter time.Time `validate:"omitempty"`
	Limit        int       `validate:"omitempty,min=1,max=1000"`
	Offset       int       `validate:"omitempty,min=0"`
	SortBy       string    `validate:"omitempty,oneof=created_at name samples size_bytes"`
	SortOrder    string    `validate:"omitempty,oneof=asc desc"`
}

// NewDatasetQuery creates a query with default pagination.
func NewDatasetQuery() *DatasetQuery {
	return &DatasetQuery{
		Limit:  100,
		Offset: 0,
	}
}

// Validate for validating DatasetQuery struct
func (q *DatasetQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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

// SplitRatios are the train/validation/test fractions of a split request.
// Each fraction must be positive and the three must sum to one.
type SplitRatios struct {
	Train      float64 `validate:"required,gt=0,lt=1"`
	Validation float64 `validate:"required,gt=0,lt=1"`
	Test       float64 `validate:"required,gt=0,lt=1"`
}

// splitRatioTolerance absorbs float rounding when checking the sum.
const splitRatioTolerance = 1e-9

// splitNameSuffixMax is the longest shard name suffix ("-validation").
const splitNameSuffixMax = len("-" + SplitValidation)

// ShardSizes returns the contiguous train/validation/test shard sizes for a
// corpus of n samples. Validation and test get the floor of ratio*n, train
// absorbs the remainder.
func (r *SplitRatios) ShardSizes(n int) (train, validation, test int) {
	validation = int(r.Validation * float64(n))
	test = int(r.Test * float64(n))
	train = n - validation - test
	return train, validation, test
}

// Validate for validating SplitRatios struct
func (r *SplitRatios) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for SplitRatios: %w", err)
	}

	if math.Abs(r.Train+r.Validation+r.Test-1.0) > splitRatioTolerance {
		return fmt.Errorf("split ratios must sum to 1, got %g", r.Train+r.Validation+r.Test)
	}

	return nil
}

// GenerationSpec describes one dataset generation request. Zero values for
// Samples, Seed and Format are filled with defaults by the generation
// service before validation.
type GenerationSpec struct {
	Samples     int          `validate:"required,min=12,max=1000000"`
	Seed        int64        `validate:"required"`
	Format      string       `validate:"required,oneof=csv jsonl"`
	Name        string       `validate:"omitempty,min=1,max=255"`
	SplitRatios *SplitRatios `validate:"omitempty"`
}

// Validate for validating GenerationSpec struct
func (s *GenerationSpec) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
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

	if s.SplitRatios != nil {
		if err := s.SplitRatios.Validate(); err != nil {
			return err
		}

		trainN, validationN, testN := s.SplitRatios.ShardSizes(s.Samples)
		if trainN == 0 || validationN == 0 || testN == 0 {
			return fmt.Errorf("splitting %d samples leaves an empty shard (train=%d, validation=%d, test=%d)", s.Samples, trainN, validationN, testN)
		}

		// Shard names carry a split suffix and must still fit the name cap.
		if len(s.Name)+splitNameSuffixMax > 255 {
			return fmt.Errorf("name exceeds %d characters, leaving no room for shard name suffixes", 255-splitNameSuffixMax)
		}
	}

	return nil
}

// EventTypeDatasetCreated is the type of the event published after a
// successful generation.
const EventTypeDatasetCreated = "dataset.created"

// Event is the message published to the event stream when a dataset is
// created.
type Event struct {
	Type       string    `json:"type"`
	DatasetID  string    `json:"dataset_id"`
	Name       string    `json:"name"`
	Format     string    `json:"format"`
	Samples    int       `json:"samples"`
	OccurredAt time.Time `json:"occurred_at"`
}
