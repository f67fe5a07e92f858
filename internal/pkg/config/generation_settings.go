package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// GenerationSettings holds default values applied to dataset generation requests
type GenerationSettings struct {
	DefaultSamples int    `mapstructure:"default_samples" validate:"required,min=12"`
	DefaultSeed    int64  `mapstructure:"default_seed" validate:"required"`
	DefaultFormat  string `mapstructure:"default_format" validate:"required,oneof=csv jsonl"`
}

// Validate checks that all fields in GenerationSettings are valid
func (s *GenerationSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for GenerationSettings: %w", err)
	}

	return nil
}
