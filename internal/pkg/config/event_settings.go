package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EventSettings holds configuration settings for dataset event publishing
type EventSettings struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Validate checks that all fields in EventSettings are valid
func (s *EventSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EventSettings: %w", err)
	}

	if s.Enabled {
		if len(s.Brokers) == 0 {
			return fmt.Errorf("at least one broker is required when events are enabled")
		}
		if s.Topic == "" {
			return fmt.Errorf("topic is required when events are enabled")
		}
	}

	return nil
}
