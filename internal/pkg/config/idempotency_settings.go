package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Idempotency backend constants
const (
	MemoryIdempotencyBackend = "memory"
	RedisIdempotencyBackend  = "redis"
)

// RedisSettings holds connection settings for a redis server
type RedisSettings struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Validate checks that all fields in RedisSettings are valid
func (s *RedisSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RedisSettings: %w", err)
	}

	return nil
}

// IdempotencySettings holds configuration settings for request idempotency tracking
type IdempotencySettings struct {
	Backend string         `mapstructure:"backend" validate:"required,oneof=memory redis"`
	TTL     time.Duration  `mapstructure:"ttl"`
	Redis   *RedisSettings `mapstructure:"redis"`
}

// Validate checks that all fields in IdempotencySettings are valid
func (s *IdempotencySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for IdempotencySettings: %w", err)
	}

	if s.TTL <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	if s.Backend == RedisIdempotencyBackend {
		if s.Redis == nil {
			return fmt.Errorf("redis settings are required for redis backend")
		}
		if err := s.Redis.Validate(); err != nil {
			return err
		}
	}

	return nil
}
