package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RestConfig holds the full configuration of the REST application
type RestConfig struct {
	Port          string                `mapstructure:"port"`
	Logger        LoggerSettings        `mapstructure:"logger"`
	Database      DatabaseSettings      `mapstructure:"database"`
	ArtifactStore ArtifactStoreSettings `mapstructure:"artifact_store"`
	Events        EventSettings         `mapstructure:"events"`
	Idempotency   IdempotencySettings   `mapstructure:"idempotency"`
	Generation    GenerationSettings    `mapstructure:"generation"`
}

// Validate checks that all sections of the RestConfig are valid
func (c *RestConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.ArtifactStore.Validate(); err != nil {
		return err
	}
	if err := c.Events.Validate(); err != nil {
		return err
	}
	if err := c.Idempotency.Validate(); err != nil {
		return err
	}
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "price_movement.db")
	v.SetDefault("database.name", "price_movement")
	v.SetDefault("artifact_store.backend", FilesystemStoreBackend)
	v.SetDefault("artifact_store.directory", "data/datasets")
	v.SetDefault("events.enabled", false)
	v.SetDefault("idempotency.backend", MemoryIdempotencyBackend)
	v.SetDefault("idempotency.ttl", 24*time.Hour)
	v.SetDefault("generation.default_samples", 1200)
	v.SetDefault("generation.default_seed", 42)
	v.SetDefault("generation.default_format", "csv")
}

// InitializeRestConfig loads the REST application configuration from a yaml
// file, applying defaults and PMP_-prefixed environment variable overrides.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("PMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	// A missing config file is OK, defaults and env vars still apply

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
