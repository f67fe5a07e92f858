package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Artifact store backend constants
const (
	FilesystemStoreBackend = "filesystem"
	S3StoreBackend         = "s3"
)

// S3Settings holds connection settings for an S3-compatible object store
type S3Settings struct {
	Endpoint     string `mapstructure:"endpoint"`
	Region       string `mapstructure:"region" validate:"required"`
	Bucket       string `mapstructure:"bucket" validate:"required"`
	AccessKey    string `mapstructure:"access_key" validate:"required"`
	SecretKey    string `mapstructure:"secret_key" validate:"required"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	UseSSL       bool   `mapstructure:"use_ssl"`
}

// Validate checks that all fields in S3Settings are valid
func (s *S3Settings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for S3Settings: %w", err)
	}

	return nil
}

// ArtifactStoreSettings holds configuration settings for dataset artifact storage
type ArtifactStoreSettings struct {
	Backend   string      `mapstructure:"backend" validate:"required,oneof=filesystem s3"`
	Directory string      `mapstructure:"directory"`
	S3        *S3Settings `mapstructure:"s3"`
}

// Validate checks that all fields in ArtifactStoreSettings are valid
func (s *ArtifactStoreSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ArtifactStoreSettings: %w", err)
	}

	switch s.Backend {
	case FilesystemStoreBackend:
		if s.Directory == "" {
			return fmt.Errorf("directory is required for filesystem backend")
		}
	case S3StoreBackend:
		if s.S3 == nil {
			return fmt.Errorf("s3 settings are required for s3 backend")
		}
		if err := s.S3.Validate(); err != nil {
			return err
		}
	}

	return nil
}
