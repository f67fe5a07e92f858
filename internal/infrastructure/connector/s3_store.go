package connector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
)

// S3Store is an implementation of ArtifactStore backed by an S3-compatible
// object store (AWS S3, MinIO, etc.).
type S3Store struct {
	client *s3.Client
	bucket string
	logger logger.Logger
}

// NewS3Store creates an S3Store from settings and ensures the bucket exists.
func NewS3Store(ctx context.Context, settings *config.S3Settings, logger logger.Logger) (*S3Store, error) {
	if settings == nil {
		return nil, fmt.Errorf("s3 settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid s3 settings: %w", err)
	}

	endpoint := settings.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if settings.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(settings.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.AccessKey,
			settings.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = settings.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3Store{
		client: client,
		bucket: settings.Bucket,
		logger: logger,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// ensureBucket creates the bucket if it does not exist yet.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info(fmt.Sprintf("creating bucket '%s'", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another process may have created the bucket in the meantime.
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Put stores the artifact bytes under the storage key.
func (s *S3Store) Put(ctx context.Context, storageKey string, data []byte) error {
	if storageKey == "" {
		return fmt.Errorf("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to upload artifact '%s': %w", storageKey, err)
	}

	s.logger.Info(fmt.Sprintf("stored artifact '%s' (%d bytes)", storageKey, len(data)))
	return nil
}

// Get retrieves the artifact bytes by storage key.
func (s *S3Store) Get(ctx context.Context, storageKey string) ([]byte, error) {
	if storageKey == "" {
		return nil, fmt.Errorf("storage key is required")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: artifact '%s'", datasets.ErrNotFound, storageKey)
		}
		return nil, fmt.Errorf("failed to download artifact '%s': %w", storageKey, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact '%s': %w", storageKey, err)
	}
	return data, nil
}

// Delete removes the artifact at the storage key. S3 delete is idempotent,
// so a missing key is not an error.
func (s *S3Store) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return fmt.Errorf("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete artifact '%s': %w", storageKey, err)
	}

	s.logger.Info(fmt.Sprintf("deleted artifact '%s'", storageKey))
	return nil
}
