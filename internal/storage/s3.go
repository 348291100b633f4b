package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"mapty/workout-tracker/internal/config"
	"mapty/workout-tracker/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

// s3SlotRepository implements repository.SlotRepository with one object per slot.
type s3SlotRepository struct {
	client     *s3.Client
	bucketName string
	prefix     string
}

// NewS3SlotRepository creates a slot repository on an S3-compatible bucket.
func NewS3SlotRepository(ctx context.Context, cfg config.S3Config) (repository.SlotRepository, error) {
	// Custom resolver for S3-compatible endpoints (MinIO, Spaces, ...)
	endpoint := endpointURL(cfg)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fall back to default AWS endpoint resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Error().Err(err).Msg("load AWS SDK config for S3")
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services
	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Info().Str("endpoint", endpoint).Str("bucket", cfg.BucketName).Msg("s3 slot storage initialized")

	return newS3SlotRepository(client, cfg.BucketName), nil
}

// endpointURL adds a scheme to a bare host:port endpoint, https unless UseSSL is off.
func endpointURL(cfg config.S3Config) string {
	if cfg.Endpoint == "" || strings.Contains(cfg.Endpoint, "://") {
		return cfg.Endpoint
	}
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

func newS3SlotRepository(client *s3.Client, bucket string) *s3SlotRepository {
	return &s3SlotRepository{
		client:     client,
		bucketName: bucket,
		prefix:     "slots/",
	}
}

func (s *s3SlotRepository) objectKey(key string) string {
	return s.prefix + key + ".json"
}

func (s *s3SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *s3SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("bucket", s.bucketName).Msg("put slot object")
	}
	return err
}

// Delete removes the slot object. S3 treats deleting a missing key as success.
func (s *s3SlotRepository) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("bucket", s.bucketName).Msg("delete slot object")
		return err
	}
	log.Info().Str("key", key).Str("bucket", s.bucketName).Msg("deleted slot object")
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
