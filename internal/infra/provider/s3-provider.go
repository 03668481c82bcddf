package provider

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"audiobio/internal/config"
	"audiobio/internal/infra/logger"
)

// S3RecordingStorage uploads recordings to an S3 bucket.
type S3RecordingStorage struct {
	Logger *logger.Logger
	client *s3.Client
	bucket string
}

// NewS3RecordingStorage builds the S3 client from environment
// configuration. An optional base endpoint supports S3-compatible
// stores (MinIO) in local setups.
func NewS3RecordingStorage(ctx context.Context, logger *logger.Logger) (*S3RecordingStorage, error) {
	region := config.GetEnv("AWS_S3_REGION")
	bucket := config.GetEnv("AWS_S3_BUCKET")
	accessKey := config.GetEnv("AWS_ACCESS_KEY_ID_AUDIOBIO")
	secretKey := config.GetEnv("AWS_SECRET_ACCESS_KEY_AUDIOBIO")
	baseEndpoint := config.GetEnvDefault("AWS_S3_BASE_ENDPOINT", "")

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3RecordingStorage{Logger: logger, client: client, bucket: bucket}, nil
}

func (p *S3RecordingStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to upload %s to S3: %s", key, err.Error()))
		return fmt.Errorf("uploading recording: %w", err)
	}
	p.Logger.Info(fmt.Sprintf("Uploaded %s to S3 bucket %s", key, p.bucket))
	return nil
}

// NewRecordingKey derives a unique object key for an uploaded file,
// keeping the original extension.
func NewRecordingKey(originalFilename string) string {
	return fmt.Sprintf("AudioBio_Recording_%s%s", uuid.New(), filepath.Ext(originalFilename))
}
