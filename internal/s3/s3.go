package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

// ImageStore uploads dish pictures to the configured bucket.
type ImageStore struct {
	Cfg *config.Config
}

// NewImageStore creates a new ImageStore.
func NewImageStore(cfg *config.Config) *ImageStore {
	return &ImageStore{Cfg: cfg}
}

// newS3Client creates a new S3 client from the app config.
// When AWS access key and secret are provided, static credentials are used;
// otherwise the default credential chain is preserved (IAM role, instance
// profile, etc.).
func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.EnvVars.AWSRegion),
	}

	if cfg.EnvVars.AWSAccessKeyID != "" && cfg.EnvVars.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.EnvVars.AWSAccessKeyID,
			cfg.EnvVars.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// UploadDishImage uploads imgBytes under key and returns the public location.
func (s *ImageStore) UploadDishImage(ctx context.Context, imgBytes []byte, key, contentType string) (string, error) {
	client, err := newS3Client(ctx, s.Cfg)
	if err != nil {
		return "", err
	}

	uploader := manager.NewUploader(client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.Cfg.EnvVars.S3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(imgBytes),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	result, err := uploader.Upload(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return result.Location, nil
}

// DishImageKey returns a fresh object key for an uploaded picture with the
// given extension (".jpg", ".png", ...).
func DishImageKey(ext string) string {
	return fmt.Sprintf("dishes/images/%s%s", uuid.New().String(), ext)
}
