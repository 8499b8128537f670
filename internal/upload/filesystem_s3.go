package upload

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mapa3/distribucion-app/internal/config"
)

const bundleContentType = "application/json"

// s3API is the part of *s3.Client the filesystem uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// FilesystemS3 stores bundles in one S3-compatible bucket.
type FilesystemS3 struct {
	client     s3API
	bucketName string
}

// NewFilesystemS3 builds an S3 client from cfg. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain. A
// custom endpoint switches to path-style addressing for MinIO and
// LocalStack.
func NewFilesystemS3(ctx context.Context, cfg config.Upload) (*FilesystemS3, error) {
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	opts := make([]func(*awsconfig.LoadOptions) error, 0, 2)
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, withEndpointOverride(cfg.Endpoint))

	return &FilesystemS3{
		client:     client,
		bucketName: cfg.Bucket,
	}, nil
}

func withEndpointOverride(endpoint string) func(*s3.Options) {
	return func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}
}

// Write uploads r to key.
func (s *FilesystemS3) Write(ctx context.Context, key string, r io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(bundleContentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error putting %s: %w", s.URL(key), err)
	}
	return nil
}

// Open downloads key. The caller closes the body.
func (s *FilesystemS3) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, s.URL(key))
		}
		return nil, fmt.Errorf("error getting %s: %w", s.URL(key), err)
	}

	return result.Body, nil
}

// URL returns s3://bucket/key.
func (s *FilesystemS3) URL(key string) string {
	return ObjectURLScheme + s.bucketName + "/" + key
}
