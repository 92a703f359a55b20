package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Client defines the S3 operations this service needs, narrowed from the
// full AWS SDK surface so a test double can implement it without pulling
// in the real client.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
}

// S3Config configures the S3/MinIO-compatible object store.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // non-empty for MinIO/S3-compatible deployments
	ForcePathStyle  bool
	UploadTimeout   time.Duration
}

// Option customizes Store construction via the functional-options idiom.
type Option func(*options)

type options struct {
	client Client
}

// WithClient overrides the S3 client, used by tests to inject a fake.
func WithClient(c Client) Option {
	return func(o *options) { o.client = c }
}

// Store is the thin S3/MinIO wrapper the event-ingestion handlers upload
// packaged events through and the hash-verify endpoint reads existence
// from.
type Store struct {
	client        Client
	bucket        string
	uploadTimeout time.Duration
}

// NewStore constructs a Store, loading AWS credentials/region from cfg and
// honoring cfg.Endpoint/ForcePathStyle for MinIO compatibility.
func NewStore(ctx context.Context, cfg S3Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, errors.New("storage: bucket and region are required")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
			awsOpts = append(awsOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, fmt.Errorf("storage: loading AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsCfg, func(o *s3aws.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &Store{client: client, bucket: cfg.Bucket, uploadTimeout: cfg.UploadTimeout}, nil
}

// PutObject uploads data under key.
func (s *Store) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err := s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: put object %q: %w", key, err)
	}
	return nil
}

// ObjectExists reports whether key is present in the bucket. A "not found"
// response from HeadObject is treated as a normal false result, not an
// error — only transport/permission failures are surfaced as errors.
func (s *Store) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return false, nil
		}
	}
	return false, fmt.Errorf("storage: head object %q: %w", key, err)
}
