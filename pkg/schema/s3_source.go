package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// maxSchemaObjectSize caps a single schema object read from S3.
const maxSchemaObjectSize = 1 << 20

// S3Client defines the S3 operations used by S3Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config contains configuration for an S3 schema source.
type S3Config struct {
	Bucket         string `env:"SCHEMA_S3_BUCKET"`
	Prefix         string `env:"SCHEMA_S3_PREFIX"`
	Region         string `env:"SCHEMA_S3_REGION"`
	AccessKeyID    string `env:"SCHEMA_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"SCHEMA_S3_SECRET_KEY"`
	Endpoint       string `env:"SCHEMA_S3_ENDPOINT"`         // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"SCHEMA_S3_FORCE_PATH_STYLE"` // For S3-compatible services like MinIO
}

// S3Source loads schema documents stored as objects under a bucket prefix.
// Only objects directly under the prefix with a supported extension are read.
type S3Source struct {
	client S3Client
	bucket string
	prefix string
}

// S3Option configures S3Source creation.
type S3Option func(*s3Options)

type s3Options struct {
	client     S3Client
	httpClient *http.Client
}

// WithS3Client sets a pre-configured S3 client. Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// NewS3Source creates a schema source backed by an S3 bucket.
func NewS3Source(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidSourceConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if client == nil {
		if cfg.Region == "" {
			return nil, fmt.Errorf("%w: region is required", ErrInvalidSourceConfig)
		}

		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	prefix := strings.TrimPrefix(cfg.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Source{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

func (s *S3Source) Load(ctx context.Context) (map[string]*Schema, error) {
	schemas := make(map[string]*Schema)

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(s.prefix),
		Delimiter: aws.String("/"),
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		page, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, classifyS3Error(err, "list")
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, s.prefix)
			if name == "" || strings.Contains(name, "/") || NewParserForFile(name) == nil {
				continue
			}

			content, err := s.read(ctx, key)
			if err != nil {
				return nil, err
			}
			sch, err := ParseFile(ctx, name, content)
			if err != nil {
				return nil, err
			}
			if err := addSchema(schemas, name, sch); err != nil {
				return nil, err
			}
		}

		if !aws.ToBool(page.IsTruncated) || page.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = page.NextContinuationToken
	}

	return schemas, nil
}

func (s *S3Source) read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get "+key)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(io.LimitReader(out.Body, maxSchemaObjectSize+1))
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSource, err)
	}
	if len(content) > maxSchemaObjectSize {
		return nil, fmt.Errorf("%w: object %s exceeds %d bytes", ErrFailedToReadSource, key, maxSchemaObjectSize)
	}
	return content, nil
}

// classifyS3Error converts S3 errors to schema source errors.
func classifyS3Error(err error, operation string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.Join(ErrLoadingCancelled, err)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, operation)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "NoSuchKey":
			return fmt.Errorf("%w: %s", ErrSchemaNotFound, operation)
		default:
			return fmt.Errorf("%w: %s operation failed (code: %s): %v", ErrFailedToReadSource, operation, apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("%w: %s operation failed: %v", ErrFailedToReadSource, operation, err)
}
