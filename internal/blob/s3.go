package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 implements Store on a single S3-compatible bucket (AWS S3 or MinIO).
// Keys map to object keys directly.
type S3 struct {
	client *s3.Client
	bucket string
}

// S3Config holds construction parameters. Credentials fall back to the
// default AWS chain when AccessKeyID is empty.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional
	SecretAccessKey string // optional
	SessionToken    string // optional
	PathStyle       bool
}

// Environment variables:
//
//	LIFESPAN_S3_REGION=<region> (default us-east-1)
//	LIFESPAN_S3_ENDPOINT=<url> (optional, for MinIO)
//	LIFESPAN_S3_PATH_STYLE=true|false
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// S3ConfigFromEnv overlays the LIFESPAN_S3_* variables onto base.
func S3ConfigFromEnv(base S3Config) S3Config {
	if v := os.Getenv("LIFESPAN_S3_REGION"); v != "" {
		base.Region = v
	}
	if v := os.Getenv("LIFESPAN_S3_ENDPOINT"); v != "" {
		base.Endpoint = v
	}
	if v := os.Getenv("LIFESPAN_S3_PATH_STYLE"); v != "" {
		base.PathStyle = strings.EqualFold(v, "true")
	}
	return base
}

// NewS3 creates an S3 blob store from cfg.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3(client, cfg.Bucket), nil
}

func newS3(client *s3.Client, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

func (s *S3) Driver() Driver { return DriverS3 }

// Bucket is the bucket every key lives in.
func (s *S3) Bucket() string { return s.bucket }

// Put uploads r. Bodies that cannot seek are buffered first: the SDK's
// checksum middleware refuses an unseekable stream on plain-http endpoints
// such as a local MinIO.
func (s *S3) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	body, ok := r.(io.ReadSeeker)
	if !ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return Info{}, fmt.Errorf("read body for s3://%s/%s: %w", s.bucket, key, err)
		}
		body = bytes.NewReader(b)
	}
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &key, Body: body}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return s.Head(ctx, key)
}

func (s *S3) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return Info{}, nil, s.mapError(key, err)
	}
	info := Info{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		LastModified: aws.ToTime(out.LastModified),
	}
	return info, out.Body, nil
}

func (s *S3) Head(ctx context.Context, key string) (Info, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return Info{}, s.mapError(key, err)
	}
	return Info{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         strings.Trim(aws.ToString(out.ETag), `"`),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

func (s *S3) mapError(key string, err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	var re *awshttp.ResponseError
	if errors.As(err, &nsk) || errors.As(err, &nf) || (errors.As(err, &re) && re.HTTPStatusCode() == 404) {
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, key)
	}
	return fmt.Errorf("s3://%s/%s: %w", s.bucket, key, err)
}
