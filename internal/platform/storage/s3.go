package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps uploads in an S3 bucket. It also works against
// S3-compatible services (MinIO and the like) via a custom endpoint.
type S3Store struct {
	client   *s3.Client
	bucket   string
	endpoint string
	region   string
}

// S3Options configures the S3 store. AccessKey and SecretKey are optional,
// without them the default AWS credential chain is used.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Store creates a store backed by the given bucket.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = &opts.Endpoint
			// Custom endpoints rarely support virtual-hosted bucket names.
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		bucket:   opts.Bucket,
		endpoint: strings.TrimSuffix(opts.Endpoint, "/"),
		region:   opts.Region,
	}, nil
}

// Save uploads the object and returns its public URL.
func (s *S3Store) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &name,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}
	return s.objectURL(name), nil
}

// Delete removes a previously stored object by its URL. Paths that do not
// belong to this store are ignored.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	key, ok := s.keyFromPath(path)
	if !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from s3: %w", err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// keyFromPath recovers the object key from a URL produced by objectURL.
func (s *S3Store) keyFromPath(path string) (string, bool) {
	u, err := url.Parse(path)
	if err != nil {
		return "", false
	}
	p := strings.TrimPrefix(u.Path, "/")
	// Path-style URLs carry the bucket as the first segment.
	if rest, ok := strings.CutPrefix(p, s.bucket+"/"); ok {
		return rest, true
	}
	if p == "" {
		return "", false
	}
	return p, true
}
