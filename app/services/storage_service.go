package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStorage persists binary attachments and exposes them through
// stable public URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

// S3StorageConfig contains configuration for S3-backed storage
type S3StorageConfig struct {
	Bucket  string
	Prefix  string // e.g. "campaign-media/"
	Region  string
	BaseURL string // optional CDN base, falls back to the bucket endpoint
}

// S3Storage implements ObjectStorage on top of AWS S3
type S3Storage struct {
	client  *s3.Client
	bucket  string
	prefix  string
	region  string
	baseURL string
}

// NewS3Storage creates a new S3 storage adapter using the default AWS credential chain
func NewS3Storage(ctx context.Context, cfg S3StorageConfig) (*S3Storage, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		region:  region,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Upload stores the object and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	fullKey := s.prefix + key

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the public URL for a stored object key
func (s *S3Storage) PublicURL(key string) string {
	fullKey := s.prefix + key
	if s.baseURL != "" {
		return s.baseURL + "/" + fullKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)
}

// Delete removes a stored object
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	fullKey := s.prefix + key

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", fullKey, err)
	}

	return nil
}

// MockObjectStorage records uploads for testing
type MockObjectStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	uploads  []string
	FailWith error
}

// NewMockObjectStorage creates a new mock storage adapter
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{objects: make(map[string][]byte)}
}

// Upload records the object in memory
func (s *MockObjectStorage) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if s.FailWith != nil {
		return "", s.FailWith
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	s.uploads = append(s.uploads, key)
	return s.PublicURL(key), nil
}

// PublicURL returns a deterministic fake URL
func (s *MockObjectStorage) PublicURL(key string) string {
	return "https://storage.test/" + key
}

// Delete removes a recorded object
func (s *MockObjectStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// UploadedKeys returns the keys uploaded so far, in order
func (s *MockObjectStorage) UploadedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.uploads))
	copy(out, s.uploads)
	return out
}
