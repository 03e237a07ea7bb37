package s3phrasebook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/pkg/phrasebook"
)

// API is the subset of the S3 client the adapter uses
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Phrasebook publishes and fetches a single phrasebook document stored as a YAML object
type S3Phrasebook struct {
	client       API
	bucketName   string
	key          string
	contentType  string
	cacheControl string
}

// New creates a new S3Phrasebook adapter
func New(client API, bucketName, key string) *S3Phrasebook {
	return &S3Phrasebook{
		client:       client,
		bucketName:   bucketName,
		key:          key,
		contentType:  "application/yaml",
		cacheControl: "max-age=300",
	}
}

// Load fetches the object and parses it as a phrasebook.
// A missing object is reported as model.ErrNotFound.
func (s *S3Phrasebook) Load(ctx context.Context) (*phrasebook.Phrasebook, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.bucketName, s.key, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	pb, err := phrasebook.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucketName, s.key, err)
	}
	return pb, nil
}

// Save uploads the phrasebook as YAML
func (s *S3Phrasebook) Save(ctx context.Context, pb *phrasebook.Phrasebook) error {
	data, err := pb.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode phrasebook: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(s.key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(s.contentType),
		CacheControl: aws.String(s.cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	slog.Info("Published phrasebook",
		slog.String("bucket", s.bucketName),
		slog.String("key", s.key),
		slog.String("locale", pb.Locale()),
		slog.Int("bytes", len(data)))
	return nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *S3Phrasebook) Delete(ctx context.Context) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	slog.Info("Removed published phrasebook",
		slog.String("bucket", s.bucketName),
		slog.String("key", s.key))
	return nil
}

// Key returns the object key the adapter reads and writes
func (s *S3Phrasebook) Key() string {
	return s.key
}
