package commands

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/humantime/internal/adapter/s3phrasebook"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/repository"
	"github.com/spf13/cobra"
)

// PersistenceFlags holds flags related to phrasebook storage
type PersistenceFlags struct {
	FilePath       string
	DynamoTable    string
	DynamoEndpoint string
}

// addPersistenceFlags adds common persistence-related flags to a command
func addPersistenceFlags(cmd *cobra.Command, flags *PersistenceFlags) {
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "Path to JSON file for persistence")
	cmd.Flags().StringVarP(&flags.DynamoTable, "dynamodb-table", "t", "", "DynamoDB table name for persistence")
	cmd.Flags().StringVarP(&flags.DynamoEndpoint, "dynamodb-endpoint", "e", "", "DynamoDB endpoint URL (optional, uses AWS SDK default if not specified)")
}

func (f PersistenceFlags) config() repository.RepositoryConfig {
	return repository.RepositoryConfig{
		FilePath:       f.FilePath,
		DynamoTable:    f.DynamoTable,
		DynamoEndpoint: f.DynamoEndpoint,
	}
}

// repository opens the configured repository; it is a usage error to name none
func (f PersistenceFlags) repository(ctx context.Context) (model.PhrasebookRepository, error) {
	if !f.config().Configured() {
		return nil, usageErrorf("one of --file or --dynamodb-table is required")
	}
	return repository.NewRepository(ctx, f.config())
}

// optionalRepository opens the configured repository, or returns nil when none is named
func (f PersistenceFlags) optionalRepository(ctx context.Context) (model.PhrasebookRepository, error) {
	if !f.config().Configured() {
		return nil, nil
	}
	return repository.NewRepository(ctx, f.config())
}

// S3Flags locate a phrasebook object in S3
type S3Flags struct {
	Bucket   string
	Key      string
	Endpoint string
}

func addS3Flags(cmd *cobra.Command, flags *S3Flags) {
	cmd.Flags().StringVarP(&flags.Bucket, "bucket", "b", "", "S3 bucket name")
	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "S3 object key")
	cmd.Flags().StringVar(&flags.Endpoint, "s3-endpoint", "", "S3 endpoint URL (optional, uses AWS SDK default if not specified)")
}

// S3ClientFactory builds the client the publish and fetch commands talk to
type S3ClientFactory func(ctx context.Context, endpoint string) (s3phrasebook.API, error)

func newS3Client(ctx context.Context, endpoint string) (s3phrasebook.API, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &endpoint
		o.UsePathStyle = true
	}), nil
}

func (f S3Flags) adapter(ctx context.Context, newClient S3ClientFactory) (*s3phrasebook.S3Phrasebook, error) {
	if f.Bucket == "" || f.Key == "" {
		return nil, usageErrorf("--bucket and --key are required")
	}
	client, err := newClient(ctx, f.Endpoint)
	if err != nil {
		return nil, err
	}
	return s3phrasebook.New(client, f.Bucket, f.Key), nil
}
