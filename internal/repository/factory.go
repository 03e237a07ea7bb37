package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/repository/dynamorepo"
	"github.com/mrled/humantime/internal/repository/memrepo"
)

// ErrNoBackend is returned when a RepositoryConfig names no storage at all
var ErrNoBackend = errors.New("must specify either FilePath or DynamoTable in repository configuration")

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence (mutually exclusive with DynamoDB options)
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// Configured reports whether cfg names a backend
func (cfg RepositoryConfig) Configured() bool {
	return cfg.DynamoTable != "" || cfg.FilePath != ""
}

// NewDynamoClient builds a DynamoDB client from the default AWS configuration,
// pointing it at endpoint when one is given (DynamoDB Local, LocalStack).
func NewDynamoClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if endpoint == "" {
		return dynamodb.NewFromConfig(awsCfg), nil
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = &endpoint
	}), nil
}

// NewRepository creates a PhrasebookRepository based on the provided configuration.
// DynamoDB wins when both a table and a file are given.
// It returns ErrNoBackend if neither is provided.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.PhrasebookRepository, error) {
	if cfg.DynamoTable != "" {
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using DynamoDB phrasebook repository",
			slog.String("table", cfg.DynamoTable),
			slog.String("endpoint", cfg.DynamoEndpoint))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil
	}

	if cfg.FilePath != "" {
		memRepo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Debug("Using JSON phrasebook repository", slog.String("path", cfg.FilePath))
		return memRepo, nil
	}

	return nil, ErrNoBackend
}
