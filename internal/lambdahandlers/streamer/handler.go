package streamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mrled/humantime/internal/logger"
	"github.com/mrled/humantime/internal/service/applystream"
)

// Handler holds the dependencies for the streamer Lambda handler
type Handler struct {
	streamerService *applystream.Service
	log             *slog.Logger
}

// New creates a handler around an existing service
func New(svc *applystream.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{streamerService: svc, log: log}
}

// NewHandler creates a new streamer handler configured from the environment
func NewHandler() (*Handler, error) {
	// Initialize logger with executable name for filtering
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	s3BucketName := os.Getenv("S3_BUCKET")
	if s3BucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}
	log.Info("Using S3 bucket", slog.String("bucket", s3BucketName))

	s3KeyPrefix := os.Getenv("S3_KEY_PREFIX")
	if s3KeyPrefix == "" {
		s3KeyPrefix = applystream.DefaultKeyPrefix
	}
	log.Info("Using S3 key prefix", slog.String("prefix", s3KeyPrefix))

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true
		})
		log.Info("S3 client configured", slog.String("endpoint", endpoint))
	} else {
		s3Client = s3.NewFromConfig(cfg)
	}

	return New(applystream.New(s3Client, s3BucketName, s3KeyPrefix), log), nil
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	// Delegate all processing to the applystream service
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}
