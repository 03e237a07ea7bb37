package applystream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/humantime/internal/adapter/dynamostream"
	"github.com/mrled/humantime/internal/adapter/s3phrasebook"
	"github.com/mrled/humantime/internal/model"
)

// DefaultKeyPrefix is where mirrored phrasebooks land when no prefix is configured
const DefaultKeyPrefix = "phrasebooks/"

// Service mirrors phrasebook table changes into S3, one YAML object per locale
type Service struct {
	client    s3phrasebook.API
	bucket    string
	keyPrefix string
}

// New creates a new applystream service
func New(client s3phrasebook.API, bucket, keyPrefix string) *Service {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Service{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

// Key returns the object key a locale is mirrored to
func (s *Service) Key(locale string) string {
	return s.keyPrefix + model.NormalizeLocale(locale) + ".yaml"
}

// ProcessStreamBatch applies a batch of DynamoDB stream records to the bucket.
// Every record is attempted; the returned error joins the failures so Lambda
// retries the batch. Items that are not phrasebooks are skipped.
func (s *Service) ProcessStreamBatch(ctx context.Context, records []events.DynamoDBEventRecord) error {
	slog.Info("Processing batch from DynamoDB stream", slog.Int("record_count", len(records)))

	var errs []error
	processedCount, skippedCount := 0, 0
	for _, record := range records {
		err := s.processRecord(ctx, record)
		switch {
		case errors.Is(err, dynamostream.ErrNotPhrasebook):
			skippedCount++
		case err != nil:
			slog.Error("Error processing record",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("event %s: %w", record.EventID, err))
		default:
			processedCount++
		}
	}

	slog.Info("Processed stream batch",
		slog.Int("processed", processedCount),
		slog.Int("skipped", skippedCount),
		slog.Int("failed", len(errs)),
		slog.Int("total", len(records)))

	return errors.Join(errs...)
}

// processRecord processes a single DynamoDB stream record
func (s *Service) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	slog.Debug("Processing record",
		slog.String("event_id", record.EventID),
		slog.String("event_name", record.EventName))

	switch record.EventName {
	case "INSERT", "MODIFY":
		return s.handleInsertOrModify(ctx, record)
	case "REMOVE":
		return s.handleRemove(ctx, record)
	default:
		slog.Warn("Unknown event type", slog.String("event_name", record.EventName))
		return fmt.Errorf("unknown event type: %s", record.EventName)
	}
}

// handleInsertOrModify publishes the new image of a phrasebook
func (s *Service) handleInsertOrModify(ctx context.Context, record events.DynamoDBEventRecord) error {
	stored, err := dynamostream.ConvertToPhrasebookRecord(record.Change.NewImage)
	if err != nil {
		return fmt.Errorf("failed to convert stream record: %w", err)
	}

	pb, err := stored.Phrasebook()
	if err != nil {
		return fmt.Errorf("stored phrasebook %s: %w", stored.Locale, err)
	}

	if err := s3phrasebook.New(s.client, s.bucket, s.Key(stored.Locale)).Save(ctx, pb); err != nil {
		return err
	}

	slog.Debug("Mirrored phrasebook",
		slog.String("locale", stored.Locale),
		slog.Int64("rev", stored.Rev))
	return nil
}

// handleRemove removes the mirrored object of a deleted phrasebook
func (s *Service) handleRemove(ctx context.Context, record events.DynamoDBEventRecord) error {
	locale, err := dynamostream.LocaleFromKeys(record.Change.Keys)
	if err != nil {
		return err
	}

	return s3phrasebook.New(s.client, s.bucket, s.Key(locale)).Delete(ctx)
}
