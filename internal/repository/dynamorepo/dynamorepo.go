package dynamorepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/humantime/internal/model"
)

// API is the subset of the DynamoDB client the repository uses
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository is a DynamoDB implementation of PhrasebookRepository
type DynamoRepository struct {
	client    API
	tableName string
}

var _ model.PhrasebookRepository = (*DynamoRepository)(nil)

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client API, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func key(locale string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: model.NormalizeLocale(locale)},
		"SK": &types.AttributeValueMemberS{Value: PhrasebookSK},
	}
}

// Store saves a new phrasebook to DynamoDB
func (r *DynamoRepository) Store(ctx context.Context, record *model.PhrasebookRecord) error {
	if record == nil {
		return errors.New("phrasebook record cannot be nil")
	}

	dto := FromDomain(record)
	dto.Rev = 1
	item, err := attributevalue.MarshalMap(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal phrasebook record: %w", err)
	}

	// Matches MemoryRepository.Store, which returns ErrAlreadyExists
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store phrasebook record: %w", err)
	}

	return nil
}

// Put saves a phrasebook, replacing any existing item and bumping its revision
func (r *DynamoRepository) Put(ctx context.Context, record *model.PhrasebookRecord) error {
	if record == nil {
		return errors.New("phrasebook record cannot be nil")
	}

	existing, err := r.Get(ctx, record.Locale)
	switch {
	case errors.Is(err, model.ErrNotFound):
		existing = nil
	case err != nil:
		return err
	}

	dto := FromDomain(record)
	dto.Rev = 1
	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
	}
	if existing != nil {
		dto.Rev = existing.Rev + 1
		// Optimistic lock: fail if someone else bumped the revision meanwhile
		input.ConditionExpression = aws.String("#rev = :rev")
		input.ExpressionAttributeNames = map[string]string{"#rev": "Rev"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":rev": &types.AttributeValueMemberN{Value: strconv.FormatInt(existing.Rev, 10)},
		}
	} else {
		input.ConditionExpression = aws.String("attribute_not_exists(PK)")
	}

	item, err := attributevalue.MarshalMap(dto)
	if err != nil {
		return fmt.Errorf("failed to marshal phrasebook record: %w", err)
	}
	input.Item = item

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("phrasebook %s changed concurrently: %w", dto.PK, err)
		}
		return fmt.Errorf("failed to put phrasebook record: %w", err)
	}
	return nil
}

// Get retrieves a phrasebook by locale from DynamoDB
func (r *DynamoRepository) Get(ctx context.Context, locale string) (*model.PhrasebookRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key(locale),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get phrasebook record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal phrasebook record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all phrasebooks from DynamoDB, following scan pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.PhrasebookRecord, error) {
	var dtos []*DynamoDTO

	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: PhrasebookSK},
		},
	}
	for {
		result, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phrasebook records: %w", err)
		}

		for _, item := range result.Items {
			var dto DynamoDTO
			if err := attributevalue.UnmarshalMap(item, &dto); err != nil {
				return nil, fmt.Errorf("failed to unmarshal phrasebook record: %w", err)
			}
			dtos = append(dtos, &dto)
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	records := ToDomainList(dtos)
	model.SortRecords(records, string(model.SortByLocale))
	return records, nil
}

// Delete removes a phrasebook by locale from DynamoDB
func (r *DynamoRepository) Delete(ctx context.Context, locale string) error {
	// Matches MemoryRepository.Delete, which returns ErrNotFound
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 key(locale),
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete phrasebook record: %w", err)
	}

	return nil
}
