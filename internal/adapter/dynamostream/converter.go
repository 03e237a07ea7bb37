package dynamostream

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/internal/repository/dynamorepo"
	"github.com/mrled/humantime/pkg/phrasebook"
)

// ErrNotPhrasebook is returned for stream images of other item kinds
var ErrNotPhrasebook = errors.New("stream image is not a phrasebook item")

// ConvertToPhrasebookRecord converts a DynamoDB NewImage map to a PhrasebookRecord.
// The attribute names match dynamorepo.DynamoDTO.
func ConvertToPhrasebookRecord(newImage map[string]events.DynamoDBAttributeValue) (*model.PhrasebookRecord, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	if sk := ExtractStringAttribute(newImage, "SK"); sk != dynamorepo.PhrasebookSK {
		return nil, fmt.Errorf("%w: SK=%q", ErrNotPhrasebook, sk)
	}

	// Locale comes from PK
	locale := ExtractStringAttribute(newImage, "PK")
	if locale == "" {
		return nil, fmt.Errorf("missing required field: Locale (PK)")
	}

	doc := &phrasebook.Document{
		Locale:        ExtractStringAttribute(newImage, "DocumentLocale"),
		Description:   ExtractStringAttribute(newImage, "Description"),
		WeekStart:     ExtractStringAttribute(newImage, "WeekStart"),
		Weekdays:      extractStringList(newImage, "Weekdays"),
		ShortWeekdays: extractStringList(newImage, "ShortWeekdays"),
	}
	if doc.Locale == "" {
		return nil, fmt.Errorf("missing required field: DocumentLocale")
	}

	if attr, ok := newImage["MinDaysInFirstWeek"]; ok && attr.DataType() == events.DataTypeNumber {
		n, err := attr.Integer()
		if err != nil {
			return nil, fmt.Errorf("invalid MinDaysInFirstWeek: %w", err)
		}
		doc.MinDaysInFirstWeek = int(n)
	}

	// Phrases - required
	phrases, ok := newImage["Phrases"]
	if !ok || phrases.DataType() != events.DataTypeMap {
		return nil, fmt.Errorf("missing required field: Phrases")
	}
	doc.Phrases = make(map[phrasebook.Tag]string, len(phrases.Map()))
	for tag, pattern := range phrases.Map() {
		if pattern.DataType() != events.DataTypeString {
			return nil, fmt.Errorf("phrase %s is not a string", tag)
		}
		doc.Phrases[phrasebook.Tag(tag)] = pattern.String()
	}

	record := &model.PhrasebookRecord{
		Locale:   locale,
		Document: doc,
	}

	// UpdatedAt - required and must be valid RFC3339
	if updatedAt := ExtractStringAttribute(newImage, "UpdatedAt"); updatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid UpdatedAt format: %w", err)
		}
		record.UpdatedAt = t
	} else {
		return nil, fmt.Errorf("missing required field: UpdatedAt")
	}

	if rev, ok := newImage["Rev"]; ok && rev.DataType() == events.DataTypeNumber {
		n, err := rev.Integer()
		if err != nil {
			return nil, fmt.Errorf("invalid Rev: %w", err)
		}
		record.Rev = n
	}

	return record, nil
}

// LocaleFromKeys returns the locale a stream record's Keys address, or
// ErrNotPhrasebook when the keys belong to another item kind
func LocaleFromKeys(keys map[string]events.DynamoDBAttributeValue) (string, error) {
	if sk := ExtractStringAttribute(keys, "SK"); sk != dynamorepo.PhrasebookSK {
		return "", fmt.Errorf("%w: SK=%q", ErrNotPhrasebook, sk)
	}
	locale := ExtractStringAttribute(keys, "PK")
	if locale == "" {
		return "", fmt.Errorf("missing required key: PK")
	}
	return locale, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}

func extractStringList(attrs map[string]events.DynamoDBAttributeValue, key string) []string {
	attr, ok := attrs[key]
	if !ok {
		return nil
	}
	switch attr.DataType() {
	case events.DataTypeList:
		var out []string
		for _, item := range attr.List() {
			if item.DataType() == events.DataTypeString {
				out = append(out, item.String())
			}
		}
		return out
	case events.DataTypeStringSet:
		return attr.StringSet()
	}
	return nil
}
