package dynamorepo

import (
	"time"

	"github.com/mrled/humantime/internal/model"
	"github.com/mrled/humantime/pkg/phrasebook"
)

// PhrasebookSK is the sort key every phrasebook item uses; the table can hold
// other item kinds for the same locale later.
const PhrasebookSK = "PHRASEBOOK"

// DynamoDTO represents the persistence layer DTO for DynamoDB
// It maps the domain model to DynamoDB's key structure where:
// - PK (partition key) is the normalized locale
// - SK (sort key) is the constant "PHRASEBOOK"
type DynamoDTO struct {
	PK                 string            `dynamodbav:"PK"`
	SK                 string            `dynamodbav:"SK"`
	Description        string            `dynamodbav:"Description,omitempty"`
	DocumentLocale     string            `dynamodbav:"DocumentLocale"`
	WeekStart          string            `dynamodbav:"WeekStart,omitempty"`
	MinDaysInFirstWeek int               `dynamodbav:"MinDaysInFirstWeek,omitempty"`
	Weekdays           []string          `dynamodbav:"Weekdays"`
	ShortWeekdays      []string          `dynamodbav:"ShortWeekdays,omitempty"`
	Phrases            map[string]string `dynamodbav:"Phrases"`
	UpdatedAt          time.Time         `dynamodbav:"UpdatedAt"`
	Rev                int64             `dynamodbav:"Rev"` // Monotonically increasing revision number
}

// ToDomain converts a DynamoDTO to a domain model PhrasebookRecord
func (dto *DynamoDTO) ToDomain() *model.PhrasebookRecord {
	doc := &phrasebook.Document{
		Locale:             dto.DocumentLocale,
		Description:        dto.Description,
		WeekStart:          dto.WeekStart,
		MinDaysInFirstWeek: dto.MinDaysInFirstWeek,
		Weekdays:           append([]string(nil), dto.Weekdays...),
		ShortWeekdays:      append([]string(nil), dto.ShortWeekdays...),
		Phrases:            make(map[phrasebook.Tag]string, len(dto.Phrases)),
	}
	for k, v := range dto.Phrases {
		doc.Phrases[phrasebook.Tag(k)] = v
	}

	return &model.PhrasebookRecord{
		Locale:    dto.PK,
		Document:  doc,
		UpdatedAt: dto.UpdatedAt,
		Rev:       dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a domain model PhrasebookRecord
func FromDomain(record *model.PhrasebookRecord) *DynamoDTO {
	dto := &DynamoDTO{
		PK:        model.NormalizeLocale(record.Locale),
		SK:        PhrasebookSK,
		UpdatedAt: record.UpdatedAt,
		Rev:       record.Rev,
	}

	if doc := record.Document; doc != nil {
		dto.DocumentLocale = doc.Locale
		dto.Description = doc.Description
		dto.WeekStart = doc.WeekStart
		dto.MinDaysInFirstWeek = doc.MinDaysInFirstWeek
		dto.Weekdays = append([]string(nil), doc.Weekdays...)
		dto.ShortWeekdays = append([]string(nil), doc.ShortWeekdays...)
		dto.Phrases = make(map[string]string, len(doc.Phrases))
		for k, v := range doc.Phrases {
			dto.Phrases[string(k)] = v
		}
	}

	return dto
}

// ToDomainList converts a slice of DynamoDTOs to domain model PhrasebookRecords
func ToDomainList(dtos []*DynamoDTO) []*model.PhrasebookRecord {
	records := make([]*model.PhrasebookRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.ToDomain()
	}
	return records
}
