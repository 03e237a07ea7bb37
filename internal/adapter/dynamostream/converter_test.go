package dynamostream

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/humantime/pkg/phrasebook"
)

const weekdaysFixture = `{ "L": [
	{ "S": "Sunday" }, { "S": "Monday" }, { "S": "Tuesday" }, { "S": "Wednesday" },
	{ "S": "Thursday" }, { "S": "Friday" }, { "S": "Saturday" }
] }`

const phrasesFixture = `{ "M": {
	"JUST_NOW": { "S": "just now" },
	"ONE_MINUTE_AGO": { "S": "1 minute ago" },
	"MINUTES_AGO": { "S": "{n} minutes ago" },
	"ONE_HOUR_AGO": { "S": "1 hour ago" },
	"HOURS_AGO": { "S": "{n} hours ago" },
	"ONE_DAY_AGO": { "S": "1 day ago" },
	"DAYS_AGO": { "S": "{n} days ago" },
	"YESTERDAY": { "S": "yesterday %H:%M" },
	"DAY_BEFORE_YESTERDAY": { "S": "day-before-yesterday %H:%M" },
	"SAME_WEEK": { "S": "%H:%M %A" },
	"SAME_YEAR_DIFFERENT_MONTH": { "S": "%m-%d" },
	"SAME_DAY": { "S": "%H:%M" },
	"DIFFERENT_YEAR": { "S": "%Y-%m-%d" },
	"BEFORE_EPOCH": { "S": "%Y-%m" },
	"FALLBACK": { "S": "%Y-%m-%d %H:%M %A" },
	"FULL": { "S": "%Y-%m-%d %H:%M:%S %A" }
} }`

func parseRecord(t *testing.T, fixture string) events.DynamoDBEventRecord {
	t.Helper()
	var record events.DynamoDBEventRecord
	if err := json.Unmarshal([]byte(fixture), &record); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}
	return record
}

func image(fields string) string {
	return `{
		"eventID": "1",
		"eventName": "INSERT",
		"dynamodb": {
			"NewImage": {` + fields + `}
		}
	}`
}

func TestConvertToPhrasebookRecord(t *testing.T) {
	full := `
		"PK": { "S": "en-gb" },
		"SK": { "S": "PHRASEBOOK" },
		"DocumentLocale": { "S": "en-GB" },
		"Description": { "S": "British English" },
		"WeekStart": { "S": "monday" },
		"MinDaysInFirstWeek": { "N": "4" },
		"Weekdays": ` + weekdaysFixture + `,
		"Phrases": ` + phrasesFixture + `,
		"UpdatedAt": { "S": "2025-10-30T12:34:56.789Z" },
		"Rev": { "N": "3" }`

	record := parseRecord(t, image(full))
	result, err := ConvertToPhrasebookRecord(record.Change.NewImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Locale != "en-gb" {
		t.Errorf("Locale = %q, want en-gb", result.Locale)
	}
	if result.Rev != 3 {
		t.Errorf("Rev = %d, want 3", result.Rev)
	}
	want := time.Date(2025, 10, 30, 12, 34, 56, 789e6, time.UTC)
	if !result.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", result.UpdatedAt, want)
	}
	if result.Document.MinDaysInFirstWeek != 4 || result.Document.Description != "British English" {
		t.Errorf("unexpected document: %+v", result.Document)
	}

	pb, err := result.Phrasebook()
	if err != nil {
		t.Fatalf("converted document does not validate: %v", err)
	}
	if got := pb.Relative(phrasebook.MinutesAgo, 5); got != "5 minutes ago" {
		t.Errorf("MinutesAgo = %q", got)
	}
}

func TestConvertToPhrasebookRecord_Errors(t *testing.T) {
	base := map[string]string{
		"PK":             `{ "S": "en" }`,
		"SK":             `{ "S": "PHRASEBOOK" }`,
		"DocumentLocale": `{ "S": "en" }`,
		"Weekdays":       weekdaysFixture,
		"Phrases":        phrasesFixture,
		"UpdatedAt":      `{ "S": "2025-10-30T12:34:56Z" }`,
	}

	build := func(override map[string]string) string {
		var parts []string
		for k, v := range base {
			if o, ok := override[k]; ok {
				if o == "" {
					continue
				}
				v = o
			}
			parts = append(parts, `"`+k+`": `+v)
		}
		return image(strings.Join(parts, ",\n"))
	}

	tests := []struct {
		name        string
		override    map[string]string
		errContains string
		notItem     bool
	}{
		{"other item kind", map[string]string{"SK": `{ "S": "AUDIT#1" }`}, "not a phrasebook", true},
		{"missing PK", map[string]string{"PK": ""}, "PK", false},
		{"missing document locale", map[string]string{"DocumentLocale": ""}, "DocumentLocale", false},
		{"missing phrases", map[string]string{"Phrases": ""}, "Phrases", false},
		{"phrase not a string", map[string]string{"Phrases": `{ "M": { "JUST_NOW": { "N": "1" } } }`}, "JUST_NOW", false},
		{"missing updated at", map[string]string{"UpdatedAt": ""}, "UpdatedAt", false},
		{"bad updated at", map[string]string{"UpdatedAt": `{ "S": "yesterday" }`}, "UpdatedAt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := parseRecord(t, build(tt.override))
			_, err := ConvertToPhrasebookRecord(record.Change.NewImage)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err, tt.errContains)
			}
			if errors.Is(err, ErrNotPhrasebook) != tt.notItem {
				t.Errorf("errors.Is(err, ErrNotPhrasebook) = %v, want %v", !tt.notItem, tt.notItem)
			}
		})
	}

	if _, err := ConvertToPhrasebookRecord(nil); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestLocaleFromKeys(t *testing.T) {
	record := parseRecord(t, `{
		"eventID": "2",
		"eventName": "REMOVE",
		"dynamodb": {
			"Keys": {
				"PK": { "S": "zh" },
				"SK": { "S": "PHRASEBOOK" }
			}
		}
	}`)

	locale, err := LocaleFromKeys(record.Change.Keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locale != "zh" {
		t.Errorf("locale = %q, want zh", locale)
	}

	other := parseRecord(t, `{
		"eventID": "3",
		"eventName": "REMOVE",
		"dynamodb": { "Keys": { "PK": { "S": "zh" }, "SK": { "S": "OTHER" } } }
	}`)
	if _, err := LocaleFromKeys(other.Change.Keys); !errors.Is(err, ErrNotPhrasebook) {
		t.Errorf("expected ErrNotPhrasebook, got %v", err)
	}
}
