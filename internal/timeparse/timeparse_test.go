package timeparse

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 utc", "2024-03-10T10:00:00Z", time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2024-03-10T10:00:00+02:00", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)},
		{"rfc3339 fraction", "2024-03-10T10:00:00.250Z", time.Date(2024, 3, 10, 10, 0, 0, 250e6, time.UTC)},
		{"date time seconds", "2024-03-10 10:00:30", time.Date(2024, 3, 10, 10, 0, 30, 0, shanghai)},
		{"date time", "2024-03-10 10:00", time.Date(2024, 3, 10, 10, 0, 0, 0, shanghai)},
		{"t separator", "2024-03-10T10:00", time.Date(2024, 3, 10, 10, 0, 0, 0, shanghai)},
		{"date", "2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, shanghai)},
		{"unix millis", "1710064800000", time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},
		{"negative millis", "-1000", time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"whitespace", "  2024-03-10  ", time.Date(2024, 3, 10, 0, 0, 0, 0, shanghai)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, shanghai)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "2024-13-01", "10:00", "-"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input, time.UTC); !errors.Is(err, ErrInvalidTime) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidTime", input, err)
			}
		})
	}
}

func TestParse_NilLocationIsLocal(t *testing.T) {
	got, err := Parse("2024-03-10 10:00", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Location() != time.Local {
		t.Errorf("Expected time.Local, got %v", got.Location())
	}
}

func TestParseOr(t *testing.T) {
	fallback := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	got, err := ParseOr("", time.UTC, fallback)
	if err != nil || !got.Equal(fallback) {
		t.Errorf("ParseOr(\"\") = %v, %v; want fallback", got, err)
	}
	got, err = ParseOr("2024-01-01", time.UTC, fallback)
	if err != nil || got.Year() != 2024 || got.Month() != time.January {
		t.Errorf("ParseOr(date) = %v, %v", got, err)
	}
}
