// Package phrasebook holds the phrase templates the formatter renders with.
//
// A Phrasebook maps every scenario Tag to a pattern. Relative patterns use
// "{n}" for the count ("{n} minutes ago"); calendar patterns are strftime
// patterns ("%Y-%m-%d") in which %A and %a expand to the phrasebook's own
// weekday names. A Phrasebook is immutable once built and safe for
// concurrent use.
package phrasebook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mrled/humantime/pkg/calendar"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidPhrasebook wraps every decoding and validation failure.
	ErrInvalidPhrasebook = errors.New("invalid phrasebook")
	// ErrUnknownLocale is returned when no built-in matches a locale.
	ErrUnknownLocale = errors.New("unknown locale")
)

// CountPlaceholder is replaced by the count in relative patterns.
const CountPlaceholder = "{n}"

// Phrasebook is a validated, read-only set of phrase templates.
type Phrasebook struct {
	locale      string
	description string
	rule        calendar.WeekRule
	weekdays    [7]string
	short       [7]string
	phrases     map[Tag]string
}

// New validates doc and builds a Phrasebook from a private copy of it.
func New(doc Document) (*Phrasebook, error) {
	if strings.TrimSpace(doc.Locale) == "" {
		return nil, fmt.Errorf("%w: locale is required", ErrInvalidPhrasebook)
	}

	rule, err := weekRule(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %s: %v", ErrInvalidPhrasebook, doc.Locale, err)
	}

	if len(doc.Weekdays) != 7 {
		return nil, fmt.Errorf("%w: locale %s: weekdays must list 7 names, got %d",
			ErrInvalidPhrasebook, doc.Locale, len(doc.Weekdays))
	}
	if len(doc.ShortWeekdays) != 0 && len(doc.ShortWeekdays) != 7 {
		return nil, fmt.Errorf("%w: locale %s: short_weekdays must list 7 names, got %d",
			ErrInvalidPhrasebook, doc.Locale, len(doc.ShortWeekdays))
	}

	pb := &Phrasebook{
		locale:      doc.Locale,
		description: doc.Description,
		rule:        rule,
		phrases:     make(map[Tag]string, len(doc.Phrases)),
	}
	for i := range pb.weekdays {
		pb.weekdays[i] = doc.Weekdays[i]
		pb.short[i] = doc.Weekdays[i]
		if len(doc.ShortWeekdays) == 7 {
			pb.short[i] = doc.ShortWeekdays[i]
		}
	}

	var missing []string
	for _, tag := range Tags() {
		pattern := doc.Phrases[tag]
		if strings.TrimSpace(pattern) == "" {
			missing = append(missing, string(tag))
			continue
		}
		if countedTags[tag] && !strings.Contains(pattern, CountPlaceholder) {
			return nil, fmt.Errorf("%w: locale %s: phrase %s must contain %s",
				ErrInvalidPhrasebook, doc.Locale, tag, CountPlaceholder)
		}
		pb.phrases[tag] = pattern
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: locale %s: missing phrases: %s",
			ErrInvalidPhrasebook, doc.Locale, strings.Join(missing, ", "))
	}

	return pb, nil
}

func weekRule(doc Document) (calendar.WeekRule, error) {
	rule := calendar.ISOWeek
	if doc.WeekStart != "" {
		day, err := calendar.ParseWeekday(doc.WeekStart)
		if err != nil {
			return rule, err
		}
		rule.FirstDay = day
	}
	if doc.MinDaysInFirstWeek != 0 {
		rule.MinDays = doc.MinDaysInFirstWeek
	}
	if !rule.Valid() {
		return rule, fmt.Errorf("min_days_in_first_week must be 1..7, got %d", doc.MinDaysInFirstWeek)
	}
	return rule, nil
}

// Parse decodes a YAML document and validates it.
func Parse(data []byte) (*Phrasebook, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return New(*doc)
}

// Decode decodes a YAML document without validating it.
func Decode(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhrasebook, err)
	}
	return &doc, nil
}

// Load reads and parses a YAML phrasebook file.
func Load(path string) (*Phrasebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrasebook: %w", err)
	}
	pb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pb, nil
}

// Locale returns the locale name, for example "en".
func (p *Phrasebook) Locale() string {
	return p.locale
}

// Description returns the free-text description of the locale.
func (p *Phrasebook) Description() string {
	return p.description
}

// WeekRule returns the week numbering the locale uses for "same week".
func (p *Phrasebook) WeekRule() calendar.WeekRule {
	return p.rule
}

// Weekday returns the locale's full name for d.
func (p *Phrasebook) Weekday(d time.Weekday) string {
	return p.weekdays[d%7]
}

// ShortWeekday returns the locale's abbreviated name for d.
func (p *Phrasebook) ShortWeekday(d time.Weekday) string {
	return p.short[d%7]
}

// Pattern returns the raw pattern for tag.
func (p *Phrasebook) Pattern(tag Tag) (string, bool) {
	s, ok := p.phrases[tag]
	return s, ok
}

// Document returns the serializable form of p.
func (p *Phrasebook) Document() *Document {
	doc := &Document{
		Locale:             p.locale,
		Description:        p.description,
		WeekStart:          strings.ToLower(p.rule.FirstDay.String()),
		MinDaysInFirstWeek: p.rule.MinDays,
		Weekdays:           append([]string(nil), p.weekdays[:]...),
		ShortWeekdays:      append([]string(nil), p.short[:]...),
		Phrases:            make(map[Tag]string, len(p.phrases)),
	}
	for k, v := range p.phrases {
		doc.Phrases[k] = v
	}
	return doc
}

// Encode renders p as YAML.
func (p *Phrasebook) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p.Document()); err != nil {
		return nil, fmt.Errorf("failed to encode phrasebook %s: %w", p.locale, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
