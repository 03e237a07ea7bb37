package phrasebook

// Document is the serialized form of a phrasebook, as stored in YAML files,
// JSON persistence and DynamoDB.
type Document struct {
	Locale      string `yaml:"locale" json:"locale"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// WeekStart is an English weekday name; empty means "monday".
	WeekStart string `yaml:"week_start,omitempty" json:"week_start,omitempty"`
	// MinDaysInFirstWeek is 1..7; zero means 4.
	MinDaysInFirstWeek int `yaml:"min_days_in_first_week,omitempty" json:"min_days_in_first_week,omitempty"`

	// Weekdays and ShortWeekdays list names starting from Sunday.
	Weekdays      []string `yaml:"weekdays" json:"weekdays"`
	ShortWeekdays []string `yaml:"short_weekdays,omitempty" json:"short_weekdays,omitempty"`

	Phrases map[Tag]string `yaml:"phrases" json:"phrases"`
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Weekdays = append([]string(nil), d.Weekdays...)
	out.ShortWeekdays = append([]string(nil), d.ShortWeekdays...)
	out.Phrases = make(map[Tag]string, len(d.Phrases))
	for k, v := range d.Phrases {
		out.Phrases[k] = v
	}
	return &out
}
