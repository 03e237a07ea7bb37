// Package timefmt renders instants as human-friendly text relative to an
// explicit "now".
//
// ShowTime runs a strict first-match cascade: recent instants get a relative
// phrase ("3 minutes ago"), older ones a calendar-relative phrase
// ("yesterday 14:30", "03-21", "2016-12-31"). DescribeInterval is the coarse
// "last seen" cascade on its own. Neither reads the wall clock.
package timefmt

import (
	"time"

	"github.com/mrled/humantime/pkg/calendar"
	"github.com/mrled/humantime/pkg/phrasebook"
)

var epoch = time.Unix(0, 0)

// Formatter renders instants with one phrasebook in one location.
// It holds no mutable state and is safe for concurrent use.
type Formatter struct {
	book *phrasebook.Phrasebook
	cmp  calendar.Comparator
}

// Option configures a Formatter.
type Option func(*settings)

type settings struct {
	book *phrasebook.Phrasebook
	loc  *time.Location
	rule *calendar.WeekRule
}

// WithPhrasebook selects the phrase templates. The default is the built-in
// English phrasebook.
func WithPhrasebook(pb *phrasebook.Phrasebook) Option {
	return func(s *settings) {
		if pb != nil {
			s.book = pb
		}
	}
}

// WithLocation sets the location calendar fields are derived in. The default
// is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		s.loc = loc
	}
}

// WithWeekRule overrides the phrasebook's week numbering.
func WithWeekRule(rule calendar.WeekRule) Option {
	return func(s *settings) {
		s.rule = &rule
	}
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.book == nil {
		s.book = phrasebook.English()
	}

	rule := s.book.WeekRule()
	if s.rule != nil && s.rule.Valid() {
		rule = *s.rule
	}

	return &Formatter{
		book: s.book,
		cmp:  calendar.New(s.loc, rule),
	}
}

// Phrasebook returns the phrasebook f renders with.
func (f *Formatter) Phrasebook() *phrasebook.Phrasebook {
	return f.book
}

// Comparator returns the calendar comparator f uses.
func (f *Formatter) Comparator() calendar.Comparator {
	return f.cmp
}

// ShowTime renders target as seen at now.
func (f *Formatter) ShowTime(target, now time.Time) string {
	return f.render(f.classify(target, now), target)
}

// Scenario reports which tag ShowTime would render target with.
func (f *Formatter) Scenario(target, now time.Time) phrasebook.Tag {
	return f.classify(target, now).tag
}

type decision struct {
	tag   phrasebook.Tag
	count int64
}

func (f *Formatter) classify(target, now time.Time) decision {
	// Instants we cannot place relative to now only get a coarse year-month.
	if target.After(now) || !target.After(epoch) {
		return decision{tag: phrasebook.BeforeEpoch}
	}

	if d, ok := intervalDecision(now.Sub(target), false); ok {
		return d
	}

	tf, nf := f.cmp.Fields(target), f.cmp.Fields(now)
	if tf.Year != nf.Year {
		return decision{tag: phrasebook.DifferentYear}
	}

	// Day distance is only meaningful within one year, which holds from here on.
	distance := nf.YearDay - tf.YearDay
	switch distance {
	case 1:
		return decision{tag: phrasebook.Yesterday}
	case 2:
		return decision{tag: phrasebook.DayBeforeYesterday}
	}

	if distance > 2 && tf.WeekYear == nf.WeekYear && tf.Week == nf.Week {
		return decision{tag: phrasebook.SameWeek}
	}
	if tf.Month != nf.Month {
		return decision{tag: phrasebook.SameYearDifferentMonth}
	}
	if tf.Day != nf.Day {
		return decision{tag: phrasebook.SameYearDifferentMonth}
	}
	if tf.YearDay == nf.YearDay {
		return decision{tag: phrasebook.SameDay}
	}
	return decision{tag: phrasebook.Fallback}
}

func (f *Formatter) render(d decision, target time.Time) string {
	if d.tag.IsRelative() {
		return f.book.Relative(d.tag, d.count)
	}
	return f.book.Calendar(d.tag, f.cmp.In(target))
}

// Full renders t with date, time of day and weekday.
func (f *Formatter) Full(t time.Time) string {
	return f.book.Calendar(phrasebook.Full, f.cmp.In(t))
}

var defaultFormatter = New()

// ShowTime renders target as seen at now with the built-in English
// phrasebook in time.Local.
func ShowTime(target, now time.Time) string {
	return defaultFormatter.ShowTime(target, now)
}

// DescribeInterval is Formatter.DescribeInterval on the default formatter.
func DescribeInterval(target, now time.Time, includeHourScale bool) (string, bool) {
	return defaultFormatter.DescribeInterval(target, now, includeHourScale)
}
