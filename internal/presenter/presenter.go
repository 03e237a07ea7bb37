package presenter

import (
	"time"

	"github.com/mrled/humantime/pkg/clock"
	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
)

// Presenter renders instants relative to a clock's current time.
// ShowTime and TimeSince are the verbose forms for detailed displays; the
// Compact variants are for table columns with limited space.
type Presenter struct {
	formatter *timefmt.Formatter
	compact   *timefmt.Formatter
	clock     clock.Clock
}

// New creates a Presenter. A nil formatter means the default English one and
// a nil clock means the real clock.
func New(f *timefmt.Formatter, c clock.Clock) *Presenter {
	if f == nil {
		f = timefmt.New()
	}
	if c == nil {
		c = clock.Real{}
	}

	// Compact phrases come from the built-in "-short" variant of the
	// formatter's locale; locales without one stay verbose.
	compact := f
	if short, ok := phrasebook.Compact(f.Phrasebook().Locale()); ok {
		cmp := f.Comparator()
		compact = timefmt.New(
			timefmt.WithPhrasebook(short),
			timefmt.WithLocation(cmp.Location),
			timefmt.WithWeekRule(cmp.Rule),
		)
	}

	return &Presenter{formatter: f, compact: compact, clock: c}
}

// ShowTime formats t the way a message list shows it: "3 minutes ago",
// "yesterday 14:30", "2016-12-31".
func (p *Presenter) ShowTime(t time.Time) string {
	return p.formatter.ShowTime(t, p.clock.Now())
}

// TimeSince formats t as "5 minutes ago", "2 hours ago" or "3 days ago".
func (p *Presenter) TimeSince(t time.Time) string {
	return p.formatter.Since(t, p.clock.Now())
}

// TimeSinceCompact formats t as "5m ago", "2h ago" or "3d ago".
func (p *Presenter) TimeSinceCompact(t time.Time) string {
	return p.compact.Since(t, p.clock.Now())
}

// ShowTimeCompact is ShowTime with the compact phrases.
func (p *Presenter) ShowTimeCompact(t time.Time) string {
	return p.compact.ShowTime(t, p.clock.Now())
}

// Full renders t with date, time of day and weekday.
func (p *Presenter) Full(t time.Time) string {
	return p.formatter.Full(t)
}

func (p *Presenter) IsToday(t time.Time) bool {
	return p.formatter.Comparator().IsToday(t, p.clock.Now())
}

func (p *Presenter) IsThisYear(t time.Time) bool {
	return p.formatter.Comparator().IsThisYear(t, p.clock.Now())
}
