// Package calendar compares instants by their local calendar fields.
//
// Every comparison derives fresh Fields from the raw instants; nothing is
// cached between calls, so a Comparator is safe to share between goroutines.
package calendar

import "time"

// Fields is the calendar projection of an instant in one location.
type Fields struct {
	Year     int
	Month    time.Month
	Day      int
	YearDay  int
	Weekday  time.Weekday
	WeekYear int
	Week     int
	Hour     int
	Minute   int
}

// Comparator derives Fields in a fixed location under a fixed week rule.
// The zero value uses time.Local and ISOWeek.
type Comparator struct {
	Location *time.Location
	Rule     WeekRule
}

// New returns a Comparator for loc and rule. A nil loc means time.Local.
func New(loc *time.Location, rule WeekRule) Comparator {
	return Comparator{Location: loc, Rule: rule}
}

func (c Comparator) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Comparator) rule() WeekRule {
	if !c.Rule.Valid() {
		return ISOWeek
	}
	return c.Rule
}

// In converts t to the comparator's location.
func (c Comparator) In(t time.Time) time.Time {
	return t.In(c.location())
}

// Fields projects t into calendar fields.
func (c Comparator) Fields(t time.Time) Fields {
	local := c.In(t)
	y, m, d := local.Date()
	wy, w := weekOf(y, m, d, c.rule())
	return Fields{
		Year:     y,
		Month:    m,
		Day:      d,
		YearDay:  local.YearDay(),
		Weekday:  local.Weekday(),
		WeekYear: wy,
		Week:     w,
		Hour:     local.Hour(),
		Minute:   local.Minute(),
	}
}

// WeekOf returns the week-numbering year and week of t.
func (c Comparator) WeekOf(t time.Time) (year, week int) {
	f := c.Fields(t)
	return f.WeekYear, f.Week
}

// SameYear reports whether a and b fall in the same calendar year.
func (c Comparator) SameYear(a, b time.Time) bool {
	return c.In(a).Year() == c.In(b).Year()
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Comparator) SameDay(a, b time.Time) bool {
	la, lb := c.In(a), c.In(b)
	return la.Year() == lb.Year() && la.YearDay() == lb.YearDay()
}

// DayDistance returns how many calendar days target lies before now.
// The result only means something when SameYear(now, target) holds, and it
// is negative when target is later in the year than now.
func (c Comparator) DayDistance(now, target time.Time) int {
	return c.In(now).YearDay() - c.In(target).YearDay()
}

// SameWeek reports whether a and b fall in the same numbered week.
func (c Comparator) SameWeek(a, b time.Time) bool {
	fa, fb := c.Fields(a), c.Fields(b)
	return fa.WeekYear == fb.WeekYear && fa.Week == fb.Week
}

// IsToday reports whether t falls on the same day as now.
func (c Comparator) IsToday(t, now time.Time) bool {
	return c.SameDay(t, now)
}

// IsThisYear reports whether t falls in the same year as now.
func (c Comparator) IsThisYear(t, now time.Time) bool {
	return c.SameYear(t, now)
}

// Default compares in time.Local with ISO week numbering.
var Default = Comparator{}

// SameYear is Comparator.SameYear on Default.
func SameYear(a, b time.Time) bool {
	return Default.SameYear(a, b)
}

// SameDay is Comparator.SameDay on Default.
func SameDay(a, b time.Time) bool {
	return Default.SameDay(a, b)
}

// DayDistance is Comparator.DayDistance on Default.
func DayDistance(now, target time.Time) int {
	return Default.DayDistance(now, target)
}

// SameWeek is Comparator.SameWeek on Default.
func SameWeek(a, b time.Time) bool {
	return Default.SameWeek(a, b)
}
