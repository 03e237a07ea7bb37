package calendar

import (
	"fmt"
	"strings"
	"time"
)

// WeekRule decides how days are grouped into numbered weeks.
//
// FirstDay is the weekday a week starts on. MinDays is the minimum number of
// days of the new year the first week must contain; a partial week with fewer
// days belongs to the last week of the previous year.
type WeekRule struct {
	FirstDay time.Weekday
	MinDays  int
}

var (
	// ISOWeek is ISO 8601 numbering: weeks start on Monday and week 1 holds
	// the first Thursday of the year.
	ISOWeek = WeekRule{FirstDay: time.Monday, MinDays: 4}

	// SundayWeek starts weeks on Sunday and makes the week holding 1 January
	// week 1.
	SundayWeek = WeekRule{FirstDay: time.Sunday, MinDays: 1}
)

// Valid reports whether the rule can number weeks.
func (r WeekRule) Valid() bool {
	return r.FirstDay >= time.Sunday && r.FirstDay <= time.Saturday &&
		r.MinDays >= 1 && r.MinDays <= 7
}

func (r WeekRule) String() string {
	return fmt.Sprintf("%s/%d", strings.ToLower(r.FirstDay.String()), r.MinDays)
}

// ParseWeekday accepts English weekday names ("monday", "Mon") case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// StartingOn returns the conventional rule for weeks beginning on first:
// SundayWeek for Sunday, otherwise first with the ISO minimum of four days.
func StartingOn(first time.Weekday) WeekRule {
	if first == time.Sunday {
		return SundayWeek
	}
	return WeekRule{FirstDay: first, MinDays: ISOWeek.MinDays}
}

// weekOf numbers the civil date y-m-d under rule. The returned year is the
// week-numbering year, which differs from y for days near 1 January.
func weekOf(y int, m time.Month, d int, rule WeekRule) (int, int) {
	day := civil(y, m, d)

	start := firstWeekStart(y, rule)
	if day.Before(start) {
		prev := firstWeekStart(y-1, rule)
		return y - 1, daysBetween(prev, day)/7 + 1
	}
	if next := firstWeekStart(y+1, rule); !day.Before(next) {
		return y + 1, 1
	}
	return y, daysBetween(start, day)/7 + 1
}

// firstWeekStart returns the first day of week 1 of year y.
func firstWeekStart(y int, rule WeekRule) time.Time {
	jan1 := civil(y, time.January, 1)
	offset := (int(jan1.Weekday()) - int(rule.FirstDay) + 7) % 7
	start := jan1.AddDate(0, 0, -offset)
	if 7-offset < rule.MinDays {
		start = start.AddDate(0, 0, 7)
	}
	return start
}

// civil anchors a calendar date at UTC midnight so day arithmetic never
// crosses a DST transition.
func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
