package timefmt

import (
	"time"

	"github.com/mrled/humantime/pkg/phrasebook"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// DescribeInterval renders how long before now target happened, as
// "just now", "N minutes ago" and, when includeHourScale is set, hours and
// days.
//
// The second result is false when no phrase applies: target is after now,
// or the gap is an hour or more and includeHourScale is false. Callers then
// fall back to a calendar rendering.
func (f *Formatter) DescribeInterval(target, now time.Time, includeHourScale bool) (string, bool) {
	d, ok := intervalDecision(now.Sub(target), includeHourScale)
	if !ok {
		return "", false
	}
	return f.book.Relative(d.tag, d.count), true
}

// Since is DescribeInterval with the hour scale enabled. Future targets fall
// back to ShowTime's coarse rendering.
func (f *Formatter) Since(target, now time.Time) string {
	if s, ok := f.DescribeInterval(target, now, true); ok {
		return s
	}
	return f.ShowTime(target, now)
}

func intervalDecision(elapsed time.Duration, includeHourScale bool) (decision, bool) {
	if elapsed < 0 {
		return decision{}, false
	}

	// Whole seconds; the sub-second remainder never moves a threshold.
	seconds := int64(elapsed / time.Second)
	if seconds < secondsPerMinute {
		return decision{tag: phrasebook.JustNow}, true
	}
	if seconds < secondsPerHour {
		return counted(seconds, secondsPerMinute, phrasebook.OneMinuteAgo, phrasebook.MinutesAgo), true
	}

	if !includeHourScale {
		return decision{}, false
	}

	// Hours and days keep a fixed singular band of one whole unit.
	switch {
	case seconds < 2*secondsPerHour:
		return decision{tag: phrasebook.OneHourAgo, count: 1}, true
	case seconds < secondsPerDay:
		return decision{tag: phrasebook.HoursAgo, count: roundHalfUp(seconds, secondsPerHour)}, true
	case seconds < 2*secondsPerDay:
		return decision{tag: phrasebook.OneDayAgo, count: 1}, true
	}
	return decision{tag: phrasebook.DaysAgo, count: roundHalfUp(seconds, secondsPerDay)}, true
}

// counted picks the singular tag when the rounded count is one.
func counted(seconds, unit int64, one, many phrasebook.Tag) decision {
	n := roundHalfUp(seconds, unit)
	if n == 1 {
		return decision{tag: one, count: 1}
	}
	return decision{tag: many, count: n}
}

// roundHalfUp returns seconds/unit rounded half up, for non-negative seconds.
func roundHalfUp(seconds, unit int64) int64 {
	return (2*seconds + unit) / (2 * unit)
}
