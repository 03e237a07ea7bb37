package phrasebook

// Tag names the scenario a phrase is chosen for.
type Tag string

// Relative tags render a count with the {n} placeholder.
const (
	JustNow      Tag = "JUST_NOW"
	OneMinuteAgo Tag = "ONE_MINUTE_AGO"
	MinutesAgo   Tag = "MINUTES_AGO"
	OneHourAgo   Tag = "ONE_HOUR_AGO"
	HoursAgo     Tag = "HOURS_AGO"
	OneDayAgo    Tag = "ONE_DAY_AGO"
	DaysAgo      Tag = "DAYS_AGO"
)

// Calendar tags render an instant with a strftime pattern.
const (
	Yesterday              Tag = "YESTERDAY"
	DayBeforeYesterday     Tag = "DAY_BEFORE_YESTERDAY"
	SameWeek               Tag = "SAME_WEEK"
	SameYearDifferentMonth Tag = "SAME_YEAR_DIFFERENT_MONTH"
	SameDay                Tag = "SAME_DAY"
	DifferentYear          Tag = "DIFFERENT_YEAR"
	BeforeEpoch            Tag = "BEFORE_EPOCH"
	Fallback               Tag = "FALLBACK"
	Full                   Tag = "FULL"
)

var relativeTags = []Tag{JustNow, OneMinuteAgo, MinutesAgo, OneHourAgo, HoursAgo, OneDayAgo, DaysAgo}

var calendarTags = []Tag{
	Yesterday, DayBeforeYesterday, SameWeek, SameYearDifferentMonth,
	SameDay, DifferentYear, BeforeEpoch, Fallback, Full,
}

// countedTags must carry the {n} placeholder.
var countedTags = map[Tag]bool{MinutesAgo: true, HoursAgo: true, DaysAgo: true}

// Tags returns every tag a phrasebook must define, relative tags first.
func Tags() []Tag {
	out := make([]Tag, 0, len(relativeTags)+len(calendarTags))
	out = append(out, relativeTags...)
	return append(out, calendarTags...)
}

// IsRelative reports whether t is rendered from a count rather than an instant.
func (t Tag) IsRelative() bool {
	for _, r := range relativeTags {
		if r == t {
			return true
		}
	}
	return false
}
