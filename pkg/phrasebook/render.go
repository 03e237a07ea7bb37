package phrasebook

import (
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Relative renders a relative tag with count n. Patterns without the
// placeholder are returned unchanged.
func (p *Phrasebook) Relative(tag Tag, n int64) string {
	return strings.ReplaceAll(p.phrases[tag], CountPlaceholder, strconv.FormatInt(n, 10))
}

// Calendar renders t, already in the caller's location, with the pattern
// for tag.
func (p *Phrasebook) Calendar(tag Tag, t time.Time) string {
	return strftime.Format(p.localize(p.phrases[tag], t.Weekday()), t)
}

// localize replaces %A and %a with the phrasebook's weekday names so the
// strftime pass only sees numeric fields.
func (p *Phrasebook) localize(pattern string, wd time.Weekday) string {
	if !strings.Contains(pattern, "%") {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 16)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 >= len(pattern) {
			b.WriteByte(c)
			continue
		}
		switch next := pattern[i+1]; next {
		case 'A':
			b.WriteString(escape(p.Weekday(wd)))
		case 'a':
			b.WriteString(escape(p.ShortWeekday(wd)))
		default:
			b.WriteByte(c)
			b.WriteByte(next)
		}
		i++
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
