package presenter

import (
	"testing"
	"time"

	"github.com/mrled/humantime/pkg/clock"
	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
)

var now = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestPresenter() (*Presenter, *clock.Fixed) {
	c := clock.NewFixed(now)
	return New(timefmt.New(timefmt.WithLocation(time.UTC)), c), c
}

func TestPresenter_TimeSince(t *testing.T) {
	p, _ := newTestPresenter()

	tests := []struct {
		name    string
		ago     time.Duration
		verbose string
		compact string
	}{
		{"seconds", 30 * time.Second, "just now", "now"},
		{"one minute", 89 * time.Second, "1 minute ago", "1m ago"},
		{"minutes", 5 * time.Minute, "5 minutes ago", "5m ago"},
		{"one hour", 90 * time.Minute, "1 hour ago", "1h ago"},
		{"hours", 150 * time.Minute, "3 hours ago", "3h ago"},
		{"days", 72 * time.Hour, "3 days ago", "3d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := now.Add(-tt.ago)
			if got := p.TimeSince(target); got != tt.verbose {
				t.Errorf("TimeSince() = %q, want %q", got, tt.verbose)
			}
			if got := p.TimeSinceCompact(target); got != tt.compact {
				t.Errorf("TimeSinceCompact() = %q, want %q", got, tt.compact)
			}
		})
	}
}

func TestPresenter_ShowTimeFollowsClock(t *testing.T) {
	p, c := newTestPresenter()
	target := now.Add(-10 * time.Minute)

	if got := p.ShowTime(target); got != "10 minutes ago" {
		t.Errorf("ShowTime() = %q, want %q", got, "10 minutes ago")
	}

	c.Advance(24 * time.Hour)
	if got := p.ShowTime(target); got != "yesterday 09:50" {
		t.Errorf("ShowTime() after a day = %q, want %q", got, "yesterday 09:50")
	}
	if got := p.ShowTimeCompact(target); got != "yday 09:50" {
		t.Errorf("ShowTimeCompact() after a day = %q, want %q", got, "yday 09:50")
	}
}

func TestPresenter_IsTodayAndThisYear(t *testing.T) {
	p, c := newTestPresenter()
	morning := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)

	if !p.IsToday(morning) || !p.IsThisYear(morning) {
		t.Error("Expected morning to be today and this year")
	}

	c.Set(time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC))
	if p.IsToday(morning) {
		t.Error("Expected morning not to be today after midnight")
	}

	c.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if p.IsThisYear(morning) {
		t.Error("Expected morning not to be this year in 2025")
	}
}

func TestPresenter_Full(t *testing.T) {
	p, _ := newTestPresenter()
	got := p.Full(time.Date(2024, 3, 9, 9, 5, 7, 0, time.UTC))
	if want := "2024-03-09 09:05:07 Saturday"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(nil, nil)
	if got := p.TimeSince(time.Now()); got != "just now" {
		t.Errorf("TimeSince(now) = %q, want %q", got, "just now")
	}
}

func TestPresenter_CompactFollowsLocale(t *testing.T) {
	zh, err := phrasebook.Builtin("zh")
	if err != nil {
		t.Fatalf("Builtin(zh) error: %v", err)
	}
	p := New(timefmt.New(timefmt.WithPhrasebook(zh), timefmt.WithLocation(time.UTC)), clock.NewFixed(now))

	tests := []struct {
		ago     time.Duration
		verbose string
		compact string
	}{
		{5 * time.Minute, "5 分钟前", "5分前"},
		{26 * time.Hour, "1 天前", "1天前"},
	}
	for _, tt := range tests {
		target := now.Add(-tt.ago)
		if got := p.TimeSince(target); got != tt.verbose {
			t.Errorf("TimeSince(-%v) = %q, want %q", tt.ago, got, tt.verbose)
		}
		if got := p.TimeSinceCompact(target); got != tt.compact {
			t.Errorf("TimeSinceCompact(-%v) = %q, want %q", tt.ago, got, tt.compact)
		}
	}
}

func TestPresenter_CompactWithoutVariant(t *testing.T) {
	doc := phrasebook.English().Document()
	doc.Locale = "fr"
	fr, err := phrasebook.New(*doc)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	p := New(timefmt.New(timefmt.WithPhrasebook(fr), timefmt.WithLocation(time.UTC)), clock.NewFixed(now))

	target := now.Add(-5 * time.Minute)
	if got, want := p.TimeSinceCompact(target), p.TimeSince(target); got != want {
		t.Errorf("TimeSinceCompact() = %q, want the verbose %q", got, want)
	}
}
