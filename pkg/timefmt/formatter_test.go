package timefmt

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mrled/humantime/pkg/calendar"
	"github.com/mrled/humantime/pkg/phrasebook"
)

func utcFormatter(t *testing.T, locale string) *Formatter {
	t.Helper()
	pb, err := phrasebook.Builtin(locale)
	if err != nil {
		t.Fatalf("Builtin(%q): %v", locale, err)
	}
	return New(WithPhrasebook(pb), WithLocation(time.UTC))
}

func at(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestShowTime_English(t *testing.T) {
	f := utcFormatter(t, "en")
	now := at(2024, 3, 10, 10, 0, 0) // a Sunday

	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"identical", now, "just now"},
		{"five seconds", at(2024, 3, 10, 9, 59, 55), "just now"},
		{"fifty nine seconds", now.Add(-59 * time.Second), "just now"},
		{"one minute", now.Add(-60 * time.Second), "1 minute ago"},
		{"eighty nine seconds", now.Add(-89 * time.Second), "1 minute ago"},
		{"ninety seconds rounds up", now.Add(-90 * time.Second), "2 minutes ago"},
		{"fifty nine minutes", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"just under an hour", now.Add(-3599 * time.Second), "60 minutes ago"},
		{"one hour same day", now.Add(-time.Hour), "09:00"},
		{"early today", at(2024, 3, 10, 0, 30, 0), "00:30"},
		{"yesterday", at(2024, 3, 9, 9, 0, 0), "yesterday 09:00"},
		{"yesterday late", at(2024, 3, 9, 23, 59, 0), "yesterday 23:59"},
		{"day before yesterday", at(2024, 3, 8, 12, 0, 0), "day-before-yesterday 12:00"},
		{"same iso week", at(2024, 3, 6, 15, 45, 0), "15:45 Wednesday"},
		{"start of iso week", at(2024, 3, 4, 8, 0, 0), "08:00 Monday"},
		{"previous week same month", at(2024, 3, 3, 8, 0, 0), "03-03"},
		{"earlier month", at(2024, 2, 20, 8, 0, 0), "02-20"},
		{"new year's day", at(2024, 1, 1, 0, 0, 0), "01-01"},
		{"last year", at(2023, 12, 31, 23, 59, 0), "2023-12-31"},
		{"years ago", at(2016, 12, 31, 8, 0, 0), "2016-12-31"},
		{"future", now.Add(time.Second), "2024-03"},
		{"far future", at(2031, 7, 1, 0, 0, 0), "2031-07"},
		{"epoch", time.Unix(0, 0), "1970-01"},
		{"before epoch", at(1969, 12, 31, 12, 0, 0), "1969-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ShowTime(tt.target, now); got != tt.want {
				t.Errorf("ShowTime(%v, %v) = %q, want %q", tt.target, now, got, tt.want)
			}
		})
	}
}

func TestShowTime_Chinese(t *testing.T) {
	f := utcFormatter(t, "zh")

	tests := []struct {
		name   string
		target time.Time
		now    time.Time
		want   string
	}{
		{"just now", at(2024, 3, 10, 9, 59, 30), at(2024, 3, 10, 10, 0, 0), "刚刚"},
		{"minutes", at(2024, 3, 10, 9, 30, 0), at(2024, 3, 10, 10, 0, 0), "30 分钟前"},
		{"yesterday", at(2024, 3, 9, 9, 0, 0), at(2024, 3, 10, 10, 0, 0), "昨天 09:00"},
		{"day before yesterday", at(2024, 3, 8, 9, 0, 0), at(2024, 3, 10, 10, 0, 0), "前天 09:00"},
		// Weeks start on Sunday, so Wednesday belongs to the previous week.
		{"previous sunday-start week", at(2024, 3, 6, 9, 0, 0), at(2024, 3, 10, 10, 0, 0), "03月06日"},
		{"same sunday-start week", at(2024, 3, 12, 9, 5, 0), at(2024, 3, 16, 10, 0, 0), "09:05 星期二"},
		{"last year", at(2016, 12, 31, 9, 0, 0), at(2024, 3, 10, 10, 0, 0), "2016年12月31日"},
		{"future", at(2024, 4, 1, 0, 0, 0), at(2024, 3, 10, 10, 0, 0), "2024年04月"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ShowTime(tt.target, tt.now); got != tt.want {
				t.Errorf("ShowTime(%v, %v) = %q, want %q", tt.target, tt.now, got, tt.want)
			}
		})
	}
}

func TestShowTime_WeekRuleOverride(t *testing.T) {
	now := at(2024, 3, 10, 10, 0, 0)
	target := at(2024, 3, 6, 15, 45, 0)

	f := New(WithLocation(time.UTC), WithWeekRule(calendar.SundayWeek))
	if got, want := f.ShowTime(target, now), "03-06"; got != want {
		t.Errorf("ShowTime with Sunday weeks = %q, want %q", got, want)
	}
}

func TestShowTime_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := New(WithLocation(tokyo))

	// 2024-03-09 23:00 UTC is 2024-03-10 08:00 in Tokyo; now is 11:00 there.
	target := at(2024, 3, 9, 23, 0, 0)
	now := at(2024, 3, 10, 2, 0, 0)
	if got, want := f.ShowTime(target, now), "08:00"; got != want {
		t.Errorf("ShowTime in JST = %q, want %q", got, want)
	}
}

func TestShowTime_IdenticalInstantsAreJustNow(t *testing.T) {
	f := utcFormatter(t, "en")
	start := at(1971, 1, 1, 0, 0, 0)
	for i := 0; i < 2000; i++ {
		ts := start.Add(time.Duration(i) * 173 * time.Hour)
		if got := f.ShowTime(ts, ts); got != "just now" {
			t.Fatalf("ShowTime(%v, %v) = %q, want just now", ts, ts, got)
		}
	}
}

func TestShowTime_UnderAMinuteIsJustNow(t *testing.T) {
	f := utcFormatter(t, "en")
	now := at(2024, 1, 1, 0, 0, 30)
	for ms := 0; ms < 60000; ms += 250 {
		target := now.Add(-time.Duration(ms) * time.Millisecond)
		if got := f.ShowTime(target, now); got != "just now" {
			t.Fatalf("ShowTime %dms before = %q, want just now", ms, got)
		}
	}
}

func TestShowTime_YesterdayMarker(t *testing.T) {
	f := utcFormatter(t, "en")
	for day := 2; day <= 366; day += 7 {
		now := at(2024, 1, 1, 12, 0, 0).AddDate(0, 0, day-1)
		for hour := 0; hour < 24; hour++ {
			target := at(now.Year(), now.Month(), now.Day(), hour, 0, 0).AddDate(0, 0, -1)
			if now.Sub(target) < time.Hour {
				continue
			}
			got := f.ShowTime(target, now)
			if !strings.HasPrefix(got, "yesterday ") {
				t.Fatalf("ShowTime(%v, %v) = %q, want yesterday prefix", target, now, got)
			}
		}
	}
}

func TestScenario(t *testing.T) {
	f := utcFormatter(t, "en")
	now := at(2024, 3, 10, 10, 0, 0)

	tests := []struct {
		target time.Time
		want   phrasebook.Tag
	}{
		{now, phrasebook.JustNow},
		{now.Add(-5 * time.Minute), phrasebook.MinutesAgo},
		{at(2024, 3, 9, 9, 0, 0), phrasebook.Yesterday},
		{at(2024, 3, 5, 9, 0, 0), phrasebook.SameWeek},
		{at(2024, 2, 5, 9, 0, 0), phrasebook.SameYearDifferentMonth},
		{at(2024, 3, 10, 1, 0, 0), phrasebook.SameDay},
		{at(2022, 3, 10, 1, 0, 0), phrasebook.DifferentYear},
		{now.Add(time.Minute), phrasebook.BeforeEpoch},
	}
	for _, tt := range tests {
		if got := f.Scenario(tt.target, now); got != tt.want {
			t.Errorf("Scenario(%v) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestFull(t *testing.T) {
	f := utcFormatter(t, "en")
	if got, want := f.Full(at(2024, 3, 5, 9, 7, 3)), "2024-03-05 09:07:03 Tuesday"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}

	zh := utcFormatter(t, "zh")
	if got, want := zh.Full(at(2024, 3, 5, 9, 7, 3)), "2024年03月05日 09时07分03秒 星期二"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}

func TestNew_Defaults(t *testing.T) {
	f := New()
	if f.Phrasebook().Locale() != "en" {
		t.Errorf("default phrasebook = %s, want en", f.Phrasebook().Locale())
	}
	if f.Comparator().Rule != calendar.ISOWeek {
		t.Errorf("default week rule = %v, want ISO", f.Comparator().Rule)
	}

	f = New(WithPhrasebook(nil))
	if f.Phrasebook() == nil {
		t.Error("WithPhrasebook(nil) must keep the default")
	}
}

func TestPackageLevelShowTime(t *testing.T) {
	now := time.Now()
	if got := ShowTime(now.Add(-10*time.Second), now); got != "just now" {
		t.Errorf("ShowTime() = %q, want just now", got)
	}
	if got, ok := DescribeInterval(now.Add(-3*time.Minute), now, false); !ok || got != "3 minutes ago" {
		t.Errorf("DescribeInterval() = %q, %v", got, ok)
	}
}

func TestFormatter_ConcurrentUse(t *testing.T) {
	f := utcFormatter(t, "en")
	now := at(2024, 3, 10, 10, 0, 0)

	targets := make([]time.Time, 200)
	want := make([]string, len(targets))
	for i := range targets {
		targets[i] = now.Add(-time.Duration(i*i) * 7 * time.Minute)
		want[i] = f.ShowTime(targets[i], now)
	}

	var wg sync.WaitGroup
	errs := make(chan string, len(targets))
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if got := f.ShowTime(targets[i], now); got != want[i] {
				errs <- got
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent ShowTime produced %q", got)
	}
}
