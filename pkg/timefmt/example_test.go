package timefmt_test

import (
	"fmt"
	"time"

	"github.com/mrled/humantime/pkg/phrasebook"
	"github.com/mrled/humantime/pkg/timefmt"
)

func ExampleFormatter_ShowTime() {
	f := timefmt.New(timefmt.WithLocation(time.UTC))
	now := time.Date(2024, 3, 10, 10, 0, 5, 0, time.UTC)

	fmt.Println(f.ShowTime(time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC), now))
	fmt.Println(f.ShowTime(time.Date(2024, 3, 10, 9, 45, 0, 0, time.UTC), now))
	fmt.Println(f.ShowTime(time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC), now))
	fmt.Println(f.ShowTime(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), now))
	// Output:
	// just now
	// 15 minutes ago
	// yesterday 09:00
	// 2023-12-31
}

func ExampleFormatter_DescribeInterval() {
	zh, _ := phrasebook.Builtin("zh")
	f := timefmt.New(timefmt.WithPhrasebook(zh), timefmt.WithLocation(time.UTC))
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	if s, ok := f.DescribeInterval(now.Add(-3*time.Hour), now, true); ok {
		fmt.Println(s)
	}
	if _, ok := f.DescribeInterval(now.Add(-3*time.Hour), now, false); !ok {
		fmt.Println("not applicable")
	}
	// Output:
	// 3 小时前
	// not applicable
}
