package timefmt

import (
	"fmt"
	"time"
)

// DirName names a directory after the day of t, as yyyyMMdd.
func DirName(t time.Time) string {
	return t.Format("20060102")
}

// FileName names a file after the time of day of t, as HHmmssSSS.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s%03d", t.Format("150405"), t.Nanosecond()/int(time.Millisecond))
}
