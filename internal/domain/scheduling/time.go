package scheduling

import (
	"time"

	"gorm.io/datatypes"
)

// NormalizeInstant converts t to UTC at microsecond precision, the resolution
// every supported database keeps.
func NormalizeInstant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) datatypes.Date {
	u := t.UTC()
	return datatypes.Date(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC))
}

// NormalizeDate drops any time-of-day component from d, keeping its calendar
// day as written.
func NormalizeDate(d time.Time) datatypes.Date {
	return datatypes.Date(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
}

// SameDay compares two dates by calendar day only.
func SameDay(a, b datatypes.Date) bool {
	ay, am, ad := time.Time(a).Date()
	by, bm, bd := time.Time(b).Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}
