package utils

import "time"

// Timestamps are stored as epoch seconds; keep the conversions in one place.

func NowUnixSeconds() int64 { return time.Now().Unix() }

func NowUnixMillis() int64 { return time.Now().UnixMilli() }

// StartOfDayUTC truncates t to midnight UTC.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKeyUTC renders an epoch-seconds value as a YYYY-MM-DD bucket key.
func DayKeyUTC(unixSec int64) string {
	return time.Unix(unixSec, 0).UTC().Format("2006-01-02")
}
