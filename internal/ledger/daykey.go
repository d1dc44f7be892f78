// Package ledger derives per-day status, streaks and weekly completion rates
// from a user's signup moment and a sparse set of day records.
//
// All calendar arithmetic happens in a fixed UTC+07:00 zone. The host
// timezone is never consulted, so a day key means the same day on every
// machine that computes it.
package ledger

import (
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
)

// Zone is the fixed offset every day key is computed in.
var Zone = time.FixedZone(constants.ZoneName, constants.ZoneOffsetSec)

// DayKey returns the canonical YYYY-MM-DD key of the day containing t.
func DayKey(t time.Time) string {
	return t.In(Zone).Format(constants.DateFormat)
}

// Timestamp formats t as a fixed-offset write timestamp.
func Timestamp(t time.Time) string {
	return t.In(Zone).Format(constants.TimestampFormat)
}

// ParseDayKey returns midnight of the keyed day in Zone.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, Zone)
}

// ParseTimestamp parses a fixed-offset write timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(constants.TimestampFormat, s, Zone)
}

// SignupDayKey returns the day key of a signup timestamp. ok is false when
// the timestamp is empty or malformed, which callers treat as "not loaded".
func SignupDayKey(signup string) (key string, ok bool) {
	if signup == "" {
		return "", false
	}
	t, err := ParseTimestamp(signup)
	if err != nil {
		return "", false
	}
	return DayKey(t), true
}

// StartOfDay returns midnight in Zone of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Zone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Zone)
}

// AddDays moves t by n calendar days in Zone.
func AddDays(t time.Time, n int) time.Time {
	return t.In(Zone).AddDate(0, 0, n)
}

// WeekStart returns midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthBounds returns the first and last day keys of the month containing t.
func MonthBounds(t time.Time) (first, last string) {
	t = t.In(Zone)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Zone)
	end := start.AddDate(0, 1, -1)
	return DayKey(start), DayKey(end)
}

// ParseMonth parses a YYYY-MM selector into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(constants.MonthFormat, s, Zone)
}
