package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
)

const minutesPerDay = 24 * 60

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses HH:MM into minutes after midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// MinuteOfDay returns the minutes after midnight of t in loc.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders minutes after midnight as HH:MM, wrapping past 24h.
func FormatMinutes(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatCountdown renders d as "Hj Mm" in Indonesian or "Hh Mm" in English.
func FormatCountdown(d time.Duration, lang constants.Language) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	hourUnit := "j"
	if lang == constants.LangEnglish {
		hourUnit = "h"
	}
	return fmt.Sprintf("%d%s %dm", total/60, hourUnit, total%60)
}
