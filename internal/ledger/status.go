package ledger

import (
	"math"
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/models"
)

// Records maps day keys to the record stored for that day.
type Records map[string]models.DayRecord

// Completed reports whether the keyed day has a completed record.
func (r Records) Completed(key string) bool {
	rec, ok := r[key]
	return ok && rec.Completed
}

// Classify returns the status of target relative to the signup timestamp
// and now. Only target's own record is consulted.
func Classify(target time.Time, signup string, now time.Time, records Records) models.DayStatus {
	signupKey, ok := SignupDayKey(signup)
	if !ok {
		return models.StatusBeforeSignup
	}
	return classifyKey(DayKey(target), signupKey, DayKey(now), records)
}

func classifyKey(key, signupKey, todayKey string, records Records) models.DayStatus {
	switch {
	case key > todayKey:
		return models.StatusFuture
	case key < signupKey:
		return models.StatusBeforeSignup
	case records.Completed(key):
		return models.StatusCompleted
	default:
		return models.StatusMissed
	}
}

// MonthStatuses classifies every day of the month containing month.
func MonthStatuses(month time.Time, signup string, now time.Time, records Records) map[string]models.DayStatus {
	first, last := MonthBounds(month)
	day, _ := ParseDayKey(first)

	signupKey, ok := SignupDayKey(signup)
	todayKey := DayKey(now)

	statuses := make(map[string]models.DayStatus, 31)
	for key := first; key <= last; key = DayKey(day) {
		if ok {
			statuses[key] = classifyKey(key, signupKey, todayKey, records)
		} else {
			statuses[key] = models.StatusBeforeSignup
		}
		day = day.AddDate(0, 0, 1)
	}
	return statuses
}

// StreakWindow returns the closed key range a streak computation needs.
func StreakWindow(now time.Time) (start, end string) {
	today := StartOfDay(now)
	return DayKey(today.AddDate(0, 0, -(constants.StreakLookbackDays - 1))), DayKey(today)
}

// Streak counts consecutive completed days ending at today, walking back at
// most StreakLookbackDays days and never past the signup day. A day without
// a completed record (today included) ends the chain.
func Streak(records Records, signup string, now time.Time) int {
	signupKey, ok := SignupDayKey(signup)
	if !ok {
		return 0
	}

	streak := 0
	day := StartOfDay(now)
	for i := 0; i < constants.StreakLookbackDays; i++ {
		key := DayKey(day)
		if key < signupKey {
			break
		}
		if !records.Completed(key) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeekWindow returns the closed key range from the week's Sunday to today.
func WeekWindow(now time.Time) (start, end string) {
	return DayKey(WeekStart(now)), DayKey(now)
}

// WeeklyRate returns the rounded percentage of eligible days this week that
// are completed. Eligible days fall on or after the signup day and on or
// before today; days before signup are excluded, not counted as misses.
func WeeklyRate(records Records, signup string, now time.Time) int {
	signupKey, ok := SignupDayKey(signup)
	if !ok {
		return 0
	}

	todayKey := DayKey(now)
	day := WeekStart(now)

	eligible, completed := 0, 0
	for i := 0; i < constants.DaysPerWeek; i++ {
		key := DayKey(day)
		day = day.AddDate(0, 0, 1)
		if key > todayKey {
			break
		}
		if key < signupKey {
			continue
		}
		eligible++
		if records.Completed(key) {
			completed++
		}
	}

	if eligible == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(eligible) * 100))
}
