// Package prayer tracks the five daily prayer times used to time
// murojaah reminders.
package prayer

import (
	"fmt"
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/utils"
)

type Prayer string

const (
	Subuh   Prayer = "Subuh"
	Dzuhur  Prayer = "Dzuhur"
	Ashar   Prayer = "Ashar"
	Maghrib Prayer = "Maghrib"
	Isya    Prayer = "Isya"
)

const minutesPerDay = 24 * 60

// Slot is one prayer and its start, in minutes after midnight in ledger.Zone.
type Slot struct {
	Prayer  Prayer
	Minutes int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s", s.Prayer, utils.FormatMinutes(s.Minutes))
}

// Schedule holds the five prayers in day order.
type Schedule struct {
	slots [5]Slot
}

// Info describes where now sits in the schedule.
type Info struct {
	Current   Prayer
	Next      Prayer
	UntilNext time.Duration
}

func DefaultSchedule() Schedule {
	s, _ := FromSettings(models.DefaultSettings())
	return s
}

// FromSettings builds a schedule from the configured HH:MM times. The
// times must be strictly increasing from Subuh to Isya.
func FromSettings(settings models.Settings) (Schedule, error) {
	models.ApplyDefaultSettings(&settings)
	raw := []struct {
		prayer Prayer
		value  string
	}{
		{Subuh, settings.PrayerSubuh},
		{Dzuhur, settings.PrayerDzuhur},
		{Ashar, settings.PrayerAshar},
		{Maghrib, settings.PrayerMaghrib},
		{Isya, settings.PrayerIsya},
	}

	var s Schedule
	for i, r := range raw {
		m, err := utils.ParseTimeToMinutes(r.value)
		if err != nil {
			return Schedule{}, fmt.Errorf("invalid %s time %q: expected HH:MM", r.prayer, r.value)
		}
		if i > 0 && m <= s.slots[i-1].Minutes {
			return Schedule{}, fmt.Errorf("%s (%s) must be after %s (%s)",
				r.prayer, r.value, s.slots[i-1].Prayer, utils.FormatMinutes(s.slots[i-1].Minutes))
		}
		s.slots[i] = Slot{Prayer: r.prayer, Minutes: m}
	}
	return s, nil
}

// Slots returns the schedule in day order.
func (s Schedule) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots[:])
	return out
}

// At returns the prayer whose time has most recently started at now and
// the one after it. Before Subuh the current prayer is the previous
// evening's Isya.
func (s Schedule) At(now time.Time) Info {
	m := utils.MinuteOfDay(now, ledger.Zone)

	idx := len(s.slots) - 1
	for i, slot := range s.slots {
		if m >= slot.Minutes {
			idx = i
		}
	}

	next := s.slots[(idx+1)%len(s.slots)]
	until := next.Minutes - m
	if until <= 0 {
		until += minutesPerDay
	}
	return Info{
		Current:   s.slots[idx].Prayer,
		Next:      next.Prayer,
		UntilNext: time.Duration(until) * time.Minute,
	}
}

// Due reports the prayer whose start plus offsetMin falls in the same
// minute as now.
func (s Schedule) Due(now time.Time, offsetMin int) (Prayer, bool) {
	m := utils.MinuteOfDay(now, ledger.Zone)
	for _, slot := range s.slots {
		target := ((slot.Minutes+offsetMin)%minutesPerDay + minutesPerDay) % minutesPerDay
		if target == m {
			return slot.Prayer, true
		}
	}
	return "", false
}

var reminders = map[constants.Language]string{
	constants.LangIndonesian: "Manfaatkan waktu setelah sholat untuk murojaah",
	constants.LangEnglish:    "Use the time after prayer for murojaah",
}

// ReminderMessage is the text sent when a prayer is due.
func ReminderMessage(lang constants.Language) string {
	if msg, ok := reminders[lang]; ok {
		return msg
	}
	return reminders[constants.LangIndonesian]
}
