package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/murojaah/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingReminderOffsetMin:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_offset_min: %w", err)
			}
			settings.ReminderOffsetMin = n
		case constants.SettingLanguage:
			settings.Language = value
		case constants.SettingSessionTTLHours:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing session_ttl_hours: %w", err)
			}
			settings.SessionTTLHours = n
		case constants.SettingPrayerSubuh:
			settings.PrayerSubuh = value
		case constants.SettingPrayerDzuhur:
			settings.PrayerDzuhur = value
		case constants.SettingPrayerAshar:
			settings.PrayerAshar = value
		case constants.SettingPrayerMaghrib:
			settings.PrayerMaghrib = value
		case constants.SettingPrayerIsya:
			settings.PrayerIsya = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingReminderOffsetMin:    strconv.Itoa(settings.ReminderOffsetMin),
		constants.SettingLanguage:             settings.Language,
		constants.SettingSessionTTLHours:      strconv.Itoa(settings.SessionTTLHours),
		constants.SettingPrayerSubuh:          settings.PrayerSubuh,
		constants.SettingPrayerDzuhur:         settings.PrayerDzuhur,
		constants.SettingPrayerAshar:          settings.PrayerAshar,
		constants.SettingPrayerMaghrib:        settings.PrayerMaghrib,
		constants.SettingPrayerIsya:           settings.PrayerIsya,
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	s := Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Language == "" {
		settings.Language = constants.DefaultLanguage
	}
	if settings.SessionTTLHours == 0 {
		settings.SessionTTLHours = constants.DefaultSessionTTLHours
	}
	if settings.PrayerSubuh == "" {
		settings.PrayerSubuh = constants.DefaultPrayerSubuh
	}
	if settings.PrayerDzuhur == "" {
		settings.PrayerDzuhur = constants.DefaultPrayerDzuhur
	}
	if settings.PrayerAshar == "" {
		settings.PrayerAshar = constants.DefaultPrayerAshar
	}
	if settings.PrayerMaghrib == "" {
		settings.PrayerMaghrib = constants.DefaultPrayerMaghrib
	}
	if settings.PrayerIsya == "" {
		settings.PrayerIsya = constants.DefaultPrayerIsya
	}
}
