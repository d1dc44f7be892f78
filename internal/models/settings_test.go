package models

import (
	"testing"

	"github.com/julianstephens/murojaah/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{
		NotificationsEnabled: true,
		ReminderOffsetMin:    10,
		Language:             "en",
		SessionTTLHours:      12,
		PrayerSubuh:          "04:45",
		PrayerDzuhur:         "11:55",
		PrayerAshar:          "15:10",
		PrayerMaghrib:        "17:50",
		PrayerIsya:           "19:05",
	}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if out != in {
		t.Errorf("MapToSettings(SettingsToMap(x)) = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsInvalidNumber(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingReminderOffsetMin: "soon"})
	if err == nil {
		t.Error("expected error for non-numeric reminder offset")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{PrayerSubuh: "04:30"}
	ApplyDefaultSettings(&s)

	if s.PrayerSubuh != "04:30" {
		t.Errorf("existing value overwritten: got %q", s.PrayerSubuh)
	}
	if s.PrayerIsya != constants.DefaultPrayerIsya {
		t.Errorf("PrayerIsya = %q, want %q", s.PrayerIsya, constants.DefaultPrayerIsya)
	}
	if s.Language != constants.DefaultLanguage {
		t.Errorf("Language = %q, want %q", s.Language, constants.DefaultLanguage)
	}
	if s.SessionTTLHours != constants.DefaultSessionTTLHours {
		t.Errorf("SessionTTLHours = %d, want %d", s.SessionTTLHours, constants.DefaultSessionTTLHours)
	}
}

func TestDefaultSettingsEnablesNotifications(t *testing.T) {
	if !DefaultSettings().NotificationsEnabled {
		t.Error("DefaultSettings().NotificationsEnabled = false, want true")
	}
}
