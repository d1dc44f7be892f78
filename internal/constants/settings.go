package constants

const (
	// General Settings
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderOffsetMin    = "reminder_offset_min"
	SettingLanguage             = "language"
	SettingSessionTTLHours      = "session_ttl_hours"

	// Prayer Settings
	SettingPrayerSubuh   = "prayer_subuh"
	SettingPrayerDzuhur  = "prayer_dzuhur"
	SettingPrayerAshar   = "prayer_ashar"
	SettingPrayerMaghrib = "prayer_maghrib"
	SettingPrayerIsya    = "prayer_isya"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultReminderOffsetMin    = 0
	DefaultLanguage             = string(LangIndonesian)
	DefaultSessionTTLHours      = 24

	DefaultPrayerSubuh   = "05:00"
	DefaultPrayerDzuhur  = "12:00"
	DefaultPrayerAshar   = "15:30"
	DefaultPrayerMaghrib = "18:00"
	DefaultPrayerIsya    = "19:30"
)
