package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether prayer reminders are sent
	ReminderOffsetMin    int    `json:"reminder_offset_min"`   // minutes after a prayer starts to remind
	Language             string `json:"language"`              // "id" or "en"
	SessionTTLHours      int    `json:"session_ttl_hours"`     // hours a login stays valid
	PrayerSubuh          string `json:"prayer_subuh"`          // HH:MM in UTC+7
	PrayerDzuhur         string `json:"prayer_dzuhur"`
	PrayerAshar          string `json:"prayer_ashar"`
	PrayerMaghrib        string `json:"prayer_maghrib"`
	PrayerIsya           string `json:"prayer_isya"`
}
