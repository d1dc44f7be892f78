package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// DayStatus is the derived state of a single calendar day
type DayStatus string

// Language selects the locale used for user-facing messages
type Language string

const (
	AppName            = "murojaah"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	SecretKeyringUser  = "session-secret"
	DefaultConfigPath  = "~/.config/murojaah/murojaah.db"
	Version            = "v0.3.0"

	// DateFormat is the day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the fixed-offset write timestamp format (YYYY-MM-DD HH:mm:ss)
	TimestampFormat = "2006-01-02 15:04:05"

	// MonthFormat is the calendar month selector format (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the time-of-day format used for prayer times (HH:MM)
	TimeFormat = "15:04"

	// Day keys are always computed in UTC+07:00 (WIB), never in the host zone.
	ZoneName      = "WIB"
	ZoneOffsetSec = 7 * 60 * 60

	// Aggregation windows
	StreakLookbackDays = 365
	DaysPerWeek        = 7

	// Session
	DefaultSessionTTL = 24 * time.Hour
	AuthProviderEmail = "email"

	// Account lockout
	MaxFailedSignIns  = 5
	SignInLockout     = 15 * time.Minute
	MinPasswordLength = 6

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "murojaah-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.murojaah"
	TrayExecutablePrefix   = "murojaah-tray"

	// API
	DefaultAPIAddr = ":8080"

	// Day statuses
	StatusCompleted    DayStatus = "completed"
	StatusMissed       DayStatus = "missed"
	StatusBeforeSignup DayStatus = "before-signup"
	StatusFuture       DayStatus = "future"

	// Languages
	LangIndonesian Language = "id"
	LangEnglish    Language = "en"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateCalendar
	StateEditNote
)
