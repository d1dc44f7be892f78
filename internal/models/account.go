package models

import "time"

// Account is a registered user of the tracker
type Account struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name"`
	PasswordHash       string     `json:"-"`
	AuthProvider       string     `json:"auth_provider"`
	SignupTimestamp    string     `json:"signup_timestamp"` // YYYY-MM-DD HH:mm:ss in UTC+7, immutable
	CreatedAt          time.Time  `json:"created_at"`
	LastLogout         string     `json:"last_logout,omitempty"`
	SessionInvalidated bool       `json:"session_invalidated"`
	FailedAttempts     int        `json:"-"`
	LockedUntil        *time.Time `json:"-"`
}

// IsLocked reports whether sign-in is temporarily blocked at the given instant
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
