package models

import (
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
)

// DayStatus re-exports the constants type so callers only import models
type DayStatus = constants.DayStatus

const (
	StatusCompleted    = constants.StatusCompleted
	StatusMissed       = constants.StatusMissed
	StatusBeforeSignup = constants.StatusBeforeSignup
	StatusFuture       = constants.StatusFuture
)

// DayRecord is one user's murojaah entry for a single calendar day.
// Writes always replace the whole record.
type DayRecord struct {
	Day       string    `json:"day"` // YYYY-MM-DD in UTC+7
	Completed bool      `json:"completed"`
	Note      string    `json:"note"`
	Timestamp string    `json:"timestamp"` // YYYY-MM-DD HH:mm:ss in UTC+7
	CreatedAt time.Time `json:"created_at"`
}
