package storage

import (
	"errors"

	"github.com/julianstephens/murojaah/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert collides with a unique key.
	ErrConflict = errors.New("already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Accounts
	AddAccount(models.Account) error
	GetAccount(id string) (models.Account, error)
	GetAccountByEmail(email string) (models.Account, error)
	UpdateAccount(models.Account) error
	GetSignupTimestamp(userID string) (string, error)

	// Day records. PutDayRecord replaces any existing record for the day.
	GetDayRecord(userID, day string) (models.DayRecord, error)
	PutDayRecord(userID string, rec models.DayRecord) error
	// GetDayRecords returns the records whose day falls in [startDay, endDay].
	GetDayRecords(userID, startDay, endDay string) (map[string]models.DayRecord, error)

	// Utils
	GetConfigPath() string
	// Migrate applies pending schema migrations.
	Migrate(logFn func(string)) (int, error)
	// MigrationStatus reports the applied and the latest schema versions.
	MigrationStatus() (current, latest int, err error)
}
