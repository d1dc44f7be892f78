package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/backup"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/notifier"
	"github.com/julianstephens/murojaah/internal/session"
	"github.com/julianstephens/murojaah/internal/storage"
	"github.com/julianstephens/murojaah/internal/storage/sqlite"
)

var (
	// ErrNotLoggedIn is returned by commands that need a signed-in user.
	ErrNotLoggedIn = errors.New("not logged in, run 'murojaah login' first")
	// ErrBackupUnsupported is returned for stores that are not SQLite files.
	ErrBackupUnsupported = errors.New("backups are only supported for SQLite databases")
)

type Context struct {
	Store    storage.Provider
	Sessions session.Backend
	Notifier notifier.Sender
	// Now defaults to time.Now.
	Now func() time.Time
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Settings returns the stored settings, or the defaults when they cannot
// be read.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		return models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}

func (c *Context) Language() constants.Language {
	return constants.Language(c.Settings().Language)
}

func (c *Context) SessionTTL() time.Duration {
	if hours := c.Settings().SessionTTLHours; hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return constants.DefaultSessionTTL
}

func (c *Context) Directory() *accounts.Directory {
	opts := []accounts.Option{accounts.WithClock(c.Clock)}
	if c.BcryptCost > 0 {
		opts = append(opts, accounts.WithBcryptCost(c.BcryptCost))
	}
	return accounts.NewDirectory(c.Store, opts...)
}

// SessionBackend defaults to the OS keyring.
func (c *Context) SessionBackend() session.Backend {
	if c.Sessions == nil {
		return session.KeyringBackend{}
	}
	return c.Sessions
}

func (c *Context) SessionProvider() *session.Provider {
	return session.NewProvider(c.SessionBackend(), c.Directory(),
		session.WithClock(c.Clock),
		session.WithTTL(c.SessionTTL()))
}

// Sender returns the configured notifier, or one that talks to the tray.
func (c *Context) Sender() notifier.Sender {
	if c.Notifier == nil {
		return notifier.New()
	}
	return c.Notifier
}

// RestoreSession returns a provider holding the stored session, for
// callers that keep checking it while they run.
func (c *Context) RestoreSession() (*session.Provider, models.Account, error) {
	p := c.SessionProvider()
	acct, err := p.Restore()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) ||
			errors.Is(err, session.ErrInvalidToken) {
			return nil, models.Account{}, ErrNotLoggedIn
		}
		return nil, models.Account{}, fmt.Errorf("failed to restore session: %w", err)
	}
	return p, *acct, nil
}

// CurrentUser restores the stored session.
func (c *Context) CurrentUser() (models.Account, error) {
	_, acct, err := c.RestoreSession()
	return acct, err
}

// Tracker binds the ledger to the signed-in user.
func (c *Context) Tracker() (*ledger.Tracker, models.Account, error) {
	acct, err := c.CurrentUser()
	if err != nil {
		return nil, models.Account{}, err
	}
	return c.TrackerFor(acct), acct, nil
}

func (c *Context) TrackerFor(acct models.Account) *ledger.Tracker {
	return ledger.NewTracker(c.Store, c.Store, acct.ID,
		ledger.WithClock(c.Clock),
		ledger.WithSignup(acct.SignupTimestamp))
}

// Backups returns the snapshot manager for a SQLite store.
func (c *Context) Backups() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// AutoBackup snapshots the database and only logs failures.
func (c *Context) AutoBackup() {
	mgr, err := c.Backups()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
