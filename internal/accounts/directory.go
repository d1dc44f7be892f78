// Package accounts registers and authenticates users and keeps the
// immutable signup timestamp every day status is measured from.
package accounts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

// Store is the account persistence the directory needs.
type Store interface {
	AddAccount(models.Account) error
	GetAccount(id string) (models.Account, error)
	GetAccountByEmail(email string) (models.Account, error)
	UpdateAccount(models.Account) error
	GetSignupTimestamp(userID string) (string, error)
}

type Directory struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
	cost     int
}

type Option func(*Directory)

func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(d *Directory) { d.cost = cost }
}

func NewDirectory(store Store, opts ...Option) *Directory {
	d := &Directory{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (d *Directory) checkEmail(email string) error {
	if err := d.validate.Var(email, "required,email"); err != nil {
		return authErr(CodeInvalidEmail)
	}
	return nil
}

// Register creates an email/password account. The signup timestamp is
// taken from the directory clock and never changes afterwards.
func (d *Directory) Register(email, password, displayName string) (models.Account, error) {
	email = normalizeEmail(email)
	if err := d.checkEmail(email); err != nil {
		return models.Account{}, err
	}
	if len(password) < constants.MinPasswordLength {
		return models.Account{}, authErr(CodeWeakPassword)
	}

	if _, err := d.store.GetAccountByEmail(email); err == nil {
		return models.Account{}, authErr(CodeEmailAlreadyInUse)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Account{}, fmt.Errorf("looking up account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hashing password: %w", err)
	}

	now := d.now()
	acct := models.Account{
		ID:              uuid.NewString(),
		Email:           email,
		DisplayName:     strings.TrimSpace(displayName),
		PasswordHash:    string(hash),
		AuthProvider:    constants.AuthProviderEmail,
		SignupTimestamp: ledger.Timestamp(now),
		CreatedAt:       now.UTC(),
	}
	if err := d.store.AddAccount(acct); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return models.Account{}, authErr(CodeEmailAlreadyInUse)
		}
		return models.Account{}, fmt.Errorf("saving account: %w", err)
	}

	logger.Info("Account registered", "user", acct.ID)
	return acct, nil
}

// SignIn checks an email/password pair. MaxFailedSignIns consecutive
// failures lock the account for SignInLockout.
func (d *Directory) SignIn(email, password string) (models.Account, error) {
	email = normalizeEmail(email)
	if err := d.checkEmail(email); err != nil {
		return models.Account{}, err
	}

	acct, err := d.store.GetAccountByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Account{}, authErr(CodeUserNotFound)
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("looking up account: %w", err)
	}

	now := d.now()
	if acct.IsLocked(now) {
		return models.Account{}, authErr(CodeTooManyRequests)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		acct.FailedAttempts++
		if acct.FailedAttempts >= constants.MaxFailedSignIns {
			until := now.Add(constants.SignInLockout).UTC()
			acct.LockedUntil = &until
			acct.FailedAttempts = 0
			logger.Warn("Account locked after repeated failures", "user", acct.ID, "until", until)
		}
		if err := d.store.UpdateAccount(acct); err != nil {
			logger.Error("Failed to record sign-in failure", "user", acct.ID, "error", err)
		}
		return models.Account{}, authErr(CodeWrongPassword)
	}

	acct.FailedAttempts = 0
	acct.LockedUntil = nil
	acct.SessionInvalidated = false
	if err := d.store.UpdateAccount(acct); err != nil {
		logger.Error("Failed to reset sign-in state", "user", acct.ID, "error", err)
	}
	return acct, nil
}

func (d *Directory) Get(id string) (models.Account, error) {
	return d.store.GetAccount(id)
}

// GetSignupTimestamp returns the stored signup timestamp of a user.
func (d *Directory) GetSignupTimestamp(id string) (string, error) {
	return d.store.GetSignupTimestamp(id)
}

// RecordLogout marks the user's server-side session as ended.
func (d *Directory) RecordLogout(id string) error {
	acct, err := d.store.GetAccount(id)
	if err != nil {
		return err
	}
	acct.LastLogout = ledger.Timestamp(d.now())
	acct.SessionInvalidated = true
	return d.store.UpdateAccount(acct)
}
