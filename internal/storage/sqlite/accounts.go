package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

const accountColumns = `id, email, display_name, password_hash, auth_provider, signup_timestamp,
	created_at, last_logout, session_invalidated, failed_attempts, locked_until`

func (s *Store) AddAccount(a models.Account) error {
	var lockedUntil sql.NullString
	if a.LockedUntil != nil {
		lockedUntil = sql.NullString{String: a.LockedUntil.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.DisplayName, a.PasswordHash, a.AuthProvider, a.SignupTimestamp,
		a.CreatedAt.UTC().Format(time.RFC3339), nullString(a.LastLogout), a.SessionInvalidated,
		a.FailedAttempts, lockedUntil,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("account %s: %w", a.Email, storage.ErrConflict)
	}
	return err
}

func (s *Store) GetAccount(id string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (s *Store) GetAccountByEmail(email string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE email = ? COLLATE NOCASE`, email)
	return scanAccount(row)
}

func (s *Store) UpdateAccount(a models.Account) error {
	var lockedUntil sql.NullString
	if a.LockedUntil != nil {
		lockedUntil = sql.NullString{String: a.LockedUntil.UTC().Format(time.RFC3339), Valid: true}
	}

	res, err := s.db.Exec(`
		UPDATE accounts SET display_name = ?, password_hash = ?, last_logout = ?,
			session_invalidated = ?, failed_attempts = ?, locked_until = ?
		WHERE id = ?`,
		a.DisplayName, a.PasswordHash, nullString(a.LastLogout), a.SessionInvalidated,
		a.FailedAttempts, lockedUntil, a.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", a.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) GetSignupTimestamp(userID string) (string, error) {
	var signup string
	err := s.db.QueryRow("SELECT signup_timestamp FROM accounts WHERE id = ?", userID).Scan(&signup)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("account %s: %w", userID, storage.ErrNotFound)
	}
	return signup, err
}

func scanAccount(row *sql.Row) (models.Account, error) {
	var a models.Account
	var createdAt string
	var lastLogout, lockedUntil sql.NullString

	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.AuthProvider,
		&a.SignupTimestamp, &createdAt, &lastLogout, &a.SessionInvalidated, &a.FailedAttempts, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("account: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Account{}, err
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to parse created_at for account %s: %w", a.ID, err)
	}
	a.LastLogout = lastLogout.String
	if lockedUntil.Valid {
		t, err := time.Parse(time.RFC3339, lockedUntil.String)
		if err != nil {
			return models.Account{}, fmt.Errorf("failed to parse locked_until for account %s: %w", a.ID, err)
		}
		a.LockedUntil = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
