package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

const accountColumns = `id, email, display_name, password_hash, auth_provider, signup_timestamp,
	created_at, last_logout, session_invalidated, failed_attempts, locked_until`

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func (s *Store) AddAccount(a models.Account) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Email, a.DisplayName, a.PasswordHash, a.AuthProvider, a.SignupTimestamp,
		a.CreatedAt.UTC(), nullString(a.LastLogout), a.SessionInvalidated, a.FailedAttempts, a.LockedUntil,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("account %s: %w", a.Email, storage.ErrConflict)
	}
	return err
}

func (s *Store) GetAccount(id string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (s *Store) GetAccountByEmail(email string) (models.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1)`, email)
	return scanAccount(row)
}

func (s *Store) UpdateAccount(a models.Account) error {
	res, err := s.db.Exec(`
		UPDATE accounts SET display_name = $1, password_hash = $2, last_logout = $3,
			session_invalidated = $4, failed_attempts = $5, locked_until = $6
		WHERE id = $7`,
		a.DisplayName, a.PasswordHash, nullString(a.LastLogout), a.SessionInvalidated,
		a.FailedAttempts, a.LockedUntil, a.ID,
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
	err := s.db.QueryRow("SELECT signup_timestamp FROM accounts WHERE id = $1", userID).Scan(&signup)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("account %s: %w", userID, storage.ErrNotFound)
	}
	return signup, err
}

func scanAccount(row *sql.Row) (models.Account, error) {
	var a models.Account
	var lastLogout sql.NullString
	var lockedUntil sql.NullTime

	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.AuthProvider,
		&a.SignupTimestamp, &a.CreatedAt, &lastLogout, &a.SessionInvalidated, &a.FailedAttempts, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("account: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Account{}, err
	}

	a.LastLogout = lastLogout.String
	if lockedUntil.Valid {
		t := lockedUntil.Time
		a.LockedUntil = &t
	}
	return a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
