package keyring

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/murojaah/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value, what string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(user, what string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

func SetConnectionString(connStr string) error {
	return set(constants.DefaultKeyringUser, connStr, "connection string")
}

func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser, "connection string")
}

// GetSessionToken returns the signed token of the device's active session.
func GetSessionToken() (string, error) {
	return get(constants.SessionKeyringUser)
}

func SetSessionToken(token string) error {
	return set(constants.SessionKeyringUser, token, "session token")
}

func DeleteSessionToken() error {
	return del(constants.SessionKeyringUser, "session token")
}

// SessionSecret returns the key session tokens are signed with, generating
// and storing a new one on first use.
func SessionSecret() ([]byte, error) {
	encoded, err := get(constants.SecretKeyringUser)
	if err == nil {
		secret, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr == nil && len(secret) > 0 {
			return secret, nil
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	if err := set(constants.SecretKeyringUser, base64.StdEncoding.EncodeToString(secret), "session secret"); err != nil {
		return nil, err
	}
	return secret, nil
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
