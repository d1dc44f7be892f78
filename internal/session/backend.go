package session

import (
	"errors"
	"sync"

	"github.com/julianstephens/murojaah/internal/keyring"
)

// Backend persists the device's session token and signing secret.
type Backend interface {
	// LoadToken returns ErrNoSession when nothing is stored.
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
	Secret() ([]byte, error)
}

// KeyringBackend stores the session in the OS keyring.
type KeyringBackend struct{}

func (KeyringBackend) LoadToken() (string, error) {
	token, err := keyring.GetSessionToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoSession
	}
	return token, err
}

func (KeyringBackend) SaveToken(token string) error {
	return keyring.SetSessionToken(token)
}

func (KeyringBackend) ClearToken() error {
	err := keyring.DeleteSessionToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (KeyringBackend) Secret() ([]byte, error) {
	return keyring.SessionSecret()
}

// MemoryBackend keeps the session in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	token  string
	secret []byte
}

func NewMemoryBackend(secret []byte) *MemoryBackend {
	return &MemoryBackend{secret: secret}
}

func (m *MemoryBackend) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoSession
	}
	return m.token, nil
}

func (m *MemoryBackend) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryBackend) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *MemoryBackend) Secret() ([]byte, error) {
	return m.secret, nil
}
