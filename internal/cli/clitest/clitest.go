// Package clitest builds command contexts backed by a temporary SQLite
// database for command tests.
package clitest

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/session"
	"github.com/julianstephens/murojaah/internal/storage/sqlite"
)

// Clock is a settable time source.
type Clock struct{ T time.Time }

func (c *Clock) Now() time.Time { return c.T }

// At returns an instant in the fixed UTC+7 zone.
func At(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.FixedZone("WIB", 7*3600))
}

// NewContext returns a context over an initialized store, an in-memory
// session backend and a settable clock.
func NewContext(t *testing.T, now time.Time) (*cli.Context, *Clock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "murojaah.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	clock := &Clock{T: now}
	return &cli.Context{
		Store:      store,
		Sessions:   session.NewMemoryBackend([]byte("test-secret")),
		Now:        clock.Now,
		BcryptCost: bcrypt.MinCost,
	}, clock
}
