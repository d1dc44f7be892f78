package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

type fakeDirectory struct {
	mu        sync.Mutex
	accounts  map[string]models.Account
	logouts   []string
	logoutErr error
}

func newFakeDirectory(accts ...models.Account) *fakeDirectory {
	d := &fakeDirectory{accounts: map[string]models.Account{}}
	for _, a := range accts {
		d.accounts[a.ID] = a
	}
	return d
}

func (d *fakeDirectory) Get(id string) (models.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("account: %w", storage.ErrNotFound)
	}
	return a, nil
}

func (d *fakeDirectory) RecordLogout(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.logoutErr != nil {
		return d.logoutErr
	}
	d.logouts = append(d.logouts, id)
	a := d.accounts[id]
	a.SessionInvalidated = true
	d.accounts[id] = a
	return nil
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var testAccount = models.Account{ID: "u1", Email: "a@example.com", SignupTimestamp: "2024-01-10 08:00:00"}

func newTestProvider(t *testing.T) (*Provider, *MemoryBackend, *fakeDirectory, *clock) {
	t.Helper()
	backend := NewMemoryBackend([]byte("test-secret"))
	dir := newFakeDirectory(testAccount)
	c := &clock{t: time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)}
	return NewProvider(backend, dir, WithClock(c.now)), backend, dir, c
}

func TestStartAndCurrent(t *testing.T) {
	p, backend, _, c := newTestProvider(t)

	if p.Current() != nil || p.Valid() {
		t.Fatal("new provider should have no session")
	}

	if err := p.Start(testAccount, "email"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if cur := p.Current(); cur == nil || cur.ID != "u1" {
		t.Fatalf("Current() = %+v, want u1", cur)
	}
	if !p.LoginAt().Equal(c.now()) {
		t.Errorf("LoginAt() = %v, want %v", p.LoginAt(), c.now())
	}
	if !p.Valid() {
		t.Error("fresh session should be valid")
	}
	if _, err := backend.LoadToken(); err != nil {
		t.Errorf("token not persisted: %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	p, _, _, _ := newTestProvider(t)
	_ = p.Start(testAccount, "email")

	p.Current().Email = "mutated@example.com"
	if p.Current().Email != "a@example.com" {
		t.Error("Current() exposed internal state")
	}
}

func TestValidExpiresAfterTTL(t *testing.T) {
	p, backend, dir, c := newTestProvider(t)
	_ = p.Start(testAccount, "email")

	var seen []*models.Account
	p.Subscribe(func(a *models.Account) { seen = append(seen, a) })

	c.advance(23 * time.Hour)
	if !p.Valid() {
		t.Fatal("session should be valid before the TTL")
	}

	c.advance(time.Hour + time.Second)
	if p.Valid() {
		t.Fatal("session should be invalid after the TTL")
	}
	if p.Current() != nil {
		t.Error("expired session was not ended")
	}
	if _, err := backend.LoadToken(); !errors.Is(err, ErrNoSession) {
		t.Errorf("token still stored after forced logout: %v", err)
	}
	if len(dir.logouts) != 1 {
		t.Errorf("logouts recorded = %d, want 1", len(dir.logouts))
	}
	if len(seen) != 1 || seen[0] != nil {
		t.Errorf("subscriber saw %v, want a single nil", seen)
	}
}

func TestWithTTL(t *testing.T) {
	backend := NewMemoryBackend([]byte("s"))
	c := &clock{t: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	p := NewProvider(backend, newFakeDirectory(testAccount), WithClock(c.now), WithTTL(time.Hour))
	_ = p.Start(testAccount, "email")

	c.advance(61 * time.Minute)
	if p.Valid() {
		t.Error("session should expire after the configured TTL")
	}
}

func TestSubscribe(t *testing.T) {
	p, _, _, _ := newTestProvider(t)

	var got []string
	unsubscribe := p.Subscribe(func(a *models.Account) {
		if a == nil {
			got = append(got, "<nil>")
			return
		}
		got = append(got, a.ID)
	})

	_ = p.Start(testAccount, "email")
	_ = p.End()
	unsubscribe()
	_ = p.Start(testAccount, "email")

	if len(got) != 2 || got[0] != "u1" || got[1] != "<nil>" {
		t.Errorf("subscriber saw %v, want [u1 <nil>]", got)
	}
}

func TestEndRecordsLogout(t *testing.T) {
	p, backend, dir, _ := newTestProvider(t)
	_ = p.Start(testAccount, "email")

	if err := p.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if p.Current() != nil {
		t.Error("Current() should be nil after End")
	}
	if len(dir.logouts) != 1 || dir.logouts[0] != "u1" {
		t.Errorf("logouts = %v", dir.logouts)
	}
	if _, err := backend.LoadToken(); !errors.Is(err, ErrNoSession) {
		t.Error("token not cleared")
	}
}

func TestEndClearsLocallyWhenDirectoryFails(t *testing.T) {
	p, _, dir, _ := newTestProvider(t)
	_ = p.Start(testAccount, "email")
	dir.logoutErr = errors.New("offline")

	if err := p.End(); err == nil {
		t.Error("expected the directory failure to be reported")
	}
	if p.Current() != nil {
		t.Error("local session should be cleared even when the directory fails")
	}
}

func TestRestore(t *testing.T) {
	backend := NewMemoryBackend([]byte("test-secret"))
	dir := newFakeDirectory(testAccount)
	c := &clock{t: time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)}

	first := NewProvider(backend, dir, WithClock(c.now))
	if err := first.Start(testAccount, "email"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	c.advance(2 * time.Hour)
	second := NewProvider(backend, dir, WithClock(c.now))
	acct, err := second.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if acct.ID != "u1" {
		t.Errorf("Restore() = %q, want u1", acct.ID)
	}
	if !second.LoginAt().Equal(time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)) {
		t.Errorf("LoginAt() = %v, want original login time", second.LoginAt())
	}
}

func TestRestoreRejects(t *testing.T) {
	loginAt := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   func() string
		now     time.Time
		account models.Account
		wantErr error
	}{
		{
			name:    "nothing stored",
			token:   func() string { return "" },
			now:     loginAt,
			account: testAccount,
			wantErr: ErrNoSession,
		},
		{
			name: "expired",
			token: func() string {
				tok, _ := Sign([]byte("test-secret"), testAccount, "email", loginAt)
				return tok
			},
			now:     loginAt.Add(25 * time.Hour),
			account: testAccount,
			wantErr: ErrExpired,
		},
		{
			name: "wrong secret",
			token: func() string {
				tok, _ := Sign([]byte("other-secret"), testAccount, "email", loginAt)
				return tok
			},
			now:     loginAt,
			account: testAccount,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func() string { return "not.a.jwt" },
			now:     loginAt,
			account: testAccount,
			wantErr: ErrInvalidToken,
		},
		{
			name: "logged out elsewhere",
			token: func() string {
				tok, _ := Sign([]byte("test-secret"), testAccount, "email", loginAt)
				return tok
			},
			now:     loginAt,
			account: models.Account{ID: "u1", SessionInvalidated: true},
			wantErr: ErrNoSession,
		},
		{
			name: "logged out, then signed in on another device",
			token: func() string {
				tok, _ := Sign([]byte("test-secret"), testAccount, "email", loginAt)
				return tok
			},
			now:     loginAt.Add(2 * time.Hour),
			account: models.Account{ID: "u1", LastLogout: "2024-01-15 11:00:00"},
			wantErr: ErrNoSession,
		},
		{
			name: "account deleted",
			token: func() string {
				tok, _ := Sign([]byte("test-secret"), models.Account{ID: "ghost"}, "email", loginAt)
				return tok
			},
			now:     loginAt,
			account: testAccount,
			wantErr: ErrNoSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend([]byte("test-secret"))
			if tok := tt.token(); tok != "" {
				_ = backend.SaveToken(tok)
			}
			now := tt.now
			p := NewProvider(backend, newFakeDirectory(tt.account), WithClock(func() time.Time { return now }))

			acct, err := p.Restore()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Restore() error = %v, want %v", err, tt.wantErr)
			}
			if acct != nil || p.Current() != nil {
				t.Error("rejected session must not become current")
			}
			if _, err := backend.LoadToken(); !errors.Is(err, ErrNoSession) {
				t.Error("rejected token should be cleared")
			}
		})
	}
}

func TestKeyringBackend(t *testing.T) {
	gokeyring.MockInit()
	var b KeyringBackend

	if _, err := b.LoadToken(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("LoadToken() on empty keyring = %v, want ErrNoSession", err)
	}
	if err := b.ClearToken(); err != nil {
		t.Errorf("ClearToken() on empty keyring = %v, want nil", err)
	}

	p := NewProvider(b, newFakeDirectory(testAccount))
	if err := p.Start(testAccount, "email"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	restored, err := NewProvider(b, newFakeDirectory(testAccount)).Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.ID != "u1" {
		t.Errorf("restored %q, want u1", restored.ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	p, _, _, _ := newTestProvider(t)
	_ = p.Start(testAccount, "email")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := p.Subscribe(func(*models.Account) {})
			_ = p.Current()
			_ = p.Valid()
			unsub()
		}()
	}
	wg.Wait()
}
