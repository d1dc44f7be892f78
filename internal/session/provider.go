// Package session holds the signed-in account for one device and tells
// interested views when it changes.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage"
)

// Directory resolves accounts and records server-side logouts.
type Directory interface {
	Get(id string) (models.Account, error)
	RecordLogout(id string) error
}

type Provider struct {
	backend Backend
	dir     Directory
	ttl     time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	current  *models.Account
	loginAt  time.Time
	provider string
	subs     map[int]func(*models.Account)
	nextSub  int
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func NewProvider(backend Backend, dir Directory, opts ...Option) *Provider {
	p := &Provider{
		backend: backend,
		dir:     dir,
		ttl:     constants.DefaultSessionTTL,
		now:     time.Now,
		subs:    map[int]func(*models.Account){},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns a copy of the signed-in account, or nil.
func (p *Provider) Current() *models.Account {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil
	}
	acct := *p.current
	return &acct
}

// LoginAt returns when the current session started.
func (p *Provider) LoginAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loginAt
}

// Subscribe registers fn to be called with the new account (nil on logout)
// after every change. The returned func removes the subscription.
func (p *Provider) Subscribe(fn func(*models.Account)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Provider) set(acct *models.Account, loginAt time.Time, provider string) {
	p.mu.Lock()
	p.current = acct
	p.loginAt = loginAt
	p.provider = provider
	subs := make([]func(*models.Account), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		if acct == nil {
			fn(nil)
			continue
		}
		cp := *acct
		fn(&cp)
	}
}

// Start begins a session for acct and persists its token.
func (p *Provider) Start(acct models.Account, provider string) error {
	secret, err := p.backend.Secret()
	if err != nil {
		return fmt.Errorf("loading session secret: %w", err)
	}
	loginAt := p.now()
	token, err := Sign(secret, acct, provider, loginAt)
	if err != nil {
		return err
	}
	if err := p.backend.SaveToken(token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}

	p.set(&acct, loginAt, provider)
	logger.Info("Session started", "user", acct.ID, "provider", provider)
	return nil
}

// Restore resumes the persisted session, if any. A token that is expired,
// unreadable or points at a logged-out or missing account is discarded.
func (p *Provider) Restore() (*models.Account, error) {
	token, err := p.backend.LoadToken()
	if err != nil {
		return nil, err
	}
	secret, err := p.backend.Secret()
	if err != nil {
		return nil, fmt.Errorf("loading session secret: %w", err)
	}

	claims, err := Parse(secret, token)
	if err != nil {
		p.discard("invalid token", err)
		return nil, err
	}
	if claims.Expired(p.now(), p.ttl) {
		p.discard("expired", nil)
		return nil, ErrExpired
	}

	acct, err := p.dir.Get(claims.UserID())
	if errors.Is(err, storage.ErrNotFound) {
		p.discard("account missing", err)
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session account: %w", err)
	}
	if claims.RevokedBy(acct) {
		p.discard("logged out elsewhere", nil)
		return nil, ErrNoSession
	}

	p.set(&acct, claims.LoginAt(), claims.Provider)
	return p.Current(), nil
}

func (p *Provider) discard(reason string, err error) {
	logger.Warn("Discarding stored session", "reason", reason, "error", err)
	if clearErr := p.backend.ClearToken(); clearErr != nil {
		logger.Error("Failed to clear session token", "error", clearErr)
	}
}

// Valid reports whether a user is signed in and the session is within its
// TTL. An expired session is ended before returning false.
func (p *Provider) Valid() bool {
	p.mu.RLock()
	current, loginAt := p.current, p.loginAt
	p.mu.RUnlock()

	if current == nil {
		return false
	}
	if p.now().Sub(loginAt) > p.ttl {
		logger.Info("Session expired, signing out", "user", current.ID)
		if err := p.End(); err != nil {
			logger.Warn("Forced logout incomplete", "error", err)
		}
		return false
	}
	return true
}

// End signs the current user out. The local session is always cleared; a
// failure to record the logout server-side is returned after the fact.
func (p *Provider) End() error {
	p.mu.RLock()
	current := p.current
	p.mu.RUnlock()

	var errs []error
	if err := p.backend.ClearToken(); err != nil {
		errs = append(errs, fmt.Errorf("clearing session token: %w", err))
	}
	if current != nil {
		if err := p.dir.RecordLogout(current.ID); err != nil {
			logger.Warn("Failed to record logout", "user", current.ID, "error", err)
			errs = append(errs, fmt.Errorf("recording logout: %w", err))
		}
	}

	p.set(nil, time.Time{}, "")
	return errors.Join(errs...)
}
