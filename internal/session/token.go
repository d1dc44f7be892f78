package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/models"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrExpired      = errors.New("session expired")
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims is the payload of a session token. IssuedAt is the login time the
// TTL is measured from.
type Claims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// UserID returns the account the token was issued to.
func (c *Claims) UserID() string { return c.Subject }

// LoginAt returns the instant the session started.
func (c *Claims) LoginAt() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// Expired reports whether more than ttl has passed since login.
func (c *Claims) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.LoginAt()) > ttl
}

// RevokedBy reports whether acct logged out after the token was issued.
// Until the next sign-in every token is revoked. After it, only tokens
// issued before the logout are. Both times have one-second resolution, so
// a login in the same second as the logout counts as the newer of the two.
func (c *Claims) RevokedBy(acct models.Account) bool {
	if acct.SessionInvalidated {
		return true
	}
	if acct.LastLogout == "" {
		return false
	}
	out, err := ledger.ParseTimestamp(acct.LastLogout)
	if err != nil {
		return false
	}
	return c.LoginAt().Before(out)
}

// Sign issues an HS256 token for acct at the given login time.
func Sign(secret []byte, acct models.Account, provider string, loginAt time.Time) (string, error) {
	claims := Claims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  acct.ID,
			IssuedAt: jwt.NewNumericDate(loginAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// Parse verifies the signature of token and returns its claims. Expiry is
// left to Claims.Expired so callers can use their own clock.
func Parse(secret []byte, token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing subject or issue time", ErrInvalidToken)
	}
	return claims, nil
}
