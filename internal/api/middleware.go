package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/session"
	"github.com/julianstephens/murojaah/internal/storage"
)

const (
	localAccount = "account"
	localClaims  = "claims"
)

var (
	errNoToken      = errors.New("missing bearer token")
	errBadToken     = errors.New("invalid token")
	errTokenExpired = errors.New("session expired")
	errRevoked      = errors.New("session ended")
)

func bearerToken(c *fiber.Ctx) (string, error) {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errNoToken
	}
	return strings.Trim(fields[1], "\"'"), nil
}

// authenticate verifies the bearer token and loads its account.
func (s *Server) authenticate(c *fiber.Ctx) error {
	token, err := bearerToken(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "", err.Error())
	}

	claims, err := session.Parse(s.secret, token)
	if err != nil {
		logger.Debug("Rejected token", "error", err)
		return fail(c, fiber.StatusUnauthorized, "", errBadToken.Error())
	}
	if claims.Expired(s.now(), s.sessionTTL()) {
		return fail(c, fiber.StatusUnauthorized, "", errTokenExpired.Error())
	}

	acct, err := s.dir.Get(claims.UserID())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load account", "user", claims.UserID(), "error", err)
		}
		return fail(c, fiber.StatusUnauthorized, "", errBadToken.Error())
	}
	if claims.RevokedBy(acct) {
		return fail(c, fiber.StatusUnauthorized, "", errRevoked.Error())
	}

	c.Locals(localAccount, acct)
	c.Locals(localClaims, claims)
	return c.Next()
}

func account(c *fiber.Ctx) models.Account {
	acct, _ := c.Locals(localAccount).(models.Account)
	return acct
}
