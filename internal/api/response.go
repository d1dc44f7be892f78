package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/logger"
)

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": errorBody{Code: code, Message: message}})
}

// authStatus maps an auth code to its HTTP status.
func authStatus(code accounts.Code) int {
	switch code {
	case accounts.CodeUserNotFound, accounts.CodeWrongPassword:
		return fiber.StatusUnauthorized
	case accounts.CodeTooManyRequests:
		return fiber.StatusTooManyRequests
	case accounts.CodeEmailAlreadyInUse:
		return fiber.StatusConflict
	case accounts.CodeInvalidEmail, accounts.CodeWeakPassword:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// authFailure renders a directory error with its localized message.
func (s *Server) authFailure(c *fiber.Ctx, op accounts.Op, err error) error {
	code := accounts.CodeOf(err)
	if code == "" {
		logger.Error("Auth operation failed", "op", op, "error", err)
	}
	return fail(c, authStatus(code), string(code), accounts.Message(op, err, s.language(c)))
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	if status >= fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
	}
	return fail(c, status, "", err.Error())
}
