package auth

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/murojaah/internal/constants"
)

// Credentials holds what the register and login forms collect.
type Credentials struct {
	Email       string
	Password    string
	DisplayName string
}

func (c Credentials) complete(withName bool) bool {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return false
	}
	return !withName || strings.TrimSpace(c.DisplayName) != ""
}

// PromptFunc fills in missing credential fields interactively.
type PromptFunc func(c *Credentials, withName bool) error

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

// NewPromptFunc asks for missing fields with a huh form.
func NewPromptFunc() PromptFunc {
	return func(c *Credentials, withName bool) error {
		var fields []huh.Field
		if withName {
			fields = append(fields, huh.NewInput().
				Title("Nama").
				Value(&c.DisplayName).
				Validate(required))
		}
		fields = append(fields,
			huh.NewInput().
				Title("Email").
				Value(&c.Email).
				Validate(required),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(func(s string) error {
					if withName && len(s) < constants.MinPasswordLength {
						return errors.New("minimal 6 karakter")
					}
					return required(s)
				}),
		)
		return huh.NewForm(huh.NewGroup(fields...)).Run()
	}
}

// prompt is swapped out in tests.
var prompt = NewPromptFunc()
