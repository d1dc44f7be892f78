package auth

import (
	"errors"
	"fmt"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
)

type RegisterCmd struct {
	Email    string `help:"Account email."`
	Name     string `help:"Display name."`
	Password string `help:"Account password (prompted when omitted)." env:"MUROJAAH_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	creds := Credentials{Email: c.Email, Password: c.Password, DisplayName: c.Name}
	if !creds.complete(true) {
		if err := prompt(&creds, true); err != nil {
			return err
		}
	}

	acct, err := ctx.Directory().Register(creds.Email, creds.Password, creds.DisplayName)
	if err != nil {
		return authError(accounts.OpSignUp, err, ctx.Language())
	}

	if err := ctx.SessionProvider().Start(acct, constants.AuthProviderEmail); err != nil {
		return fmt.Errorf("account created but sign-in failed: %w", err)
	}

	fmt.Printf("✓ Akun dibuat untuk %s\n", acct.Email)
	fmt.Printf("  Mulai dihitung sejak %s\n", acct.SignupTimestamp)
	return nil
}

// authError turns a directory error into the localized message shown to
// the user.
func authError(op accounts.Op, err error, lang constants.Language) error {
	if accounts.CodeOf(err) == "" {
		logger.Error("Auth operation failed", "op", op, "error", err)
	}
	return errors.New(accounts.Message(op, err, lang))
}
