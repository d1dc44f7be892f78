package auth

import (
	"fmt"

	"github.com/julianstephens/murojaah/internal/accounts"
	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/ledger"
)

type LoginCmd struct {
	Email    string `help:"Account email."`
	Password string `help:"Account password (prompted when omitted)." env:"MUROJAAH_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	creds := Credentials{Email: c.Email, Password: c.Password}
	if !creds.complete(false) {
		if err := prompt(&creds, false); err != nil {
			return err
		}
	}

	acct, err := ctx.Directory().SignIn(creds.Email, creds.Password)
	if err != nil {
		return authError(accounts.OpSignIn, err, ctx.Language())
	}

	if err := ctx.SessionProvider().Start(acct, constants.AuthProviderEmail); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	name := acct.DisplayName
	if name == "" {
		name = acct.Email
	}
	fmt.Printf("✓ Assalamu'alaikum, %s\n", name)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	sessions := ctx.SessionProvider()
	if _, err := sessions.Restore(); err != nil {
		fmt.Println("ℹ Tidak ada sesi aktif")
		return nil
	}
	if err := sessions.End(); err != nil {
		return authError(accounts.OpSignOut, err, ctx.Language())
	}
	fmt.Println("✓ Berhasil keluar")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	sessions := ctx.SessionProvider()
	acct, err := sessions.Restore()
	if err != nil {
		return cli.ErrNotLoggedIn
	}

	fmt.Printf("Nama:        %s\n", acct.DisplayName)
	fmt.Printf("Email:       %s\n", acct.Email)
	fmt.Printf("Terdaftar:   %s\n", acct.SignupTimestamp)
	fmt.Printf("Masuk sejak: %s\n", ledger.Timestamp(sessions.LoginAt()))
	return nil
}
