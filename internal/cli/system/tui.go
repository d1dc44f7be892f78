package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	sessions, acct, err := ctx.RestoreSession()
	if err != nil {
		return err
	}
	ctx.AutoBackup()

	model := tui.NewModel(ctx.TrackerFor(acct), ctx.Settings(), acct.DisplayName, sessions)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("dashboard exited with an error: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.SessionEnded() {
		return cli.ErrNotLoggedIn
	}
	return nil
}
