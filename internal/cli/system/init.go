package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if postgres.IsConnString(dbPath) {
			return fmt.Errorf("--force only resets SQLite databases")
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first so the file is not held open while it is removed.
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized murojaah storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
