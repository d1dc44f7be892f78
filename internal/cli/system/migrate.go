package system

import (
	"fmt"

	"github.com/julianstephens/murojaah/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if !c.Status {
		if current, latest, err := ctx.Store.MigrationStatus(); err == nil && current < latest {
			ctx.AutoBackup()
		}
		count, err := ctx.Store.Migrate(func(msg string) {
			fmt.Println(msg)
		})
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if count == 0 {
			fmt.Println("No migrations to apply. Database is up to date.")
		} else {
			fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
		}
	}

	current, latest, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	fmt.Printf("Schema version: %d (latest %d)\n", current, latest)
	return nil
}
