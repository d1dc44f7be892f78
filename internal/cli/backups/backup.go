package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/murojaah/internal/backup"
	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if err != nil {
		return err
	}
	snap, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(snap.Path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if err != nil {
		return err
	}
	snaps, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(snaps) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(snaps), backup.DefaultKeep)
	for _, s := range snaps {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			s.Taken.Format(constants.TimestampFormat), filepath.Base(s.Path), float64(s.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

// confirm asks before the live database is replaced. Tests swap it out.
var confirm = func(backupPath string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title("Replace the current database with this backup?").
		Description(fmt.Sprintf("Restore from %s\nStop every running murojaah process (dashboard, serve) first.", backupPath)).
		Affirmative("Restore").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	previous, err := mgr.Restore(path)
	if previous.Path != "" {
		fmt.Printf("Created backup of current database: %s\n", filepath.Base(previous.Path))
	}
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	fmt.Println("  Restart any murojaah processes that were stopped for the restore.")
	return nil
}
