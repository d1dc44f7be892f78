package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/keyring"
	"github.com/julianstephens/murojaah/internal/ledger"
	"github.com/julianstephens/murojaah/internal/notifier"
	"github.com/julianstephens/murojaah/internal/prayer"
	"github.com/julianstephens/murojaah/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warn reports failure without failing the run.
	warn bool
	run  func(*cli.Context) error
}

var checks = []check{
	// Must stay first; later checks depend on it.
	{name: "Database reachable", run: checkDBReachable},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warn: true, run: checkKeyring},
	{name: "Session", needsDB: true, warn: true, run: checkSession},
	{name: "Tray notifier", warn: true, run: checkTray},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}

		if i == 0 && err != nil {
			dbReachable = false
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'murojaah migrate')", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if _, err := prayer.FromSettings(settings); err != nil {
		return fmt.Errorf("prayer schedule: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if errors.Is(err, cli.ErrBackupUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}
	snaps, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'murojaah backup create'")
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	acct, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	signup, ok := ledger.SignupDayKey(acct.SignupTimestamp)
	if !ok {
		return fmt.Errorf("account %s has an unreadable signup timestamp %q", acct.Email, acct.SignupTimestamp)
	}
	fmt.Printf("   Signed in as %s since %s\n", acct.Email, signup)
	return nil
}

func checkTray(*cli.Context) error {
	if _, err := notifier.Discover(); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			return fmt.Errorf("tray companion is not running, reminders will not be shown")
		}
		return err
	}
	return nil
}
