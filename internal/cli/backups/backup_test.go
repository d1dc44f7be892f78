package backups

import (
	"errors"
	"testing"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/cli/clitest"
	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage/postgres"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, _ := clitest.NewContext(t, clitest.At(2024, 1, 10, 8, 0))

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list on an empty directory failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	snaps, err := mgr.List()
	if err != nil || len(snaps) != 1 {
		t.Fatalf("expected one backup, got %d (%v)", len(snaps), err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, _ := clitest.NewContext(t, clitest.At(2024, 1, 10, 8, 0))
	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	rec := models.DayRecord{Day: "2024-01-10", Completed: true, Timestamp: "2024-01-10 08:00:00"}
	if err := ctx.Store.PutDayRecord("user-1", rec); err != nil {
		t.Fatal(err)
	}

	prompted := false
	orig := confirm
	t.Cleanup(func() { confirm = orig })
	confirm = func(string) (bool, error) {
		prompted = true
		return false, nil
	}

	if err := (&BackupRestoreCmd{BackupFile: snap.Path}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore failed: %v", err)
	}
	if !prompted {
		t.Error("expected a confirmation prompt")
	}
	if _, err := ctx.Store.GetDayRecord("user-1", "2024-01-10"); err != nil {
		t.Fatalf("cancelled restore changed the database: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: snap.Path, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := ctx.Store.Load(); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.GetDayRecord("user-1", "2024-01-10"); err == nil {
		t.Error("restored database still holds the later record")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://user@localhost/murojaah")}

	for _, cmd := range []interface{ Run(*cli.Context) error }{
		&BackupCreateCmd{},
		&BackupListCmd{},
		&BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	} {
		if err := cmd.Run(ctx); !errors.Is(err, cli.ErrBackupUnsupported) {
			t.Errorf("%T: expected ErrBackupUnsupported, got %v", cmd, err)
		}
	}
}
