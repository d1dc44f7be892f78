package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/murojaah/internal/models"
	"github.com/julianstephens/murojaah/internal/storage/sqlite"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

// setupLedger creates an initialized database holding one completed day.
func setupLedger(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "murojaah.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	rec := models.DayRecord{Day: "2024-01-10", Completed: true, Note: "Al-Kahf", Timestamp: "2024-01-10 20:00:00"}
	if err := store.PutDayRecord("user-1", rec); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func readDay(t *testing.T, dbPath, day string) (models.DayRecord, error) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load %s: %v", dbPath, err)
	}
	defer store.Close()
	return store.GetDayRecord("user-1", day)
}

func newManager(dbPath string, opts ...Option) *Manager {
	c := &clock{t: time.Date(2024, 1, 10, 21, 0, 0, 0, time.Local)}
	return NewManager(dbPath, append([]Option{WithClock(c.now)}, opts...)...)
}

func TestCreate(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath)

	snap, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(snap.Path) != mgr.Dir() || snap.Size == 0 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	rec, err := readDay(t, snap.Path, "2024-01-10")
	if err != nil || !rec.Completed || rec.Note != "Al-Kahf" {
		t.Errorf("snapshot does not hold the ledger: %+v, %v", rec, err)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := newManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected an error without a database")
	}
}

func TestSameSecondSnapshotsGetSequence(t *testing.T) {
	dbPath := setupLedger(t)
	fixed := time.Date(2024, 1, 10, 21, 0, 0, 0, time.Local)
	mgr := NewManager(dbPath, WithClock(func() time.Time { return fixed }))

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Fatalf("snapshots collided at %s", first.Path)
	}

	snaps, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 || snaps[0].Path != second.Path {
		t.Errorf("expected the later snapshot first, got %+v", snaps)
	}
}

func TestPrune(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath, WithKeep(3))

	var last Snapshot
	for i := 0; i < 5; i++ {
		snap, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		last = snap
	}

	snaps, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots after pruning, got %d", len(snaps))
	}
	if snaps[0].Path != last.Path {
		t.Errorf("newest snapshot must be kept first, got %s", snaps[0].Path)
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Taken.After(snaps[i-1].Taken) {
			t.Errorf("snapshots not sorted newest first at %d", i)
		}
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath)
	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "murojaah-latest.db", "backup-20240110-210000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	snaps, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Errorf("expected only the real snapshot, got %d", len(snaps))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath)

	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Change the live ledger after the snapshot.
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.PutDayRecord("user-1", models.DayRecord{Day: "2024-01-11", Completed: true, Timestamp: "2024-01-11 06:00:00"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	previous, err := mgr.Restore(snap.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if _, err := readDay(t, dbPath, "2024-01-11"); err == nil {
		t.Error("restored database still holds the later record")
	}
	if rec, err := readDay(t, previous.Path, "2024-01-11"); err != nil || !rec.Completed {
		t.Errorf("pre-restore snapshot lost the later record: %v", err)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(bogus); err == nil {
		t.Error("expected an invalid backup to be rejected")
	}
	if _, err := readDay(t, dbPath, "2024-01-10"); err != nil {
		t.Errorf("live database damaged by a rejected restore: %v", err)
	}
}

func TestResolve(t *testing.T) {
	dbPath := setupLedger(t)
	mgr := newManager(dbPath)
	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	if got, err := mgr.Resolve(filepath.Base(snap.Path)); err != nil || got != snap.Path {
		t.Errorf("Resolve by name = %q, %v", got, err)
	}
	if got, err := mgr.Resolve(snap.Path); err != nil || got != snap.Path {
		t.Errorf("Resolve by absolute path = %q, %v", got, err)
	}
	if _, err := mgr.Resolve("murojaah-19990101-000000.db"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
