// Package backup keeps rotating snapshots of the SQLite ledger next to the
// database file.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/murojaah/internal/constants"
	"github.com/julianstephens/murojaah/internal/logger"
)

const (
	// DefaultKeep is how many snapshots survive pruning.
	DefaultKeep = 14
	DirName     = "backups"

	nameLayout = "20060102-150405"
)

var snapshotName = regexp.MustCompile(`^` + constants.AppName + `-(\d{8}-\d{6})(?:-(\d+))?\.db$`)

var ErrNotFound = errors.New("backup not found")

type Snapshot struct {
	Path  string
	Taken time.Time
	Size  int64
	seq   int
}

type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithKeep(n int) Option {
	return func(m *Manager) { m.keep = n }
}

func NewManager(dbPath string, opts ...Option) *Manager {
	m := &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		keep:   DefaultKeep,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Dir() string { return m.dir }

// Create snapshots the database and prunes the oldest snapshots beyond
// the retention limit.
func (m *Manager) Create() (Snapshot, error) {
	snap, err := m.create()
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to prune old backups", "dir", m.dir, "error", err)
	}
	return snap, nil
}

func (m *Manager) create() (Snapshot, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Snapshot{}, fmt.Errorf("database does not exist: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	taken := m.now()
	stamp := taken.Format(nameLayout)
	path := filepath.Join(m.dir, fmt.Sprintf("%s-%s.db", constants.AppName, stamp))
	for seq := 1; fileExists(path); seq++ {
		if seq > 100 {
			return Snapshot{}, fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s-%s-%d.db", constants.AppName, stamp, seq))
	}

	if err := vacuumInto(m.dbPath, path); err != nil {
		return Snapshot{}, fmt.Errorf("failed to back up database: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Info("Backup created", "path", path)
	return Snapshot{Path: path, Taken: taken, Size: info.Size()}, nil
}

// vacuumInto writes a consistent copy of src to dst, falling back to a
// plain file copy when VACUUM INTO is unavailable.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verifyDB(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(src, dst)
	}
	return nil
}

// List returns the snapshots newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := snapshotName.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		taken, err := time.ParseInLocation(nameLayout, match[1], time.Local)
		if err != nil {
			continue
		}
		seq, _ := strconv.Atoi(match[2])

		info, err := entry.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Path:  filepath.Join(m.dir, entry.Name()),
			Taken: taken,
			Size:  info.Size(),
			seq:   seq,
		})
	}

	sort.Slice(snaps, func(i, j int) bool {
		if snaps[i].Taken.Equal(snaps[j].Taken) {
			return snaps[i].seq > snaps[j].seq
		}
		return snaps[i].Taken.After(snaps[j].Taken)
	})
	return snaps, nil
}

func (m *Manager) prune() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", snaps[i].Path, err)
		}
	}
	return nil
}

// Resolve finds a backup given as an absolute path, a path relative to the
// working directory or a file name inside the backup directory.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if !fileExists(name) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}
	if fileExists(name) {
		return filepath.Abs(name)
	}
	if candidate := filepath.Join(m.dir, name); fileExists(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: tried current directory and %s", ErrNotFound, m.dir)
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first. Callers must close their connections.
func (m *Manager) Restore(path string) (Snapshot, error) {
	if err := verifyFile(path); err != nil {
		return Snapshot{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous Snapshot
	if fileExists(m.dbPath) {
		snap, err := m.create()
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to back up current database before restore: %w", err)
		}
		previous = snap
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return previous, fmt.Errorf("failed to restore database: %w", err)
	}

	logger.Info("Database restored", "from", path)
	return previous, nil
}

func verifyFile(path string) error {
	if !fileExists(path) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	return verifyDB(db)
}

func verifyDB(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
