package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/murojaah/internal/cli"
	"github.com/julianstephens/murojaah/internal/cli/auth"
	"github.com/julianstephens/murojaah/internal/cli/backups"
	"github.com/julianstephens/murojaah/internal/cli/records"
	"github.com/julianstephens/murojaah/internal/cli/settings"
	"github.com/julianstephens/murojaah/internal/cli/system"
	"github.com/julianstephens/murojaah/internal/constants"
	apperrors "github.com/julianstephens/murojaah/internal/errors"
	"github.com/julianstephens/murojaah/internal/keyring"
	"github.com/julianstephens/murojaah/internal/logger"
	"github.com/julianstephens/murojaah/internal/storage"
	"github.com/julianstephens/murojaah/internal/storage/postgres"
	"github.com/julianstephens/murojaah/internal/storage/sqlite"
)

// connEnv supplies a full PostgreSQL connection string, password included.
const connEnv = "MUROJAAH_DB_CONNECTION"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, MUROJAAH_DB_CONNECTION or .pgpass instead." type:"string" default:"${config}" env:"MUROJAAH_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize murojaah storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the HTTP API for the mobile client."`

	Register auth.RegisterCmd `cmd:"" help:"Create an account and sign in."`
	Login    auth.LoginCmd    `cmd:"" help:"Sign in."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Sign out."`
	Whoami   auth.WhoamiCmd   `cmd:"" help:"Show the signed-in account."`

	Today records.TodayCmd `cmd:"" help:"Show today's murojaah and streak."`
	Mark  records.MarkCmd  `cmd:"" help:"Mark today's murojaah as done."`
	Note  records.NoteCmd  `cmd:"" help:"Set today's note."`
	Stats records.StatsCmd `cmd:"" help:"Show streak and weekly completion."`
	Month records.MonthCmd `cmd:"" help:"Show a month calendar."`
	Day   records.DayCmd   `cmd:"" help:"Show a single day."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Remind system.RemindCmd `cmd:"" hidden:"" help:"Send a prayer reminder if one is due (run from cron)."`
}

func main() {
	loadDotEnv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily murojaah (Qur'an review) tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{Store: store}
	defer func() { _ = store.Close() }()

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatalf("failed to open %s: %v", store.GetConfigPath(), err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

// loadDotEnv reads .env from the default config directory and then the
// working directory. Variables already set win.
func loadDotEnv() {
	for _, path := range []string{
		filepath.Join(filepath.Dir(expandHome(constants.DefaultConfigPath)), ".env"),
		".env",
	} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", path, err)
		}
	}
}

// needsStore reports whether a command runs against a loaded database.
// init creates it, doctor reports on it, restore replaces it and keyring
// never touches it.
func needsStore(command string) bool {
	if strings.HasPrefix(command, "backup restore") {
		return false
	}
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "init", "doctor", "keyring":
		return false
	}
	return true
}

// openStore picks the backend for config. A PostgreSQL string given on the
// command line must be password-free; without one, the keyring and then
// MUROJAAH_DB_CONNECTION may supply a full connection string.
func openStore(config string) (storage.Provider, string, error) {
	defaultDir := filepath.Dir(expandHome(constants.DefaultConfigPath))

	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", errors.New("PostgreSQL connection strings with embedded passwords are not allowed on the command line; " +
					"store it with 'murojaah keyring set', export " + connEnv + " or use .pgpass")
			}
			return nil, "", err
		}
		return postgres.New(config), defaultDir, nil
	}

	if config == constants.DefaultConfigPath {
		if connStr := secureConnString(); connStr != "" {
			return postgres.New(connStr), defaultDir, nil
		}
	}

	path := expandHome(config)
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func secureConnString() string {
	connStr, err := keyring.GetConnectionString()
	if err == nil && connStr != "" {
		return connStr
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
		fmt.Fprintf(os.Stderr, "Warning: failed to read the OS keyring: %v\n", err)
	}
	return os.Getenv(connEnv)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
