// Package logger is the process-wide structured logger for murojaah.
//
// Entries go to a rotating file at <config dir>/logs/murojaah.log and stay
// off the terminal, since every command and the dashboard own stdout. Only
// warnings and errors are kept unless --debug is set, which also copies
// everything to stderr. The API server is the one long-running surface:
// `murojaah serve` calls Mirror so its request log reaches the terminal at
// info level. Tests pass Config.Output to capture entries in memory.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/murojaah/internal/constants"
)

var (
	Logger *log.Logger

	// sink is the file (or test) writer, kept so Mirror can add to it.
	sink     io.Writer
	mirrored bool
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Output replaces the rotating log file.
	Output io.Writer
}

func Init(cfg Config) error {
	sink = cfg.Output
	if sink == nil {
		logDir := filepath.Join(cfg.ConfigDir, "logs")
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}

		sink = &lumberjack.Logger{
			Filename:   filepath.Join(logDir, constants.AppName+".log"),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	level := log.WarnLevel
	writer := sink
	mirrored = cfg.Debug
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, sink)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Mirror copies entries to w as well as the log file and lowers the level
// to info if it is higher. Calling it again, or after a debug Init, only
// adjusts the level.
func Mirror(w io.Writer) {
	if Logger == nil {
		return
	}
	if Logger.GetLevel() > log.InfoLevel {
		Logger.SetLevel(log.InfoLevel)
	}
	if mirrored {
		return
	}
	Logger.SetOutput(io.MultiWriter(w, sink))
	mirrored = true
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs and exits with status 1, even without an initialized logger.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
