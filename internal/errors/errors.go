package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/murojaah/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Mask hides a data-access failure from the caller. A non-nil err is logged
// under op and the fallback is returned; otherwise value is returned as is.
func Mask[T any](op string, value T, err error, fallback T, keyvals ...interface{}) T {
	if err == nil {
		return value
	}
	logger.Warn("Data access failed", append([]interface{}{"op", op, "error", err}, keyvals...)...)
	return fallback
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
