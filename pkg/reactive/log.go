package reactive

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// logger is the structured logger used for warnings and debug output.
// Defaults to slog.Default; replaceable via SetLogger.
var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for warnings and debug output.
// Passing nil restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func log() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// warn logs a development-mode warning. Warnings are soft: execution always
// continues with a no-op fallback, never a panic.
func warn(format string, args ...any) {
	if !DevMode {
		return
	}
	log().Warn(fmt.Sprintf(format, args...), slog.String("component", "reactive"))
}

func debugf(format string, args ...any) {
	log().Debug(fmt.Sprintf(format, args...), slog.String("component", "reactive"))
}
