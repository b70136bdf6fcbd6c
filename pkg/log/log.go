// Package log configures the process-wide slog logger for the workflow
// service.
package log

import (
	"log/slog"
	"os"
)

// Setup installs the default text logger on stderr. The level string is
// parsed case-insensitively ("debug", "Info", "WARN", ...); anything
// unparseable falls back to info.
func Setup(logLevel string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithModule returns the default logger scoped to one subsystem. Every
// component (engine, dispatcher, scheduler, web) logs through its own
// module field so runs are filterable.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
