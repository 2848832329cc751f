package casso

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-wide sink for solver diagnostics (pivot traces,
// artificial-variable bookkeeping). It defaults to a no-op logger so the
// library is silent unless a caller opts in, matching the convention in
// Consensys-gnark's logger package.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger().
	Level(zerolog.Disabled)

// Logger returns the current package-wide logger.
func Logger() zerolog.Logger {
	return logger
}

// SetLogger overrides the package-wide logger. Pass zerolog.Nop() to
// silence diagnostics entirely, or a logger at zerolog.DebugLevel to trace
// pivots. Each Solver copies the package logger when solver.New runs, so
// the change applies to Solvers constructed afterwards.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// DisableLogging silences all package diagnostics. Equivalent to
// SetLogger(zerolog.Nop()).
func DisableLogging() {
	logger = zerolog.Nop()
}
