// Package logging configures the process-wide zerolog logger. Engines log
// progress and swallowed non-fatal errors here; user-facing output goes
// through the printer instead.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// EnvLogLevel overrides the default log level (trace, debug, info,
	// warn, error, off).
	EnvLogLevel = "BURROW_LOG_LEVEL"

	// EnvLogJSON switches from console output to raw JSON lines.
	EnvLogJSON = "BURROW_LOG_JSON"
)

// New builds the root logger for the named component, honoring the
// environment overrides.
func New(component string) zerolog.Logger {
	var logger zerolog.Logger
	if os.Getenv(EnvLogJSON) != "" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	return logger.Level(levelFromEnv()).With().Timestamp().Str("component", component).Logger()
}

// Nop returns a disabled logger for tests and for callers that want
// silence.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
