package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the shared application logger, configured by Init at startup.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the shared logger from the environment settings.
func Init(env, level string) {
	Log = New(env, level)
}

// New builds the application logger. JSON to stdout, level from config.
func New(env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()

	switch strings.ToLower(level) {
	case "debug":
		l = l.Level(zerolog.DebugLevel)
	case "warn":
		l = l.Level(zerolog.WarnLevel)
	case "error":
		l = l.Level(zerolog.ErrorLevel)
	default:
		l = l.Level(zerolog.InfoLevel)
	}
	if env == "development" {
		l = l.Level(zerolog.DebugLevel)
	}
	return l
}
