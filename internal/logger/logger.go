// Package logger wraps zerolog with the process-wide logger and a handful
// of named sub-loggers, trimmed to the concerns this service actually has.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Log is the process-wide logger. Initialize must be called once at startup
// before any component logs.
var Log zerolog.Logger

// Initialize configures the global zerolog logger and the package-level Log
// variable. level is parsed with zerolog.ParseLevel; pretty switches between
// a human-readable console writer (development) and JSON (production).
func Initialize(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	var writer = os.Stdout
	if pretty {
		consoleWriter := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
		Log = zerolog.New(consoleWriter).With().Timestamp().Logger()
	} else {
		Log = zerolog.New(writer).With().Timestamp().Logger()
	}

	log.Logger = Log
}

// GetLogger returns the process-wide logger.
func GetLogger() zerolog.Logger {
	return Log
}

// Security returns a logger scoped to the authentication pipeline (PoW,
// certificate issuance/validation, JWS verification failures).
func Security() zerolog.Logger {
	return Log.With().Str("component", "security").Logger()
}

// HTTP returns a logger scoped to request-level logging.
func HTTP() zerolog.Logger {
	return Log.With().Str("component", "http").Logger()
}

// Storage returns a logger scoped to the S3/MinIO and ZIP packaging layer.
func Storage() zerolog.Logger {
	return Log.With().Str("component", "storage").Logger()
}
