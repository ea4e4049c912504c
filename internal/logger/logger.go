// Package logger builds the process-wide structured JSON logger.
//
// Every line is a single JSON object carrying "ts" (RFC3339Nano in the configured
// location), "level" and "msg", which is the shape the request and migration logs use.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger writing JSON lines to w. A nil writer means stdout,
// a nil location means UTC.
func New(w io.Writer, loc *time.Location) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}

	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }

	return zerolog.New(w).With().Timestamp().Logger()
}

// Nop returns a disabled logger, handy for tests and optional dependencies.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
