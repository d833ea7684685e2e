// Package logging constructs the process-wide structured logger.
// Components that can run silently take a zerolog.Logger value and
// default to the no-op zero value.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger for interactive runs. Diagnostics go to
// stderr so they never interleave with prompts.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a logger writing to a custom writer, mainly for
// tests.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
