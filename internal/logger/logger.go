// Package logger wires zerolog for the whole service. Components receive a
// child logger via With so log lines carry their component name.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger. In dev the console writer is used for
// readable output; everywhere else lines are plain JSON on stdout.
func New(env string) zerolog.Logger {
	if env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// With returns a child logger tagged with the component name.
func With(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
