package main

import (
	"io"

	"github.com/rs/zerolog"
)

// The engine logs through a package-global zerolog logger. It defaults to
// a nop since the TUI owns the terminal; main redirects it to a file when
// asked to.
var logger = zerolog.Nop()

// SetLogOutput changes the output of the global logger.
func SetLogOutput(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// SetLogger overrides the global logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// DisableLogging puts the global logger back to a nop.
func DisableLogging() {
	logger = zerolog.Nop()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return logger
}
