package engine

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "swap-engine").Logger()
}

// SetLogger replaces the package logger, usually with the process-wide one.
func SetLogger(l zerolog.Logger) {
	log = l.With().Str("component", "swap-engine").Logger()
}
