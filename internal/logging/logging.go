package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a console writer;
// anything else logs JSON to stderr.
func New(environment, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if environment == "development" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
