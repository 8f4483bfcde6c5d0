// Package logging builds the console logger shared by the binaries.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a human-readable logger on stderr at the named level
// ("debug", "info", "warn", ...). An unknown level is an error.
func New(level string) (zerolog.Logger, error) {
	return NewWriter(os.Stderr, level)
}

func NewWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: w != os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
