package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Verbose lowers the threshold to debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// Measure returns a stop function that logs the elapsed time when called.
func Measure(log zerolog.Logger, label string) func() {
	start := time.Now()
	return func() {
		log.Debug().Dur("took", time.Since(start).Round(time.Millisecond)).Msg(label)
	}
}
