package cli

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// NewLogger returns a logger writing to w. Terminals get the human-readable
// console format; anything else gets JSON lines.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := w
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// resolveLevel picks the effective log level: the flag beats the config file,
// and silent mode caps everything below error.
func resolveLevel(flagLevel string, configLevel zerolog.Level, silent bool) (zerolog.Level, error) {
	level := configLevel
	if flagLevel != "" {
		parsed, err := zerolog.ParseLevel(flagLevel)
		if err != nil {
			return zerolog.NoLevel, err
		}
		level = parsed
	}
	if silent && level < zerolog.ErrorLevel {
		level = zerolog.ErrorLevel
	}
	return level, nil
}
