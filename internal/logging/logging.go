// Package logging builds the run logger. All human-facing diagnostics go
// through zerolog on stderr; stdout stays reserved for result rows.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level string // debug, info, warn, error; empty means info
	Quiet bool   // clamp to error regardless of Level
}

// New creates a structured console logger writing to w.
func New(w io.Writer, cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	if cfg.Quiet {
		level = zerolog.ErrorLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
