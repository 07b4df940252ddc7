package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing to the given file. The TUI owns stdout, so
// file logging is the default; verbose additionally mirrors to stderr.
func New(logPath string, verbose bool) zerolog.Logger {
	var writers []io.Writer

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				writers = append(writers, f)
			}
		}
	}
	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(io.MultiWriter(writers...)).Level(level).With().Timestamp().Logger()
}
