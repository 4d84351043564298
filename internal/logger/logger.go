// Package logger wraps zerolog.Logger with the constructors used across
// the application. The wrapper embeds zerolog.Logger so the full zerolog
// API stays available on *Logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type Logger struct {
	zerolog.Logger
}

// New builds the application logger. A desktop process writes its log next
// to the executable rather than to stdout, which the interactive terminal
// surface occupies; stdout remains the fallback when the file cannot be
// opened.
func New(component string, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	execPath, err := os.Executable()
	if err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "clinic.log")
		if f, ferr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); ferr == nil {
			out = f
		}
	}

	l := zerolog.New(out).Level(lvl).With().
		Str("component", component).
		Timestamp().
		Logger()
	return &Logger{l}
}

// Nop returns a logger that discards everything. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{l.Logger.With().Str(key, value).Logger()}
}
