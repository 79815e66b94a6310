package hal

import (
	"log"
	"os"
)

// Logger is the minimal logging contract device.Options accepts;
// follows the common embedded-driver habit of gating operational messages behind a
// single Printf-shaped sink rather than a structured logging dependency.
type Logger interface {
	Printf(format string, args ...any)
}

// NopLogger discards every message; the default when no Logger is given.
type NopLogger struct{}

func (NopLogger) Printf(string, ...any) {}

type stdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps the standard library logger with the epd prefix,
// writing to stderr by default the way ad hoc diagnostic
// Fprintf(os.Stderr, ...) calls do.
func NewStdLogger() Logger {
	return &stdLogger{l: log.New(os.Stderr, "epd: ", log.LstdFlags)}
}

func (s *stdLogger) Printf(format string, args ...any) {
	s.l.Printf(format, args...)
}
