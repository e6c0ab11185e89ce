package runtime

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	XDGName = "cafes"
	LogFile = "cafes.log"
)

func File(filename string) (string, error) {
	return xdg.RuntimeFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// NewLogger opens the runtime log file. The terminal is owned by the UI, so
// nothing is ever logged to stdout or stderr while it runs.
func NewLogger(level string) (zerolog.Logger, io.Closer, error) {
	path, err := File(LogFile)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("unable to resolve log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("unable to open log file %s: %w", path, err)
	}

	return newLogger(f, level), f, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", XDGName).
		Logger()
}

// NewConsoleLogger writes human readable logs to w. It is meant for the
// non-interactive commands, which keep stdout for their output.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}, level)
}
