// Package logging builds the developer-facing logger. User-facing messages go
// through notifications and command output instead.
package logging

import (
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// New returns a text logger writing to w. Debug level is selected by the
// debug flag or DEBUG=true in the environment; otherwise only warnings and
// errors are emitted.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: !debug,
	})
	logger.SetLevel(log.WarnLevel)
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		debug = true
	}
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything. Used where no logger was
// injected.
func Discard() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}

// Component returns an entry tagged with the component name.
func Component(logger *log.Logger, name string) *log.Entry {
	return logger.WithField("component", name)
}
