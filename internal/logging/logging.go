/*
Package logging wraps a single structured logger instance that is
threaded through internal/engine and cmd/lutefisk. A `-v` verbose flag
becomes a log level on one shared logger instance rather than a
package-level global or scattered printf calls.
*/
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger every component logs through. The
// zero value is not usable directly - use New or Discard.
type Logger struct {
	*logrus.Logger
}

// Fields is the structured key/value set passed to Logger.WithFields,
// re-exported so callers never need to import logrus directly.
type Fields = logrus.Fields

// New builds a Logger writing structured (text) entries to out at the
// given level. cmd/lutefisk builds one of these from its `-v` flag and
// passes it to internal/engine.Engine.Logger.
func New(level logrus.Level, out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{Logger: l}
}

// Default builds a Logger at info level writing to stderr: the
// non-verbose console default.
func Default() *Logger {
	return New(logrus.InfoLevel, os.Stderr)
}

// Discard returns a Logger that drops every entry, used by components
// whose caller never configured one: a run doesn't have to supply a
// logger, but every component logs through this one shared instance
// when one is present.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}
