// Package logging defines the free-text diagnostic sink the scheduler
// reports failures through. The default implementation writes structured
// lines via zerolog; hosts with their own sink implement Logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the diagnostic sink consumed from the host.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New returns a zerolog-backed Logger writing to w at the given level
// ("debug", "info", "warn", "error"; unknown levels fall back to info).
func New(w io.Writer, level string) Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

// Console returns a human-readable Logger writing to stderr; handy for
// examples and local debugging.
func Console(level string) Logger {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	zl := zerolog.New(cw).Level(parseLevel(level)).With().Timestamp().Logger()
	return &zeroLogger{zl: zl}
}

// Nop returns a Logger that never writes anything.
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *zeroLogger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *zeroLogger) Warnf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *zeroLogger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
