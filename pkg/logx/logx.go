// Package logx is the process-wide logger. It wraps zerolog behind a small
// printf-style API so call sites do not depend on the backend.
package logx

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel accepts debug, info, warn and error. Anything else is info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Fields map[string]any

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, jsonOutput bool) zerolog.Logger {
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// SetLevel changes the minimum level of the global logger.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level.zerolog())
}

// SetOutput redirects logs. jsonOutput disables the console formatter.
func SetOutput(w io.Writer, jsonOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	level := logger.GetLevel()
	logger = newLogger(w, jsonOutput).Level(level)
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(msg string)                     { l := current(); l.Debug().Msg(msg) }
func Debugf(format string, args ...any)    { l := current(); l.Debug().Msgf(format, args...) }
func Info(msg string)                      { l := current(); l.Info().Msg(msg) }
func Infof(format string, args ...any)     { l := current(); l.Info().Msgf(format, args...) }
func Warn(msg string)                      { l := current(); l.Warn().Msg(msg) }
func Warnf(format string, args ...any)     { l := current(); l.Warn().Msgf(format, args...) }
func Error(msg string)                     { l := current(); l.Error().Msg(msg) }
func Errorf(format string, args ...any)    { l := current(); l.Error().Msgf(format, args...) }
func Fatal(msg string)                     { l := current(); l.Fatal().Msg(msg) }
func Fatalf(format string, args ...any)    { l := current(); l.Fatal().Msgf(format, args...) }

// Entry is a logger with structured fields attached.
type Entry struct {
	logger zerolog.Logger
}

// WithFields returns an Entry that adds fields to every message.
func WithFields(fields Fields) *Entry {
	return &Entry{logger: current().With().Fields(map[string]any(fields)).Logger()}
}

func (e *Entry) Debugf(format string, args ...any) { e.logger.Debug().Msgf(format, args...) }
func (e *Entry) Infof(format string, args ...any)  { e.logger.Info().Msgf(format, args...) }
func (e *Entry) Warnf(format string, args ...any)  { e.logger.Warn().Msgf(format, args...) }
func (e *Entry) Errorf(format string, args ...any) { e.logger.Error().Msgf(format, args...) }
