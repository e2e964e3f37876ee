// Package logging provides the dispatcher's structured logging wrapper.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with the level-gated, package-default
// shape the rest of this codebase expects.
type Logger struct {
	zl zerolog.Logger
}

// Config holds logging configuration.
type Config struct {
	Level  zerolog.Level
	Output io.Writer
}

// DefaultConfig returns a sensible default configuration: info level,
// human-readable console output on stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  zerolog.InfoLevel,
		Output: os.Stderr,
	}
}

// New creates a new Logger from the given configuration.
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	writer := zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	zl := zerolog.New(writer).Level(config.Level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// Default returns the package default logger, creating it on first use.
func Default() *Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(nil)
	}
	return defaultLogger
}

// SetDefault replaces the package default logger.
func SetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetVerbose switches the default logger to debug level, used by the
// CLI's -v/--verbose flag.
func SetVerbose(verbose bool) {
	l := Default()
	if verbose {
		l.zl = l.zl.Level(zerolog.DebugLevel)
	} else {
		l.zl = l.zl.Level(zerolog.InfoLevel)
	}
}

func (l *Logger) Debug(msg string, fields map[string]any) { l.event(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields map[string]any)  { l.event(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]any)  { l.event(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields map[string]any) { l.event(l.zl.Error(), msg, fields) }

func (l *Logger) event(e *zerolog.Event, msg string, fields map[string]any) {
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Msg(msg)
}

// Global convenience functions, delegating to the default logger.
func Debug(msg string, fields map[string]any) { Default().Debug(msg, fields) }
func Info(msg string, fields map[string]any)  { Default().Info(msg, fields) }
func Warn(msg string, fields map[string]any)  { Default().Warn(msg, fields) }
func Error(msg string, fields map[string]any) { Default().Error(msg, fields) }
