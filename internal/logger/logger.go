// Package logger provides a small leveled logger. Three levels: off,
// normal (info/warn/error), and verbose (adds debug). Safe for
// concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls logger verbosity.
type Level int

const (
	// LevelOff disables all output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables everything including debug.
	LevelVerbose
)

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger writing to out at the given level. A nil out
// defaults to os.Stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ltime

	return &Logger{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs at debug level (visible in verbose mode only).
func (l *Logger) Debug(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelVerbose {
		l.debug.Output(2, fmt.Sprintf(format, args...))
	}
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.info.Output(2, fmt.Sprintf(format, args...))
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.warn.Output(2, fmt.Sprintf(format, args...))
	}
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.level >= LevelNormal {
		l.errLog.Output(2, fmt.Sprintf(format, args...))
	}
}
