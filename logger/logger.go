// Package logger provides the small structured logging surface used by the
// cache. Consumers embed the cache in larger processes with their own
// logging stacks, so the interface stays minimal and an adapter is trivial
// to write.
package logger

import (
	"os"
	"strings"
)

// LogLevel defines the level of logging
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// GetLevelFromEnv will look at the environment var `TIERCACHE_LOG_LEVEL`
// and convert it into the appropriate LogLevel
func GetLevelFromEnv() LogLevel {
	switch strings.ToLower(os.Getenv("TIERCACHE_LOG_LEVEL")) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is an interface for logging. Message strings are printf formats.
type Logger interface {
	// With will return a new logger using metadata as the base context
	With(metadata map[string]interface{}) Logger
	// WithPrefix will return a new logger with a prefix prepended to the message
	WithPrefix(prefix string) Logger
	// Trace level logging
	Trace(msg string, args ...interface{})
	// Debug level logging
	Debug(msg string, args ...interface{})
	// Info level logging
	Info(msg string, args ...interface{})
	// Warning level logging
	Warn(msg string, args ...interface{})
	// Error level logging
	Error(msg string, args ...interface{})
}

type discardLogger struct{}

var _ Logger = (*discardLogger)(nil)

func (discardLogger) With(map[string]interface{}) Logger { return discardLogger{} }
func (discardLogger) WithPrefix(string) Logger           { return discardLogger{} }
func (discardLogger) Trace(string, ...interface{})       {}
func (discardLogger) Debug(string, ...interface{})       {}
func (discardLogger) Info(string, ...interface{})        {}
func (discardLogger) Warn(string, ...interface{})        {}
func (discardLogger) Error(string, ...interface{})       {}

// NewDiscard returns a Logger that drops everything. It is the default
// logger for a cache Manager.
func NewDiscard() Logger {
	return discardLogger{}
}
