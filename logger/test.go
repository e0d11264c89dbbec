package logger

import "sync"

type TestLogEntry struct {
	Severity  string
	Message   string
	Arguments []interface{}
}

// TestLogger captures log entries for assertions in tests. Safe for
// concurrent use so background sweep/pressure goroutines can log into it.
type TestLogger struct {
	mutex sync.Mutex
	logs  []TestLogEntry
}

var _ Logger = (*TestLogger)(nil)

func (c *TestLogger) With(map[string]interface{}) Logger { return c }
func (c *TestLogger) WithPrefix(string) Logger           { return c }

func (c *TestLogger) record(severity string, msg string, args ...interface{}) {
	c.mutex.Lock()
	c.logs = append(c.logs, TestLogEntry{severity, msg, args})
	c.mutex.Unlock()
}

func (c *TestLogger) Trace(msg string, args ...interface{}) { c.record("TRACE", msg, args...) }
func (c *TestLogger) Debug(msg string, args ...interface{}) { c.record("DEBUG", msg, args...) }
func (c *TestLogger) Info(msg string, args ...interface{})  { c.record("INFO", msg, args...) }
func (c *TestLogger) Warn(msg string, args ...interface{})  { c.record("WARNING", msg, args...) }
func (c *TestLogger) Error(msg string, args ...interface{}) { c.record("ERROR", msg, args...) }

// Logs returns a copy of the captured entries.
func (c *TestLogger) Logs() []TestLogEntry {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]TestLogEntry, len(c.logs))
	copy(out, c.logs)
	return out
}

// NewTestLogger returns a new Logger instance useful for testing
func NewTestLogger() *TestLogger {
	return &TestLogger{logs: make([]TestLogEntry, 0)}
}
