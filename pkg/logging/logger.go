// Package logging provides structured logging for assertion
// evaluation with JSON, console, zap and multi-destination output.
package logging

import "time"

// Logger defines the interface for structured assertion logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// LogAssertion records one evaluated assertion.
	LogAssertion(entry AssertionLog)

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// AssertionLog captures one assertion outcome. Report holds the
// full diagnostic text for failures.
type AssertionLog struct {
	Timestamp  string        `json:"timestamp"`
	Predicate  string        `json:"predicate"`
	Expression string        `json:"expression"`
	Passed     bool          `json:"passed"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
	Error      string        `json:"error,omitempty"`
	Report     string        `json:"report,omitempty"`
}

// fields flattens the entry for loggers that only take Fields.
func (a AssertionLog) fields() []Field {
	fs := []Field{PredicateField(a.Predicate), PassedField(a.Passed)}
	if a.Duration > 0 {
		fs = append(fs, DurationField(a.Duration))
	}
	if a.Error != "" {
		fs = append(fs, StringField("error", a.Error))
	}
	return fs
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
