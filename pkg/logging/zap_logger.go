package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a *zap.Logger to Logger.
type ZapLogger struct {
	logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger wraps l. A nil l discards everything.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: l}
}

// NewProductionZapLogger builds a JSON zap logger at the given
// level.
func NewProductionZapLogger(level LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(levelToZap(level))
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l), nil
}

func (z *ZapLogger) must() *zap.Logger {
	if z == nil || z.logger == nil {
		return zap.NewNop()
	}
	return z.logger
}

// Info logs an informational message.
func (z *ZapLogger) Info(msg string, fields ...Field) {
	z.must().Info(msg, toZap(fields)...)
}

// Warn logs a warning message.
func (z *ZapLogger) Warn(msg string, fields ...Field) {
	z.must().Warn(msg, toZap(fields)...)
}

// Error logs an error message.
func (z *ZapLogger) Error(msg string, fields ...Field) {
	z.must().Error(msg, toZap(fields)...)
}

// Debug logs a debug message.
func (z *ZapLogger) Debug(msg string, fields ...Field) {
	z.must().Debug(msg, toZap(fields)...)
}

// WithFields returns a child logger carrying fields.
func (z *ZapLogger) WithFields(fields ...Field) Logger {
	return &ZapLogger{logger: z.must().With(toZap(fields)...)}
}

// LogAssertion logs failures at warn with the report attached and
// passes at debug.
func (z *ZapLogger) LogAssertion(entry AssertionLog) {
	fields := []zap.Field{
		zap.String("predicate", entry.Predicate),
		zap.String("expression", entry.Expression),
		zap.Bool("passed", entry.Passed),
	}
	if entry.Duration > 0 {
		fields = append(fields, zap.Duration("duration", entry.Duration))
	}
	if entry.Error != "" {
		fields = append(fields, zap.String("error", entry.Error))
	}
	if entry.Passed {
		z.must().Debug("assertion passed", fields...)
		return
	}
	if entry.Report != "" {
		fields = append(fields, zap.String("report", entry.Report))
	}
	z.must().Warn("assertion failed", fields...)
}

// Close flushes buffered entries.
func (z *ZapLogger) Close() error {
	return z.must().Sync()
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

func levelToZap(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
