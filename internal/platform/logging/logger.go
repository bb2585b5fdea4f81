// Package logging wraps zap with trace-aware helpers so every log line
// emitted inside a request carries its trace and span ids.
package logging

import (
	"context"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Field = zap.Field

var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Time     = zap.Time
	Any      = zap.Any
	Err      = zap.Error
)

// Logger is a thin wrapper over *zap.Logger. The zero value is not
// usable; construct with NewJSON, NewNop, or FromZap.
type Logger struct {
	base *zap.Logger
}

// NewJSON builds a production JSON logger writing to stderr.
func NewJSON(level Level) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return &Logger{base: zap.New(core, zap.AddCaller())}
}

func NewNop() *Logger {
	return &Logger{base: zap.NewNop()}
}

func FromZap(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base}
}

func (l *Logger) Zap() *zap.Logger { return l.base }

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{base: l.base.With(fields...)}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{base: l.base.Named(name)}
}

func (l *Logger) Sync() error { return l.base.Sync() }

func (l *Logger) Debug(msg string, fields ...Field) { l.base.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.base.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.base.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.base.Error(msg, fields...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.base.Debug(msg, appendTraceFields(ctx, fields)...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.base.Info(msg, appendTraceFields(ctx, fields)...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.base.Warn(msg, appendTraceFields(ctx, fields)...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.base.Error(msg, appendTraceFields(ctx, fields)...)
}

func appendTraceFields(ctx context.Context, fields []Field) []Field {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return fields
	}
	return append(fields,
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewNop())
}

// Default returns the process-wide logger.
func Default() *Logger { return defaultLogger.Load() }

// SetDefault replaces the process-wide logger. Nil is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}
