package log

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the rr-store logging interface.
type Logger interface {
	Info(fields map[string]any, msg string)
	Error(fields map[string]any, msg string)
	Debug(fields map[string]any, msg string)
	Warn(fields map[string]any, msg string)
	Panic(fields map[string]any, msg string)
	Fatal(fields map[string]any, msg string)
}

// holder keeps the interface value in a concrete type so it can live in an atomic.Pointer.
type holder struct{ Logger }

var global atomic.Pointer[holder]

func init() {
	global.Store(&holder{newZapLogger(false, zapcore.InfoLevel)}) // prod/info until configured
}

// SetLogger replaces the global logger instance. Safe for concurrent use.
func SetLogger(l Logger) {
	global.Store(&holder{l})
}

// GetLogger returns the current global logger instance.
func GetLogger() Logger {
	return global.Load().Logger
}

// Configure sets up the global logger based on env and level.
// Any env other than "prod" selects the colored development encoder.
func Configure(env, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	SetLogger(newZapLogger(env != "prod", lvl))
	return nil
}

// Sync flushes the global logger if it buffers output.
func Sync() {
	if s, ok := GetLogger().(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func Info(fields map[string]any, msg string)  { GetLogger().Info(fields, msg) }
func Error(fields map[string]any, msg string) { GetLogger().Error(fields, msg) }
func Debug(fields map[string]any, msg string) { GetLogger().Debug(fields, msg) }
func Warn(fields map[string]any, msg string)  { GetLogger().Warn(fields, msg) }
func Panic(fields map[string]any, msg string) { GetLogger().Panic(fields, msg) }
func Fatal(fields map[string]any, msg string) { GetLogger().Fatal(fields, msg) }

// Component returns a Logger that adds a "component" field to every entry and forwards
// to whichever global logger is current at call time.
func Component(name string) Logger {
	return &componentLogger{name: name}
}

type componentLogger struct {
	name string
}

func (c *componentLogger) with(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	maps.Copy(out, fields)
	out["component"] = c.name
	return out
}

func (c *componentLogger) Info(f map[string]any, msg string)  { GetLogger().Info(c.with(f), msg) }
func (c *componentLogger) Error(f map[string]any, msg string) { GetLogger().Error(c.with(f), msg) }
func (c *componentLogger) Debug(f map[string]any, msg string) { GetLogger().Debug(c.with(f), msg) }
func (c *componentLogger) Warn(f map[string]any, msg string)  { GetLogger().Warn(c.with(f), msg) }
func (c *componentLogger) Panic(f map[string]any, msg string) { GetLogger().Panic(c.with(f), msg) }
func (c *componentLogger) Fatal(f map[string]any, msg string) { GetLogger().Fatal(c.with(f), msg) }

// zapLogger implements Logger using Uber's zap.
type zapLogger struct {
	base *zap.Logger
}

// newZapLogger returns a stderr logger configured for dev or prod mode with the given level.
func newZapLogger(dev bool, level zapcore.Level) Logger {
	var config zap.Config
	if dev {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "msg"
	config.EncoderConfig.LevelKey = "level"
	config.OutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return &noopLogger{}
	}
	return &zapLogger{base: logger}
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(base *zap.Logger) Logger {
	return &zapLogger{base: base}
}

func (l *zapLogger) Info(fields map[string]any, msg string)  { l.base.Info(msg, zapFields(fields)...) }
func (l *zapLogger) Error(fields map[string]any, msg string) { l.base.Error(msg, zapFields(fields)...) }
func (l *zapLogger) Debug(fields map[string]any, msg string) { l.base.Debug(msg, zapFields(fields)...) }
func (l *zapLogger) Warn(fields map[string]any, msg string)  { l.base.Warn(msg, zapFields(fields)...) }
func (l *zapLogger) Panic(fields map[string]any, msg string) { l.base.Panic(msg, zapFields(fields)...) }
func (l *zapLogger) Fatal(fields map[string]any, msg string) { l.base.Fatal(msg, zapFields(fields)...) }

func (l *zapLogger) Sync() error { return l.base.Sync() }

// zapFields converts the map in key order so output is stable.
func zapFields(m map[string]any) []zap.Field {
	fields := make([]zap.Field, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fields = append(fields, zap.Any(k, m[k]))
	}
	return fields
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (n *noopLogger) Info(map[string]any, string)  {}
func (n *noopLogger) Error(map[string]any, string) {}
func (n *noopLogger) Debug(map[string]any, string) {}
func (n *noopLogger) Warn(map[string]any, string)  {}
func (n *noopLogger) Panic(map[string]any, string) {}
func (n *noopLogger) Fatal(map[string]any, string) {}

// NewNoopLogger returns a Logger that discards all log messages.
func NewNoopLogger() Logger {
	return &noopLogger{}
}
