package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testLogger struct {
	mu      sync.Mutex
	entries []string
	fields  []map[string]any
}

func (l *testLogger) add(level string, f map[string]any, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+":"+msg)
	l.fields = append(l.fields, f)
}

func (l *testLogger) Info(f map[string]any, msg string)  { l.add("INFO", f, msg) }
func (l *testLogger) Error(f map[string]any, msg string) { l.add("ERROR", f, msg) }
func (l *testLogger) Debug(f map[string]any, msg string) { l.add("DEBUG", f, msg) }
func (l *testLogger) Warn(f map[string]any, msg string)  { l.add("WARN", f, msg) }
func (l *testLogger) Panic(f map[string]any, msg string) { l.add("PANIC", f, msg) }
func (l *testLogger) Fatal(f map[string]any, msg string) { l.add("FATAL", f, msg) }

func swap(t *testing.T, l Logger) {
	t.Helper()
	orig := GetLogger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(l)
}

func observed(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	core, logs := observer.New(level)
	swap(t, NewZapLogger(zap.New(core)))
	return logs
}

func TestZapLogger_FieldsAndLevels(t *testing.T) {
	logs := observed(t, zapcore.DebugLevel)

	Debug(map[string]any{"key1": "value1", "key2": 42}, "test debug")
	Info(nil, "test info")
	Warn(nil, "test warn")
	Error(nil, "test error")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "test debug", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, map[string]any{"key1": "value1", "key2": int64(42)}, entries[0].ContextMap())
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapLogger_LevelFilter(t *testing.T) {
	logs := observed(t, zapcore.WarnLevel)
	Debug(nil, "dropped")
	Info(nil, "dropped")
	Warn(nil, "kept")
	assert.Equal(t, 1, logs.Len())
}

func TestZapLogger_Panic(t *testing.T) {
	observed(t, zapcore.DebugLevel)
	assert.Panics(t, func() { Panic(nil, "test panic") })
}

func TestZapFields_Sorted(t *testing.T) {
	fields := zapFields(map[string]any{"b": 1, "a": 2, "c": 3})
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, "b", fields[1].Key)
	assert.Equal(t, "c", fields[2].Key)
	assert.Empty(t, zapFields(nil))
}

func TestSetLoggerAndGlobalLogging(t *testing.T) {
	tlog := &testLogger{}
	swap(t, tlog)

	Info(nil, "info msg")
	Error(nil, "error msg")
	Debug(nil, "debug msg")
	Warn(nil, "warn msg")
	Panic(nil, "panic msg")
	Fatal(nil, "fatal msg")

	assert.Equal(t, []string{
		"INFO:info msg",
		"ERROR:error msg",
		"DEBUG:debug msg",
		"WARN:warn msg",
		"PANIC:panic msg",
		"FATAL:fatal msg",
	}, tlog.entries)
	assert.Same(t, tlog, GetLogger())
}

func TestComponent(t *testing.T) {
	tlog := &testLogger{}
	swap(t, tlog)

	in := map[string]any{"zone": "example.com."}
	l := Component("zonestore")
	l.Info(in, "loaded")
	l.Debug(nil, "nothing")

	require.Len(t, tlog.fields, 2)
	assert.Equal(t, map[string]any{"zone": "example.com.", "component": "zonestore"}, tlog.fields[0])
	assert.Equal(t, map[string]any{"component": "zonestore"}, tlog.fields[1])
	assert.NotContains(t, in, "component", "caller map must not be modified")

	// follows the global logger set after creation
	other := &testLogger{}
	SetLogger(other)
	l.Warn(nil, "later")
	assert.Equal(t, []string{"WARN:later"}, other.entries)
}

func TestConfigure_ValidLevels(t *testing.T) {
	swap(t, GetLogger())
	for _, env := range []string{"dev", "prod"} {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			require.NoError(t, Configure(env, level), "%s/%s", env, level)
			_, isZap := GetLogger().(*zapLogger)
			assert.True(t, isZap)
		}
	}
	Sync()
}

func TestConfigure_InvalidLevel(t *testing.T) {
	swap(t, GetLogger())
	before := GetLogger()
	err := Configure("prod", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
	assert.Same(t, before, GetLogger())
}

func TestNoopLogger_AllLevels(t *testing.T) {
	l := NewNoopLogger()
	assert.NotPanics(t, func() {
		l.Info(nil, "x")
		l.Error(nil, "x")
		l.Debug(nil, "x")
		l.Warn(nil, "x")
		l.Panic(nil, "x")
		l.Fatal(nil, "x")
	})
	swap(t, l)
	assert.NotPanics(t, Sync)
}

func TestConcurrentSetLogger(t *testing.T) {
	swap(t, NewNoopLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(NewNoopLogger())
		}()
		go func() {
			defer wg.Done()
			Info(map[string]any{"i": i}, "concurrent")
		}()
	}
	wg.Wait()
}
