package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"forum/config"
	"forum/infrastructure/persistence"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	original := log
	t.Cleanup(func() { log = original })

	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	return logs
}

func TestNilLoggerIsSafe(t *testing.T) {
	original := log
	defer func() { log = original }()
	Set(nil)

	Info("info")
	Warn("warn")
	Error("error")
	require.NotNil(t, Get())
	require.NotNil(t, ForContext(context.Background()))
	require.NoError(t, Sync())
	t.Log("✓ 未初始化时辅助函数都是空操作")
}

func TestNewWritesServiceFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "forum.log")
	cfg := &config.Config{
		App: config.AppConfig{Name: "forum", Version: "1.2.3", Env: "production"},
		Log: config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path},
	}

	l, err := New(cfg)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("question created", zap.String("question_id", "question-1"))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	require.Len(t, lines, 1, "debug 低于配置级别")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "question created", entry["msg"])
	require.Equal(t, "forum", entry["service"])
	require.Equal(t, "1.2.3", entry["version"])
	require.Equal(t, "production", entry["env"])
	require.Equal(t, "question-1", entry["question_id"])
	t.Log("✓ 每条日志带服务名、版本和环境")
}

func TestServiceFieldsSkipEmpty(t *testing.T) {
	fields := serviceFields(&config.AppConfig{Name: "forum"})
	require.Len(t, fields, 1)
	require.Equal(t, "service", fields[0].Key)
}

func TestNewEncoder(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Unix(0, 0), Message: "hello"}

	tests := []struct {
		name   string
		format string
		env    string
		json   bool
	}{
		{"explicit json in development", "json", "development", true},
		{"explicit console in production", "console", "production", false},
		{"development defaults to console", "", "development", false},
		{"production defaults to json", "", "production", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := newEncoder(&config.LogConfig{Format: tt.format}, tt.env)
			buf, err := enc.EncodeEntry(entry, nil)
			require.NoError(t, err)
			require.Equal(t, tt.json, bytes.HasPrefix(buf.Bytes(), []byte("{")), buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"ERROR": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for input, want := range tests {
		require.Equal(t, want, parseLevel(input), input)
	}
}

func TestOrDefault(t *testing.T) {
	require.Equal(t, 10, orDefault(0, 10))
	require.Equal(t, 10, orDefault(-1, 10))
	require.Equal(t, 3, orDefault(3, 10))
}

func TestForContextAddsCorrelationFields(t *testing.T) {
	logs := observe(t)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-1")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	ForContext(ctx).Info("answer created")
	ForContext(context.Background()).Info("no request")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	require.Equal(t, "00f067aa0ba902b7", fields["span_id"])

	require.Empty(t, entries[1].ContextMap())
	t.Log("✓ 请求 ID 与链路 ID 来自 context")
}
