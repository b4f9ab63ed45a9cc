package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T, opts Options) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(opts, &buf)
	return &buf
}

func TestInit_JSONCarriesServiceAttrs(t *testing.T) {
	buf := captureDefault(t, Options{
		Level:       "info",
		Format:      "JSON",
		Service:     "prediction-contest",
		Version:     "1.4.0",
		Environment: "test",
	})

	Info("contest finalized", "payouts", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "prediction-contest", entry[AttrKeyService])
	assert.Equal(t, "1.4.0", entry[AttrKeyVersion])
	assert.Equal(t, "test", entry[AttrKeyEnvironment])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(3), entry["payouts"])
}

func TestInit_OmitsEmptyServiceAttrs(t *testing.T) {
	buf := captureDefault(t, Options{Format: FormatText, Service: "contestctl"})

	Warn("dry run")
	out := buf.String()
	assert.Contains(t, out, "service=contestctl")
	assert.NotContains(t, out, "version=")
	assert.NotContains(t, out, "environment=")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureDefault(t, Options{Level: "warn", Format: FormatText, Service: "svc"})

	slog.Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Equal(t, 2, strings.Count(out, "service=svc"))
}

func TestFromContext(t *testing.T) {
	buf := captureDefault(t, Options{Level: "info", Format: FormatJSON})

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithContest(ctx, "c-42")
	assert.Equal(t, "req-123", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	FromContext(ctx).Info("scoped")
	FromContext(context.Background()).Info("bare")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var scoped, bare map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &scoped))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &bare))
	assert.Equal(t, "req-123", scoped[AttrKeyRequestID])
	assert.Equal(t, "c-42", scoped[AttrKeyContestID])
	assert.NotContains(t, bare, AttrKeyRequestID)
	assert.NotContains(t, bare, AttrKeyContestID)
}
