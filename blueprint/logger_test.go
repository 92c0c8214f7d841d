package blueprint

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/erraggy/blueprints/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("d", "k", "v")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Debug("debug message", "key", "value")
	adapter.Info("info message")
	adapter.Warn("warn message")
	adapter.Error("error message")
	adapter.With("component", "loader").Info("scoped")

	out := buf.String()
	for _, want := range []string{"debug message", "key=value", "info message", "warn message", "error message", "component=loader"} {
		assert.Contains(t, out, want)
	}

	assert.NotNil(t, NewSlogAdapter(nil).logger)
}

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewZapAdapter(zap.New(core))

	adapter.Debug("debug message", "key", "value")
	adapter.Info("info message")
	adapter.Warn("warn message")
	adapter.With("component", "loader").Error("error message")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "value", entries[0].ContextMap()["key"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "loader", entries[3].ContextMap()["component"])

	NewZapAdapter(nil).Info("discarded")
}

func TestLoadLogsSkippedReferences(t *testing.T) {
	f := testutil.NewFixture()
	f.Add("blueprints://page.yaml", "\"@extends\": gone\nform:\n  \"@import\": [also_gone, 7]\n")

	core, logs := observer.New(zapcore.DebugLevel)
	b := newBlueprint(f, "page")
	b.Logger = NewZapAdapter(zap.New(core))
	require.NoError(t, b.Load())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 3)
	assert.Equal(t, "reference not found, skipping", warnings[0].Message)
	assert.Equal(t, "gone", warnings[0].ContextMap()["ref"])
	assert.Equal(t, 3, b.Stats().ReferencesSkipped)

	assert.NotEmpty(t, logs.FilterMessage("document parsed").All())
}

func TestLoadLogsCycles(t *testing.T) {
	f := testutil.NewFixture()
	f.Add("blueprints://loop.yaml", "\"@extends\": loop\n")

	core, logs := observer.New(zapcore.DebugLevel)
	b := newBlueprint(f, "loop")
	b.Logger = NewZapAdapter(zap.New(core))
	require.Error(t, b.Load())

	assert.Len(t, logs.FilterMessage("reference cycle").All(), 1)
}
