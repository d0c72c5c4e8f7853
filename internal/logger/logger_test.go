package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default text logger", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(WithWriter(&buf))
		l.Info("hello", "key", "value")

		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("debug filtered unless enabled", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf)).Debug("hidden")
		assert.Empty(t, buf.String())

		New(WithWriter(&buf), WithDebug(true)).Debug("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("json logger", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithJSON(true)).Info("structured", "count", 42)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
		assert.Equal(t, "structured", parsed["msg"])
		assert.EqualValues(t, 42, parsed["count"])
	})

	t.Run("pretty logger", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithPretty(true)).Info("pretty output")
		assert.Contains(t, buf.String(), "pretty output")
	})

	t.Run("multiple writers", func(t *testing.T) {
		var a, b bytes.Buffer
		New(WithWriters(&a, &b)).Info("multi")
		assert.Contains(t, a.String(), "multi")
		assert.Contains(t, b.String(), "multi")
	})
}

func TestWithLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &config{}
			WithLevel(tt.name)(c)
			assert.Equal(t, tt.want, c.level)
		})
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Handler().Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() {
		l.With("k", "v").WithGroup("g").Error("nothing")
	})
}
