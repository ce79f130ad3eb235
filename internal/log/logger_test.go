package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: "import", Output: &buf})

	l.Info("imported transactions", "count", 9)
	out := buf.String()
	assert.Contains(t, out, "component=import")
	assert.Contains(t, out, "count=9")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: "x", Output: &buf})

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: "root", Output: &buf}).WithComponent("storage")

	l.Info("opened")
	assert.Contains(t, buf.String(), "component=storage")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, "spendtrend", cfg.Component)
	assert.NotNil(t, cfg.Output)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, "ParseLevel(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
