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

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "DEBUG", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "warning", expected: slog.LevelWarn},
		{level: " Warn ", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		{level: "ERROR", expected: slog.LevelError},
		{level: "verbose", expected: slog.LevelInfo},
		{level: "", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewEnablesConfiguredLevel(t *testing.T) {
	log := New("warn")
	require.NotNil(t, log)

	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Debug("hidden")
	log.Info("message relayed", ApplicationFields("message_relayed", slog.String("delivery_id", "dlv-1")))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "message relayed", result["msg"])
	assert.Equal(t, "INFO", result["level"])

	app, ok := result["application"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "message_relayed", app["event"])
	assert.Equal(t, "dlv-1", app["delivery_id"])
	assert.NotContains(t, buf.String(), "hidden")
}
