package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/jian"
)

func TestNew_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(jian.LogConfig{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("parsed", "definitions", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=parsed")
	assert.Contains(t, out, "definitions=3")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(jian.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("resolved", "session", "abc")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "resolved", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "abc", record["session"])
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(jian.LogConfig{Level: "trace"}, nil)
	assert.ErrorIs(t, err, ErrUnknownLevel)

	_, err = New(jian.LogConfig{Format: "console"}, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
