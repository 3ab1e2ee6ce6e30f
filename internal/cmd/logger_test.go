package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			got, err := parseLevel(tt.level)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := parseLevel("trace")
		require.ErrorIs(t, err, ErrInvalidLogLevel)
	})
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, false, slog.LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept", "component", "test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "test", entry["component"])
}
