package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/mashenka/mashenka/engine/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", logging.LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestTraceLevelNameAndSource(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	prev := logging.Level()
	logging.SetLevel(logging.LevelTrace)
	t.Cleanup(func() { logging.SetLevel(prev) })

	logging.Trace(logging.Core(), "tick")
	logging.Client().Info("hello")

	out := buf.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "source=MASHENKA")
	assert.Contains(t, out, "source=APP")
}

func TestLevelFiltersBothLoggers(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	prev := logging.Level()
	logging.SetLevel(slog.LevelWarn)
	t.Cleanup(func() { logging.SetLevel(prev) })

	logging.Core().Info("dropped")
	logging.Client().Debug("dropped")
	assert.Empty(t, buf.String())

	logging.Client().Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
