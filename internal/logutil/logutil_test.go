package logutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		env     string
		verbose bool
		want    slog.Level
	}{
		{"", false, slog.LevelInfo},
		{"", true, slog.LevelDebug},
		{"1", false, slog.LevelDebug},
		{"false", false, slog.LevelInfo},
		{"yes", false, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Setenv(DebugEnv, tt.env)
		assert.Equal(t, tt.want, Level(tt.verbose), "env=%q verbose=%v", tt.env, tt.verbose)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("forward", "layer", "conv2d")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=forward")
	assert.Contains(t, out, "layer=conv2d")

	buf.Reset()
	NewLogger(&buf, slog.LevelDebug).Debug("shown")
	assert.Contains(t, buf.String(), "source=logutil_test.go:")
}
