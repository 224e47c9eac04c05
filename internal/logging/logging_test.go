package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Level = "warn"

	log, err := New(cfg, WithOutput(&buf))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("command failed", zap.String("command", "paste"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "command failed", entry["message"])
	assert.Equal(t, "paste", entry["command"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagecraft.log")
	cfg := DefaultConfig()
	cfg.File = path
	cfg.Compress = false

	var console bytes.Buffer
	log, err := New(cfg, WithOutput(&console))
	require.NoError(t, err)
	log.Info("loaded", zap.Int("nodes", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"loaded"`)
	assert.Contains(t, string(data), `"nodes":3`)
	assert.Contains(t, console.String(), "loaded")
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Warn("ignored") })
}
