package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "jewelry-backend", Env: "development"},
		Log: config.LogConfig{Level: "debug", Format: "console", Output: "stderr"},
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{
		Level:   "debug",
		Format:  "console",
		Output:  "stderr",
		Service: "jewelry-backend",
		Env:     "development",
	}, opts)

	cfg.App.Env = "production"
	assert.Equal(t, "json", OptionsFromConfig(cfg).Format)
}

func TestNew_WritesServiceFieldsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Options{Level: "info", Format: "json", Output: path, Service: "jewelry-backend", Env: "test"})
	require.NoError(t, err)

	log.Debug("dropped")
	log.Info("sale document created")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "sale document created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "jewelry-backend", entry["service"])
	assert.Equal(t, "test", entry["env"])
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(Options{Output: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", ""} {
		log, err := NewForEnvironment(env)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestOpenWriter(t *testing.T) {
	for _, output := range []string{"", "stdout", "STDERR"} {
		w, err := openWriter(output)
		require.NoError(t, err)
		assert.NotNil(t, w)
	}
}

func TestNewEncoder(t *testing.T) {
	assert.NotNil(t, newEncoder("console"))
	assert.NotNil(t, newEncoder("json"))
}
