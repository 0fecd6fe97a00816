package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogConfig_getLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zap.AtomicLevel
		wantErr bool
	}{
		{name: "default", level: "", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "debug", level: "debug", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "warn", level: "warn", want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{name: "invalid", level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &LogConfig{Level: tt.level}
			got, err := cfg.getLevel()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Level(), got.Level())
		})
	}
}

func TestLogConfig_getEncoder(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		cfg := &LogConfig{Format: format}
		encoder, err := cfg.getEncoder()
		require.NoError(t, err)
		assert.NotNil(t, encoder)
	}

	cfg := &LogConfig{Format: "xml"}
	_, err := cfg.getEncoder()
	assert.Error(t, err)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "hashsync.log")
	cfg := DefaultLogConfig()
	cfg.Format = "json"
	cfg.Filename = filename

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("index created", zap.String("field", "role"))
	logger.Debug("suppressed at info level")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"index created"`)
	assert.Contains(t, string(data), `"field":"role"`)
	assert.NotContains(t, string(data), "suppressed")
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "nope"})
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{Format: "yaml"})
	assert.Error(t, err)
}
