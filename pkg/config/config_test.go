package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hashsync.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9090"
shutdown-timeout = "5s"

[storage]
initial-capacity = 4096
max-page-size = 200

[[storage.collections]]
name = "users"
indexes = ["role", "city"]

[[storage.collections]]
name = "events"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 4096, cfg.Storage.InitialCapacity)
	assert.Equal(t, 200, cfg.Storage.MaxPageSize)
	require.Len(t, cfg.Storage.Collections, 2)
	assert.Equal(t, []string{"role", "city"}, cfg.Storage.Collections[0].Indexes)
	assert.Empty(t, cfg.Storage.Collections[1].Indexes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 512, cfg.Log.MaxSize)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "unknown key",
			content: "[server]\nprot = \"1\"\n",
			errText: "unknown keys",
		},
		{
			name:    "malformed",
			content: "[server\n",
			errText: "failed to decode",
		},
		{
			name:    "duplicate collection",
			content: "[[storage.collections]]\nname = \"a\"\n[[storage.collections]]\nname = \"a\"\n",
			errText: "duplicate collection",
		},
		{
			name:    "bad page size",
			content: "[storage]\nmax-page-size = 0\n",
			errText: "max-page-size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
