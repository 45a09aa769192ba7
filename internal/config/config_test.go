package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 10000, cfg.Directory.TimeoutMS)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
directory:
  baseURL: https://directory.busmate.lk
  timeoutMS: 5000
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "https://directory.busmate.lk", cfg.Directory.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n  env: staging\n")
	t.Setenv("WORKSPACE_PORT", "9999")
	t.Setenv("WORKSPACE_DIRECTORY_URL", "https://alt.busmate.lk")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, "https://alt.busmate.lk", cfg.Directory.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "bad env", contents: "server:\n  port: 4000\n  env: sandbox\n"},
		{name: "bad port", contents: "server:\n  port: -1\n  env: development\n"},
		{name: "bad url", contents: "server:\n  port: 4000\n  env: development\ndirectory:\n  baseURL: not-a-url\n"},
		{name: "bad level", contents: "server:\n  port: 4000\n  env: development\nlogging:\n  level: chatty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBadPortEnvVar(t *testing.T) {
	t.Setenv("WORKSPACE_PORT", "eight thousand")
	_, err := Load("")
	assert.Error(t, err)
}
