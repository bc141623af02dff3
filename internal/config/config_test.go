package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the developer's environment
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendGenAI, cfg.Provider.Backend)
	assert.Equal(t, 4, cfg.Provider.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Provider.BaseDelay)
	assert.Equal(t, 1500, cfg.Timer.WorkSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Roadmap.UnlockAll)
	assert.False(t, cfg.Provider.APIKey.IsSet())
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
provider:
  backend: claudecli
  base_delay: 250ms
  requests_per_minute: 10
roadmap:
  unlock_all: true
timer:
  work_seconds: 60
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendClaudeCLI, cfg.Provider.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Provider.BaseDelay)
	assert.Equal(t, 10, cfg.Provider.RequestsPerMinute)
	assert.True(t, cfg.Roadmap.UnlockAll)
	assert.Equal(t, 60, cfg.Timer.WorkSeconds)
	assert.Equal(t, 4, cfg.Provider.MaxAttempts, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "provider:\n  max_attempts: 2\nmetrics:\n  addr: \":9000\"\n")
	t.Setenv("FOCUSLY_PROVIDER_MAX_ATTEMPTS", "6")
	t.Setenv("FOCUSLY_PROVIDER_API_KEY", "from-env")
	t.Setenv("FOCUSLY_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Provider.MaxAttempts)
	assert.Equal(t, "from-env", cfg.Provider.APIKey.Value())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Metrics.Addr)
}

func TestLoad_APIKeyFallback(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"gemini key", map[string]string{"GEMINI_API_KEY": "g", "API_KEY": "a"}, "g"},
		{"generic key", map[string]string{"API_KEY": "a"}, "a"},
		{"prefixed wins", map[string]string{"FOCUSLY_PROVIDER_API_KEY": "f", "GEMINI_API_KEY": "g"}, "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Provider.APIKey.Value())
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "provider:\n  backend: carrier-pigeon\n", "provider.backend"},
		{"zero attempts", "provider:\n  max_attempts: 0\n", "provider.max_attempts"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"zero timer", "timer:\n  work_seconds: 0\n", "timer.work_seconds"},
		{"bad yaml", "provider: [unclosed\n", "failed to load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSecret_Redacted(t *testing.T) {
	s := Secret("sk-123")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "Secret([REDACTED])", s.GoString())
	assert.Equal(t, "sk-123", s.Value())
	assert.Empty(t, Secret("").String())
}

func TestDefaultPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "focusly", "config.yaml"), DefaultPath())
}
