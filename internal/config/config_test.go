package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsFromEmptyEnvironment(t *testing.T) {
	dotenvPath = filepath.Join(t.TempDir(), ".env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.Storage.Path)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Metrics.Disabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadYAML(t *testing.T) {
	dotenvPath = filepath.Join(t.TempDir(), ".env")
	path := writeFile(t, "config.yaml", `
env: prod
storage:
  driver: sqlite
  path: campus.db
http_server:
  address: 127.0.0.1:9090
  read_timeout: 3s
cors:
  allowed_origins:
    - https://a.example
    - https://b.example
metrics:
  disabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "campus.db", cfg.Storage.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPServer.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Metrics.Disabled)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dotenvPath = filepath.Join(t.TempDir(), ".env")
	path := writeFile(t, "config.yaml", "env: dev\n")
	t.Setenv("ENV", "staging")
	t.Setenv("HTTP_SERVER_ADDR", ":8081")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvStaging, cfg.Env)
	assert.Equal(t, ":8081", cfg.Addr)
}

func TestDotenvFile(t *testing.T) {
	dotenvPath = writeFile(t, ".env", "STORAGE_DRIVER=sqlite\n")
	t.Cleanup(func() { os.Unsetenv("STORAGE_DRIVER") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoadErrors(t *testing.T) {
	dotenvPath = filepath.Join(t.TempDir(), ".env")

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "unknown env", yaml: "env: qa\n", want: "invalid env"},
		{name: "unknown driver", yaml: "storage:\n  driver: postgres\n", want: "invalid storage driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("empty metrics path", func(t *testing.T) {
		t.Setenv("METRICS_PATH", "")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics path")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})
}
