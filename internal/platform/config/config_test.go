package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envMap(map[string]string{
		"DISTRIBUTORS_ADDR":         ":9000",
		"DISTRIBUTORS_DB_DRIVER":    "SQLite",
		"DISTRIBUTORS_DB_DSN":       "file:test.db",
		"DISTRIBUTORS_LOG_LEVEL":    "debug",
		"DISTRIBUTORS_CORS_ORIGINS": "http://a.test, http://b.test,http://a.test",
		"DISTRIBUTORS_SEED":         "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Seed)
}

func TestApplyEnvRejectsBadSeed(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, cfg.applyEnv(envMap(map[string]string{"DISTRIBUTORS_SEED": "maybe"})), "DISTRIBUTORS_SEED")
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":7000"
  shutdown_timeout: 3s
database:
  driver: postgres
  dsn: postgres://localhost/distributors
`), 0o600))

	cfg := Default()
	require.NoError(t, cfg.mergeFile(path))

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout, "unset keys keep defaults")
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "dsn is required")

	cfg.Database.Driver = "oracle"
	assert.ErrorContains(t, cfg.Validate(), "unsupported")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DISTRIBUTORS_CONFIG", "")
	t.Setenv("DISTRIBUTORS_ADDR", ":8123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8123", cfg.Server.Addr)
}
