package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 20.0, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Engine.ExactQuantiles)
	assert.Equal(t, 4, cfg.Engine.CompareConcurrency)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  database_url: scenarios.db
log:
  level: debug
  format: console
server:
  port: 9090
engine:
  exact_quantiles: true
  compare_concurrency: 8
export:
  default_format: xlsx
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "scenarios.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Engine.ExactQuantiles)
	assert.Equal(t, 8, cfg.Engine.CompareConcurrency)
	assert.Equal(t, "xlsx", cfg.Export.DefaultFormat)
	// Defaults still apply for unset values
	assert.Equal(t, 40, cfg.Server.RateLimitBurst)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SAMPLESIZE_STORE_DRIVER", "postgres")
	t.Setenv("SAMPLESIZE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SAMPLESIZE_SERVER_PORT", "3000")
	t.Setenv("SAMPLESIZE_ENGINE_EXACT_QUANTILES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Engine.ExactQuantiles)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: mysql
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: validate")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Log.Format = "json"
	cfg.Export.DefaultFormat = "csv"
	return cfg
}

func TestValidateCalc(t *testing.T) {
	assert.NoError(t, validDefaults().Validate(ModeCalc))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate(ModeServe)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")

	cfg.Server.Port = 70000
	err = cfg.Validate(ModeServe)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config: validate")
}

func TestValidateStore(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate(ModeStore)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver is required")

	cfg.Store.Driver = "postgres"
	err = cfg.Validate(ModeStore)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required for postgres")

	cfg.Store.DatabaseURL = "postgres://localhost/samplesize"
	assert.NoError(t, cfg.Validate(ModeStore))

	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = ""
	assert.NoError(t, cfg.Validate(ModeStore))
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateExportFormat(t *testing.T) {
	cfg := validDefaults()
	cfg.Export.DefaultFormat = "pdf"
	assert.Error(t, cfg.Validate(ModeCalc))
}
