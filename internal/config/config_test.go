package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Ebay.Environment)
	assert.Equal(t, 100, cfg.Ebay.EntriesPerPage)
	assert.InDelta(t, 1.0, cfg.Ebay.RatePerSec, 0.001)
	assert.Equal(t, 1, cfg.Ebay.RateBurst)
	assert.Equal(t, 30, cfg.Ebay.TimeoutSecs)
	assert.Equal(t, "Junkyard Pricing.csv", cfg.Catalog.Path)
	assert.Equal(t, "saved_parts.json", cfg.Saved.Path)
	assert.Equal(t, 30, cfg.Analysis.WindowDays)
	assert.Equal(t, 3, cfg.Analysis.Concurrency)
	assert.True(t, cfg.Analysis.TrimOutliers)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, 15, cfg.Cache.TTLMinutes)
	assert.Equal(t, 10, cfg.Scrape.TimeoutSecs)
	assert.Contains(t, cfg.Scrape.UserAgent, "Mozilla/5.0")
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
ebay:
  environment: sandbox
  entries_per_page: 50
catalog:
  path: prices.csv
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.Ebay.Environment)
	assert.Equal(t, 50, cfg.Ebay.EntriesPerPage)
	assert.Equal(t, "prices.csv", cfg.Catalog.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 30, cfg.Analysis.WindowDays)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
ebay:
  environment: sandbox
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CARPARTS_EBAY_ENVIRONMENT", "production")
	t.Setenv("CARPARTS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "production", cfg.Ebay.Environment)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadBareEbayEnvNames(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("EBAY_APP_ID", "app-id-from-env")
	t.Setenv("EBAY_ENVIRONMENT", "sandbox")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "app-id-from-env", cfg.Ebay.AppID)
	assert.Equal(t, "sandbox", cfg.Ebay.Environment)
	assert.True(t, cfg.EbayConfigured())
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("CARPARTS_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestEbayConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.EbayConfigured())

	cfg.Ebay.AppID = "MyApp-1234"
	assert.True(t, cfg.EbayConfigured())
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Ebay.Environment = "production"
	cfg.Analysis.WindowDays = 30
	cfg.Analysis.Concurrency = 3
	cfg.Server.Port = 5000
	return cfg
}

func TestValidateAnalyze(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("analyze"))
}

func TestValidateBadEnvironment(t *testing.T) {
	cfg := validDefaults()
	cfg.Ebay.Environment = "staging"

	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ebay.environment")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Analysis.Concurrency = 0
	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.concurrency must be between 1 and 10")

	cfg.Analysis.Concurrency = 11
	err = cfg.Validate("analyze")
	assert.Error(t, err)

	cfg.Analysis.Concurrency = 10
	assert.NoError(t, cfg.Validate("analyze"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
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
