package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "./data", cfg.DataDir)
	assert.True(t, cfg.Journal)
	assert.Equal(t, 7, cfg.Lending.LoanPeriodDays)
	assert.Equal(t, 10, cfg.Lending.FinePerDay)
	assert.Equal(t, 30, cfg.Lending.BanDays)
	assert.Equal(t, 3, cfg.Lending.MaxBorrows)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/shelf"
	cfg.Lending.MaxBorrows = 5
	cfg.Logging.Level = "debug"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [not: valid"), 0600))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestBootstrapConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.False(t, ConfigExists(path))

	cfg, err := BootstrapConfig(path, "/srv/shelf-data")
	require.NoError(t, err)
	assert.Equal(t, "/srv/shelf-data", cfg.DataDir)
	assert.True(t, ConfigExists(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
