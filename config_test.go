package main

import (
	"os"
	"path/filepath"
	"testing"

	"LeafTools/lf2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, []int{0x248, 0x3e1}, cfg.FileCounts)
	assert.Equal(t, lf2.RowOrderLegacy, cfg.rowOrder())
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir = "png"
workers = 0
file_counts = []
row_order = "exact"
`), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.OutputDir)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, lf2.RowOrderExact, cfg.rowOrder())
	assert.True(t, cfg.variant()(12345))
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := defaultConfig()
	want.ConvertImages = true
	require.NoError(t, saveConfig(path, want))

	got, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.variant()(3))
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = \"many\""), 0644))
	_, err := loadConfig(path)
	assert.Error(t, err)
}
