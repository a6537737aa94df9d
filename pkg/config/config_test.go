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

	assert.Equal(t, "General", cfg.Parse.DefaultCategory)
	assert.Equal(t, 3, cfg.Analysis.MinFilesForTrend)
	assert.Equal(t, 10, cfg.Limits.MaxFileSizeMB)
	assert.Equal(t, []string{".txt"}, cfg.Limits.AllowedExtensions)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vng.toml")
	content := `
[parse]
default_category = "Uncategorized"

[analysis]
min_files_for_trend = 5

[limits]
max_file_size_mb = 2
allowed_extensions = [".txt", ".rpt"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Uncategorized", cfg.Parse.DefaultCategory)
	assert.Equal(t, 5, cfg.Analysis.MinFilesForTrend)
	assert.Equal(t, 2, cfg.Limits.MaxFileSizeMB)
	assert.Equal(t, []string{".txt", ".rpt"}, cfg.Limits.AllowedExtensions)
	// Untouched sections keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vng.yaml")
	content := `
output:
  format: json
  color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestAllowsExtension(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.AllowsExtension("report.txt"))
	assert.True(t, cfg.AllowsExtension("REPORT.TXT"))
	assert.False(t, cfg.AllowsExtension("report.pdf"))
	assert.False(t, cfg.AllowsExtension("report"))
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSizeBytes())
}
