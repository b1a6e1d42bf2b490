package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultMaxErrors, cfg.MaxErrors)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, DefaultCachePath, cfg.Cache.Path)
	assert.False(t, cfg.Cache.Enabled)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
max_errors: 10
color: never
cache:
  enabled: true
  path: /tmp/exports.db
`), "funcheck.yaml")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxErrors)
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/exports.db", cfg.Cache.Path)
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("color: always\n"), "funcheck.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxErrors, cfg.MaxErrors)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, DefaultCachePath, cfg.Cache.Path)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("color: rainbow\n"), "funcheck.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")

	_, err = Parse([]byte("max_errors: -1\n"), "funcheck.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_errors")

	_, err = Parse([]byte("max_errors: [\n"), "funcheck.yaml")
	require.Error(t, err)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_errors: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxErrors)
}
