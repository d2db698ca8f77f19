package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 512*1024, cfg.Scan.ChunkSize)
	assert.Equal(t, 64*1024*1024, cfg.Scan.MaxRegionBytes)
	assert.Equal(t, 200, cfg.Scan.Lookahead)
	assert.Equal(t, 4*time.Second, cfg.Client.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agprobe.yaml")
	content := `
scan:
  chunk_size: 65536
  max_region_bytes: 1048576
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("AGPROBE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 65536, cfg.Scan.ChunkSize)
	assert.Equal(t, 1048576, cfg.Scan.MaxRegionBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep defaults.
	assert.Equal(t, 200, cfg.Scan.Lookahead)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("AGPROBE_CONFIG", filepath.Join(t.TempDir(), "nonexistent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scan, cfg.Scan)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  chunk_size: 65536\n"), 0600))
	t.Setenv("AGPROBE_CONFIG", path)
	t.Setenv("AGPROBE_SCAN_CHUNK_SIZE", "4096")
	t.Setenv("AGPROBE_CLIENT_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Scan.ChunkSize)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: [broken\n"), 0600))
	t.Setenv("AGPROBE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero chunk size", func(c *Config) { c.Scan.ChunkSize = 0 }, true},
		{"region cap below chunk", func(c *Config) { c.Scan.MaxRegionBytes = c.Scan.ChunkSize - 1 }, true},
		{"zero lookahead", func(c *Config) { c.Scan.Lookahead = 0 }, true},
		{"zero timeout", func(c *Config) { c.Client.Timeout = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
