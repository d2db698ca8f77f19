// Package config provides configuration loading for agprobe.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (~/.agprobe.yaml or AGPROBE_CONFIG), then AGPROBE_* environment
// variables. Every call site receives a plain Config value; there is no
// module-level state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level agprobe configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Scan   ScanConfig   `yaml:"scan"`
	Client ClientConfig `yaml:"client"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"AGPROBE_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty"`
}

// ScanConfig bounds the per-process memory scan. The values are a budget,
// not a guarantee: a region smaller than ChunkSize is read in one step and
// a region larger than MaxRegionBytes is truncated.
type ScanConfig struct {
	// ChunkSize is the size of one bulk read against the target process.
	ChunkSize int `yaml:"chunk_size" env:"AGPROBE_SCAN_CHUNK_SIZE"`
	// MaxRegionBytes caps how much of a single mapped region is scanned.
	MaxRegionBytes int `yaml:"max_region_bytes" env:"AGPROBE_SCAN_MAX_REGION_BYTES"`
	// Lookahead is the window size inspected after each anchor match.
	Lookahead int `yaml:"lookahead" env:"AGPROBE_SCAN_LOOKAHEAD"`
}

// ClientConfig contains settings for the language-server HTTP client.
type ClientConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"AGPROBE_CLIENT_TIMEOUT"`
}

// DefaultConfig returns the built-in defaults. The scan values mirror the
// target application's observed behavior: 512KiB chunks keep a single
// cross-process read cheap, and the 64MiB region cap bounds worst-case
// scans of large heaps.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Scan: ScanConfig{
			ChunkSize:      512 * 1024,
			MaxRegionBytes: 64 * 1024 * 1024,
			Lookahead:      200,
		},
		Client: ClientConfig{
			Timeout: 4 * time.Second,
		},
	}
}

// Load returns the effective configuration: defaults, overlaid with the
// config file (if one exists), overlaid with environment variables.
// A missing config file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := configPath()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks invariants the scan loop depends on.
func (c Config) Validate() error {
	if c.Scan.ChunkSize <= 0 {
		return fmt.Errorf("scan.chunk_size must be positive, got %d", c.Scan.ChunkSize)
	}
	if c.Scan.MaxRegionBytes < c.Scan.ChunkSize {
		return fmt.Errorf("scan.max_region_bytes (%d) must be at least scan.chunk_size (%d)",
			c.Scan.MaxRegionBytes, c.Scan.ChunkSize)
	}
	if c.Scan.Lookahead <= 0 {
		return fmt.Errorf("scan.lookahead must be positive, got %d", c.Scan.Lookahead)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive, got %s", c.Client.Timeout)
	}
	return nil
}

// configPath resolves the config file location: AGPROBE_CONFIG wins,
// otherwise ~/.agprobe.yaml. Returns "" when no home directory exists.
func configPath() string {
	if p := os.Getenv("AGPROBE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agprobe.yaml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AGPROBE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AGPROBE_SCAN_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.ChunkSize = n
		}
	}
	if v := os.Getenv("AGPROBE_SCAN_MAX_REGION_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.MaxRegionBytes = n
		}
	}
	if v := os.Getenv("AGPROBE_SCAN_LOOKAHEAD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Lookahead = n
		}
	}
	if v := os.Getenv("AGPROBE_CLIENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Client.Timeout = d
		}
	}
}
