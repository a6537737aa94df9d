// Package config loads vng configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for vng.
type Config struct {
	// Parse controls how report text is turned into structured data
	Parse ParseConfig `koanf:"parse" toml:"parse"`

	// Analysis settings for cross-file comparison
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Limits on accepted input files
	Limits LimitsConfig `koanf:"limits" toml:"limits"`

	// Interpret settings for the AI interpretation command
	Interpret InterpretConfig `koanf:"interpret" toml:"interpret"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ParseConfig controls report text parsing.
type ParseConfig struct {
	DefaultCategory string `koanf:"default_category" toml:"default_category"`
}

// AnalysisConfig defines comparison behavior.
type AnalysisConfig struct {
	MinFilesForTrend  int     `koanf:"min_files_for_trend" toml:"min_files_for_trend"`
	StableBandPercent float64 `koanf:"stable_band_percent" toml:"stable_band_percent"`
}

// LimitsConfig restricts which files are accepted.
type LimitsConfig struct {
	MaxFileSizeMB     int      `koanf:"max_file_size_mb" toml:"max_file_size_mb"`
	AllowedExtensions []string `koanf:"allowed_extensions" toml:"allowed_extensions"`
}

// InterpretConfig controls the AI interpretation request.
type InterpretConfig struct {
	Model      string `koanf:"model" toml:"model"`
	MaxMetrics int    `koanf:"max_metrics" toml:"max_metrics"`
	MaxRetries int    `koanf:"max_retries" toml:"max_retries"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			DefaultCategory: "General",
		},
		Analysis: AnalysisConfig{
			MinFilesForTrend:  3,
			StableBandPercent: 5.0,
		},
		Limits: LimitsConfig{
			MaxFileSizeMB:     10,
			AllowedExtensions: []string{".txt"},
		},
		Interpret: InterpretConfig{
			Model:      "gpt-4o",
			MaxMetrics: 15,
			MaxRetries: 3,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"vng.toml",
		"vng.yaml",
		"vng.yml",
		"vng.json",
		".vng.toml",
		".vng.yaml",
		".vng.yml",
		".vng.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// AllowsExtension reports whether a file name has an accepted extension.
func (c *Config) AllowsExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range c.Limits.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// MaxFileSizeBytes returns the input size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Limits.MaxFileSizeMB) * 1024 * 1024
}
