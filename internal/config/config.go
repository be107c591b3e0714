// Package config handles loading and hot-reloading configuration.
package config

import "time"

// Config is the full scoresync configuration.
type Config struct {
	Fetch    FetchConfig    `mapstructure:"fetch" yaml:"fetch"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// FetchConfig controls resource retrieval.
type FetchConfig struct {
	TimeoutSeconds int  `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Attempts       uint `mapstructure:"attempts" yaml:"attempts"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// CacheConfig controls the on-disk fetch cache. An empty path means
// cache.db inside the scoresync home directory.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// DefaultsConfig holds per-run defaults the flags can override.
type DefaultsConfig struct {
	CanvasIndex int    `mapstructure:"canvas_index" yaml:"canvas_index"`
	OutputPath  string `mapstructure:"output_path" yaml:"output_path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
			Attempts:       3,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Defaults: DefaultsConfig{
			CanvasIndex: 0,
			OutputPath:  "fused.json",
		},
	}
}
