// Package home manages the scoresync home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the scoresync home directory.
	DefaultDirName = ".scoresync"

	// ManifestsDirName is the subdirectory for saved fused manifests.
	ManifestsDirName = "manifests"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// CacheFileName is the fetch cache database.
	CacheFileName = "cache.db"
)

// Dir represents the scoresync home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.scoresync).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ManifestsPath returns the path to the saved-manifests directory.
func (d *Dir) ManifestsPath() string {
	return filepath.Join(d.path, ManifestsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// CachePath returns the path to the fetch cache database.
func (d *Dir) CachePath() string {
	return filepath.Join(d.path, CacheFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.ManifestsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create manifests directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
