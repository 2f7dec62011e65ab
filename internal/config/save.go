package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/golden-sphere/internal/scene"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Save writes when no config file was loaded.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveSettings stores the scene settings in the config and writes it back to
// path, or to DefaultPath when path is empty. It returns the path written.
func (c *Config) SaveSettings(s scene.Settings, path string) (string, error) {
	c.SetSceneSettings(s)
	if path == "" {
		path = DefaultPath()
	}
	if err := c.SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}
