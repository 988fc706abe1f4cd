package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig holds the persistent defaults kept in <DataDir>/config.yaml.
type FileConfig struct {
	DefaultUser string `yaml:"default_user"`
}

// DefaultFileConfig returns the defaults written on first run.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		DefaultUser: "default",
	}
}

// loadFileConfig reads config.yaml from the data directory, returning
// defaults when the file does not exist yet.
func loadFileConfig(dataDir string) (*FileConfig, error) {
	path := filepath.Join(dataDir, "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFileConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveFileConfig writes the config file into the data directory.
func SaveFileConfig(dataDir string, cfg *FileConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
