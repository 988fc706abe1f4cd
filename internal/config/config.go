// Package config resolves where the store lives and which user the CLI
// acts as. Defaults come from a config.yaml in the data directory; the
// environment (optionally via a .env file) overrides it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the resolved configuration for one CLI invocation.
type Config struct {
	// DataDir is the per-user directory holding the store, config and
	// curriculum files (default ~/.lessonlog).
	DataDir string

	// DBPath is the SQLite store file (default <DataDir>/lessonlog.db,
	// overridable via LESSONLOG_DB).
	DBPath string

	// CurriculumPath points at an optional curriculum override file.
	CurriculumPath string

	// User is the display name the CLI acts as.
	User string

	Debug bool
}

// Load resolves configuration: file defaults first, then environment.
// A .env in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	dataDir := getEnv("LESSONLOG_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".lessonlog")
	}

	fileCfg, err := loadFileConfig(dataDir)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:        dataDir,
		DBPath:         getEnv("LESSONLOG_DB", filepath.Join(dataDir, "lessonlog.db")),
		CurriculumPath: getEnv("LESSONLOG_CURRICULUM", filepath.Join(dataDir, "curriculum.yaml")),
		User:           getEnv("LESSONLOG_USER", fileCfg.DefaultUser),
		Debug:          getEnvBool("LESSONLOG_DEBUG", false),
	}
	if cfg.User == "" {
		cfg.User = "default"
	}
	return cfg, nil
}

// EnsureDataDir creates the data directory when absent.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir %s: %w", c.DataDir, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
