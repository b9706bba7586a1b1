package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel    string `yaml:"log_level"`
	Extension   string `yaml:"extension"`
	SnapshotDir string `yaml:"snapshot_dir"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// LoadFromDir loads config.yaml from an explicit directory.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// ResolveSnapshotDir returns the configured snapshot directory with a
// leading ~ expanded, falling back to <dataDir>/snapshots when unset.
func (c *Config) ResolveSnapshotDir(dataDir string) string {
	if c.SnapshotDir == "" {
		return filepath.Join(dataDir, "snapshots")
	}
	return expandHome(c.SnapshotDir)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fsprobe", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "fsprobe", "config.yaml")
	}

	return filepath.Join(home, ".config", "fsprobe", "config.yaml")
}
