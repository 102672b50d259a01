// Package config loads the application configuration file with coded
// defaults. Sensitive paths can be overridden through the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all user-tunable settings outside the persisted domains.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	BackupDir      string `yaml:"backup_dir"`
	AutoBackupKeep int    `yaml:"auto_backup_keep"`

	// ReadingStatsDB points at the host reader app's statistics database.
	// Empty disables reading integration.
	ReadingStatsDB string `yaml:"reading_stats_db"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger and its rolling file sink.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultPath returns the config file location under the data directory.
func DefaultPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func dataDir() (string, error) {
	if dir := os.Getenv("LIFETRACKER_DATA"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".lifetracker"), nil
}

// Load reads the config file at path ("" for the default location). A
// missing file yields pure defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	var err error
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.DataDir == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if c.BackupDir == "" {
		c.BackupDir = filepath.Join(c.DataDir, "backups")
	}
	if c.AutoBackupKeep <= 0 {
		c.AutoBackupKeep = 7
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}
