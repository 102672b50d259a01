package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIFETRACKER_DATA", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "backups"), cfg.BackupDir)
	assert.Equal(t, 7, cfg.AutoBackupKeep)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.ReadingStatsDB)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /tmp/lt-data
auto_backup_keep: 3
reading_stats_db: /tmp/statistics.sqlite3
log:
  level: debug
  file: /tmp/lt.log
  max_size_mb: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lt-data", cfg.DataDir)
	// Backup dir defaults relative to the configured data dir.
	assert.Equal(t, "/tmp/lt-data/backups", cfg.BackupDir)
	assert.Equal(t, 3, cfg.AutoBackupKeep)
	assert.Equal(t, "/tmp/statistics.sqlite3", cfg.ReadingStatsDB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
