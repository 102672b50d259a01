package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifetracker/internal/store"
)

const (
	manualPrefix = "lifetracker_backup_"
	autoPrefix   = "lifetracker_auto_"
)

type Manager struct {
	store *store.Store
	dir   string
	log   *zap.Logger

	Now func() time.Time
}

// NewManager creates a backup manager writing into dir.
func NewManager(st *store.Store, dir string, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &Manager{store: st, dir: dir, log: log, Now: time.Now}, nil
}

// Dir returns the backup directory.
func (m *Manager) Dir() string { return m.dir }

// Create flushes every cached domain to disk first, so the snapshot is a
// consistent point-in-time image, then gathers each domain.
func (m *Manager) Create(ctx context.Context) (*Snapshot, error) {
	if err := m.store.FlushAll(ctx); err != nil {
		return nil, err
	}
	settings, err := m.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := m.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := m.store.Logs(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := m.store.Reminders(ctx)
	if err != nil {
		return nil, err
	}

	now := m.Now()
	return &Snapshot{
		Version:   Version,
		CreatedAt: now.Format(time.RFC3339),
		Timestamp: now.Unix(),
		Data: Payload{
			Settings:        settings,
			PersistentNotes: settings.PersistentNotes,
			Quests:          quests,
			Logs:            logs,
			Reminders:       reminders,
		},
	}, nil
}

// sanitizeFilename strips path separators and ".." sequences from a
// user-supplied name and forces a .json extension. An empty result after
// stripping is rejected.
func sanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	name = strings.ReplaceAll(name, "..", "")
	if strings.TrimSuffix(name, ".json") == "" {
		return "", ValidationErrorf("filename empty after sanitizing")
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name, nil
}

// ValidationErrorf keeps filename failures in the schema-error taxonomy.
func ValidationErrorf(format string, args ...any) error {
	return SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// ExportToFile snapshots all domains and writes them to the backup
// directory. The write goes through a temp file that is renamed over the
// final path only once it is verified; any earlier backup at that path is
// intact until the rename lands, and a failure at any step removes the
// temp file.
func (m *Manager) ExportToFile(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("%s%d.json", manualPrefix, m.Now().Unix())
	}
	filename, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	snap, err := m.Create(ctx)
	if err != nil {
		return "", err
	}
	final := filepath.Join(m.dir, filename)
	if err := m.writeSnapshotFile(final, snap); err != nil {
		return "", err
	}
	m.log.Info("backup exported", zap.String("path", final))
	return final, nil
}

func (m *Manager) writeSnapshotFile(final string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if _, err := os.Stat(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("verify backup: %w", err)
	}
	if err := os.Remove(final); err != nil && !os.IsNotExist(err) {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace backup: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize backup: %w", err)
	}
	return nil
}

// Restore validates the snapshot, invalidates every domain cache before any
// write (a partially-failing restore must not leave stale cached data mixed
// with fresh disk data), then writes each present section through the store.
func (m *Manager) Restore(ctx context.Context, snap *Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}

	m.store.InvalidateAll()

	if snap.Data.Settings != nil {
		settings := snap.Data.Settings
		if snap.Data.PersistentNotes != "" {
			settings.PersistentNotes = snap.Data.PersistentNotes
		}
		if err := m.store.SaveSettings(ctx, settings); err != nil {
			return err
		}
	} else if snap.Data.PersistentNotes != "" {
		settings, err := m.store.Settings(ctx)
		if err != nil {
			return err
		}
		settings.PersistentNotes = snap.Data.PersistentNotes
		if err := m.store.SaveSettings(ctx, settings); err != nil {
			return err
		}
	}
	if snap.Data.Quests != nil {
		if err := m.store.SaveQuests(ctx, snap.Data.Quests); err != nil {
			return err
		}
	}
	if snap.Data.Logs != nil {
		if err := m.store.SaveLogs(ctx, snap.Data.Logs); err != nil {
			return err
		}
	}
	if snap.Data.Reminders != nil {
		if err := m.store.SaveReminders(ctx, snap.Data.Reminders); err != nil {
			return err
		}
	}
	m.log.Info("backup restored", zap.Int("version", snap.Version))
	return nil
}

// ValidBackupPath reports whether path resolves inside the backup directory
// with no ".." segment in the remainder. Both explicit user-chosen paths and
// programmatically listed ones go through this check.
func (m *Manager) ValidBackupPath(path string) bool {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(m.dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// ImportFromFile restores from a backup file. The path is confined to the
// backup directory before the file is even opened.
func (m *Manager) ImportFromFile(ctx context.Context, path string) error {
	if !m.ValidBackupPath(path) {
		return PathError{Path: path, Reason: "outside the backup directory"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return err
	}
	if err := m.Restore(ctx, snap); err != nil {
		return err
	}
	m.log.Info("backup imported", zap.String("path", path))
	return nil
}

// Info describes one backup file.
type Info struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	Auto    bool
}

// List returns the backup files in the directory, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	var out []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:    e.Name(),
			Path:    filepath.Join(m.dir, e.Name()),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
			Auto:    strings.HasPrefix(e.Name(), autoPrefix),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out, nil
}

// AutoBackup writes at most one automatic backup per calendar day (the date
// is embedded in the filename; an existing file is a no-op guard, not a
// lock) and prunes automatic backups beyond maxKeep, oldest first.
func (m *Manager) AutoBackup(ctx context.Context, maxKeep int) error {
	name := fmt.Sprintf("%s%s.json", autoPrefix, m.Now().Format("20060102"))
	final := filepath.Join(m.dir, name)
	if _, err := os.Stat(final); os.IsNotExist(err) {
		if _, err := m.ExportToFile(ctx, name); err != nil {
			return err
		}
	}
	return m.pruneAuto(maxKeep)
}

func (m *Manager) pruneAuto(maxKeep int) error {
	if maxKeep < 1 {
		maxKeep = 1
	}
	all, err := m.List()
	if err != nil {
		return err
	}
	var auto []Info
	for _, b := range all {
		if b.Auto {
			auto = append(auto, b)
		}
	}
	// Oldest first for deletion.
	sort.Slice(auto, func(i, j int) bool { return auto[i].ModTime.Before(auto[j].ModTime) })
	for len(auto) > maxKeep {
		victim := auto[0]
		auto = auto[1:]
		if err := os.Remove(victim.Path); err != nil {
			return fmt.Errorf("prune backup: %w", err)
		}
		m.log.Info("auto backup pruned", zap.String("path", victim.Path))
	}
	return nil
}
