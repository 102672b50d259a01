// Package store persists each logical domain (settings, quests, logs,
// reminders) as one JSON file, loaded lazily and cached until invalidated.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Domain names one persisted collection.
type Domain string

const (
	DomainSettings  Domain = "settings"
	DomainQuests    Domain = "quests"
	DomainLogs      Domain = "logs"
	DomainReminders Domain = "reminders"
)

// Domains lists every persisted domain.
var Domains = []Domain{DomainSettings, DomainQuests, DomainLogs, DomainReminders}

func (d Domain) IsValid() bool {
	switch d {
	case DomainSettings, DomainQuests, DomainLogs, DomainReminders:
		return true
	default:
		return false
	}
}

func (d Domain) filename() string { return string(d) + ".json" }

// DefaultDir returns the default data directory, honoring LIFETRACKER_DATA.
func DefaultDir() (string, error) {
	if dir := os.Getenv("LIFETRACKER_DATA"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".lifetracker"), nil
}

// Store owns the per-domain document caches. All mutation flows through
// load → mutate → save on a single logical thread of control; a genuinely
// concurrent caller would need a per-domain mutex on top.
type Store struct {
	dir string
	log *zap.Logger

	settings  *Settings
	quests    *Quests
	logs      Logs
	reminders []*Reminder
	hasLogs   bool
	hasRems   bool
}

// New opens a store rooted at dir, creating the directory if needed.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(d Domain) string { return filepath.Join(s.dir, d.filename()) }

// readDomain unmarshals a domain file into v. A missing file is not an
// error; the caller keeps its defaults and ok reports whether a file existed.
func (s *Store) readDomain(ctx context.Context, d Domain, v any) (ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := os.ReadFile(s.path(d))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", d, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", d, err)
	}
	return true, nil
}

// writeDomain marshals v and writes it through a temp file + rename so a
// crash mid-write never truncates the previous file.
func (s *Store) writeDomain(ctx context.Context, d Domain, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d, err)
	}
	final := s.path(d)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error("domain write failed", zap.String("domain", string(d)), zap.Error(err))
		return fmt.Errorf("write %s: %w", d, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		s.log.Error("domain rename failed", zap.String("domain", string(d)), zap.Error(err))
		return fmt.Errorf("replace %s: %w", d, err)
	}
	return nil
}

// Settings returns the cached settings document, loading it on first access.
// A missing file yields defaults.
func (s *Store) Settings(ctx context.Context) (*Settings, error) {
	if s.settings != nil {
		return s.settings, nil
	}
	doc := defaultSettings()
	if _, err := s.readDomain(ctx, DomainSettings, doc); err != nil {
		return nil, err
	}
	// Defaults for lists that older files may lack.
	if len(doc.EnergyCategories) == 0 {
		doc.EnergyCategories = defaultSettings().EnergyCategories
	}
	if len(doc.TimeSlots) == 0 {
		doc.TimeSlots = defaultSettings().TimeSlots
	}
	if len(doc.QuestCategories) == 0 {
		doc.QuestCategories = defaultSettings().QuestCategories
	}
	s.settings = doc
	return doc, nil
}

// SaveSettings stores the document in the cache and writes it through. The
// cache keeps the new value even when the write fails, so an in-memory
// update is never silently lost; the error still surfaces to the caller.
func (s *Store) SaveSettings(ctx context.Context, doc *Settings) error {
	s.settings = doc
	return s.writeDomain(ctx, DomainSettings, doc)
}

// Quests returns the cached quests document, loading it on first access.
func (s *Store) Quests(ctx context.Context) (*Quests, error) {
	if s.quests != nil {
		return s.quests, nil
	}
	doc := defaultQuests()
	if _, err := s.readDomain(ctx, DomainQuests, doc); err != nil {
		return nil, err
	}
	if doc.Daily == nil {
		doc.Daily = []*Quest{}
	}
	if doc.Weekly == nil {
		doc.Weekly = []*Quest{}
	}
	if doc.Monthly == nil {
		doc.Monthly = []*Quest{}
	}
	s.quests = doc
	return doc, nil
}

func (s *Store) SaveQuests(ctx context.Context, doc *Quests) error {
	s.quests = doc
	return s.writeDomain(ctx, DomainQuests, doc)
}

// Logs returns the cached daily-log document, loading it on first access.
func (s *Store) Logs(ctx context.Context) (Logs, error) {
	if s.hasLogs {
		return s.logs, nil
	}
	doc := defaultLogs()
	if _, err := s.readDomain(ctx, DomainLogs, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = defaultLogs()
	}
	s.logs = doc
	s.hasLogs = true
	return doc, nil
}

func (s *Store) SaveLogs(ctx context.Context, doc Logs) error {
	s.logs = doc
	s.hasLogs = true
	return s.writeDomain(ctx, DomainLogs, doc)
}

// Reminders returns the cached reminders document, loading it on first access.
func (s *Store) Reminders(ctx context.Context) ([]*Reminder, error) {
	if s.hasRems {
		return s.reminders, nil
	}
	doc := defaultReminders()
	if _, err := s.readDomain(ctx, DomainReminders, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = defaultReminders()
	}
	s.reminders = doc
	s.hasRems = true
	return doc, nil
}

func (s *Store) SaveReminders(ctx context.Context, doc []*Reminder) error {
	s.reminders = doc
	s.hasRems = true
	return s.writeDomain(ctx, DomainReminders, doc)
}

// FlushAll forces every cached domain to disk. Used before shutdown and
// before taking a backup snapshot.
func (s *Store) FlushAll(ctx context.Context) error {
	if s.settings != nil {
		if err := s.writeDomain(ctx, DomainSettings, s.settings); err != nil {
			return err
		}
	}
	if s.quests != nil {
		if err := s.writeDomain(ctx, DomainQuests, s.quests); err != nil {
			return err
		}
	}
	if s.hasLogs {
		if err := s.writeDomain(ctx, DomainLogs, s.logs); err != nil {
			return err
		}
	}
	if s.hasRems {
		if err := s.writeDomain(ctx, DomainReminders, s.reminders); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate drops one domain's cache so the next access rereads disk.
func (s *Store) Invalidate(d Domain) {
	switch d {
	case DomainSettings:
		s.settings = nil
	case DomainQuests:
		s.quests = nil
	case DomainLogs:
		s.logs = nil
		s.hasLogs = false
	case DomainReminders:
		s.reminders = nil
		s.hasRems = false
	}
}

// InvalidateAll drops every domain cache.
func (s *Store) InvalidateAll() {
	for _, d := range Domains {
		s.Invalidate(d)
	}
}

// GenerateID returns the next id from the persisted monotonic counter. The
// new counter value is written before the id is handed out, so no two calls
// ever return the same id, even across process restarts.
func (s *Store) GenerateID(ctx context.Context) (int64, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return 0, err
	}
	settings.LastGeneratedID++
	if err := s.SaveSettings(ctx, settings); err != nil {
		return 0, fmt.Errorf("persist id counter: %w", err)
	}
	return settings.LastGeneratedID, nil
}
