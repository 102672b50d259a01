// Package quest implements quest lifecycle management: CRUD over the three
// cadence partitions, completion and progressive-counter state transitions,
// per-quest and global streaks, energy filtering, and reminders.
package quest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifetracker/internal/store"
)

type Service struct {
	store *store.Store
	log   *zap.Logger

	// Now is injectable so day-boundary behavior is testable.
	Now func() time.Time
}

func NewService(st *store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log, Now: time.Now}
}

// Store exposes the underlying repository (used by the backup manager and
// the aggregator through the same load/save contracts).
func (s *Service) Store() *store.Store { return s.store }

func (s *Service) today() string {
	return s.Now().Format(DateFormat)
}

func (s *Service) yesterday() string {
	return s.Now().AddDate(0, 0, -1).Format(DateFormat)
}

func zapQuest(typ Type, id int64) zap.Field {
	return zap.String("quest", fmt.Sprintf("%s/%d", typ, id))
}

func zapTitle(title string) zap.Field {
	return zap.String("title", title)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(t) > store.TitleMaxLen {
		return "", ValidationError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", store.TitleMaxLen)}
	}
	return t, nil
}

// partition returns the slice backing one quest_type partition.
func partition(doc *store.Quests, typ Type) *[]*store.Quest {
	switch typ {
	case TypeWeekly:
		return &doc.Weekly
	case TypeMonthly:
		return &doc.Monthly
	default:
		return &doc.Daily
	}
}

func findQuest(list []*store.Quest, id int64) *store.Quest {
	for _, q := range list {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// saveQuests normalizes the stored completed flag from the derived value for
// progressive quests (single call site, so exports stay readable) and writes
// the domain through.
func (s *Service) saveQuests(ctx context.Context, doc *store.Quests) error {
	for _, typ := range Types {
		for _, q := range *partition(doc, typ) {
			if q.IsProgressive {
				q.Completed = q.IsComplete()
			}
		}
	}
	return s.store.SaveQuests(ctx, doc)
}

// Quests returns one partition's quests.
func (s *Service) Quests(ctx context.Context, typ Type) ([]*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	return *partition(doc, typ), nil
}

// GetQuest returns the quest with the given id in its partition, or nil when
// no such quest exists. Absence is a value here, not an error.
func (s *Service) GetQuest(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	list, err := s.Quests(ctx, typ)
	if err != nil {
		return nil, err
	}
	return findQuest(list, id), nil
}
