package quest

import (
	"context"
	"fmt"

	"lifetracker/internal/store"
)

// CompleteQuest marks a binary quest done for today. Completion stamps the
// date, bumps the per-quest and global streaks and recounts today's day log.
// Returns (nil, nil) when the id is not in the partition.
func (s *Service) CompleteQuest(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return nil, nil
	}
	if q.IsProgressive {
		return nil, ValidationError{Field: "id", Reason: "progressive quests complete through their counter"}
	}
	today, yesterday := s.today(), s.yesterday()
	// Completed yesterday is not completed today; only a same-day repeat
	// is a no-op.
	if q.Completed && q.CompletedDate == today {
		return q, nil
	}

	// The streak check must read the previous stamp before overwriting it.
	bumpQuestStreak(q, yesterday)
	q.Completed = true
	q.CompletedDate = today

	if err := s.bumpGlobalStreak(ctx); err != nil {
		return nil, err
	}
	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.RecountDayLog(ctx); err != nil {
		return nil, err
	}
	s.log.Info("quest completed", zapQuest(typ, id))
	return q, nil
}

// UncompleteQuest clears a binary quest's completion for today. It does not
// reverse the streak increments that happened on completion; undo is rare
// and streak history is not fully reversible.
func (s *Service) UncompleteQuest(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return nil, nil
	}
	if q.IsProgressive {
		return nil, ValidationError{Field: "id", Reason: "progressive quests complete through their counter"}
	}
	if !q.Completed {
		return q, nil
	}

	q.Completed = false
	q.CompletedDate = ""

	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.RecountDayLog(ctx); err != nil {
		return nil, err
	}
	s.log.Info("quest uncompleted", zapQuest(typ, id))
	return q, nil
}

// SkipQuest marks a quest skipped for today. The stamp is transient: it only
// applies while it equals the current date and is never proactively cleared
// on day rollover.
func (s *Service) SkipQuest(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return nil, nil
	}
	q.SkippedDate = s.today()
	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.RecountDayLog(ctx); err != nil {
		return nil, err
	}
	return q, nil
}

// UnskipQuest removes today's skip stamp if present.
func (s *Service) UnskipQuest(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	if !typ.IsValid() {
		return nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return nil, nil
	}
	if q.SkippedOn(s.today()) {
		q.SkippedDate = ""
		if err := s.saveQuests(ctx, doc); err != nil {
			return nil, err
		}
		if err := s.RecountDayLog(ctx); err != nil {
			return nil, err
		}
	}
	return q, nil
}
