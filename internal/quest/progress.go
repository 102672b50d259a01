package quest

import (
	"context"
	"fmt"

	"lifetracker/internal/store"
)

// lazyDailyReset zeroes a progressive quest's counter on its first touch of
// a new day. There is no background job; every progress mutation performs
// this check before applying its delta.
func lazyDailyReset(q *store.Quest, today string) {
	if q.ProgressLastDate != today {
		q.ProgressCurrent = 0
		q.ProgressLastDate = today
	}
}

func (s *Service) progressive(ctx context.Context, typ Type, id int64) (*store.Quests, *store.Quest, error) {
	if !typ.IsValid() {
		return nil, nil, ValidationError{Field: "type", Reason: fmt.Sprintf("unknown quest type %q", typ)}
	}
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return nil, nil, err
	}
	q := findQuest(*partition(doc, typ), id)
	if q == nil {
		return doc, nil, nil
	}
	if !q.IsProgressive {
		return nil, nil, ValidationError{Field: "id", Reason: "quest is not progressive"}
	}
	return doc, q, nil
}

// applyProgress runs mutate between the lazy daily reset and the
// completion-transition bookkeeping shared by all three progress operations.
func (s *Service) applyProgress(ctx context.Context, typ Type, id int64, mutate func(q *store.Quest)) (*store.Quest, error) {
	doc, q, err := s.progressive(ctx, typ, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}

	today, yesterday := s.today(), s.yesterday()
	lazyDailyReset(q, today)

	wasComplete := q.IsComplete()
	mutate(q)
	if q.ProgressCurrent < 0 {
		q.ProgressCurrent = 0
	}
	nowComplete := q.IsComplete()

	switch {
	case nowComplete && !wasComplete:
		bumpQuestStreak(q, yesterday)
		q.CompletedDate = today
		if err := s.bumpGlobalStreak(ctx); err != nil {
			return nil, err
		}
	case wasComplete && !nowComplete:
		q.CompletedDate = ""
	}

	if err := s.saveQuests(ctx, doc); err != nil {
		return nil, err
	}
	if nowComplete != wasComplete {
		if err := s.RecountDayLog(ctx); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// IncrementProgress adds one to a progressive quest's counter. There is no
// upper clamp; reaching the target completes the quest instead.
func (s *Service) IncrementProgress(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	return s.applyProgress(ctx, typ, id, func(q *store.Quest) {
		q.ProgressCurrent++
	})
}

// DecrementProgress subtracts one, clamping at zero.
func (s *Service) DecrementProgress(ctx context.Context, typ Type, id int64) (*store.Quest, error) {
	return s.applyProgress(ctx, typ, id, func(q *store.Quest) {
		q.ProgressCurrent--
	})
}

// SetProgress sets the counter directly, clamped to [0, target] regardless
// of the input's sign or magnitude.
func (s *Service) SetProgress(ctx context.Context, typ Type, id int64, value int) (*store.Quest, error) {
	return s.applyProgress(ctx, typ, id, func(q *store.Quest) {
		if value < 0 {
			value = 0
		}
		if value > q.ProgressTarget {
			value = q.ProgressTarget
		}
		q.ProgressCurrent = value
	})
}

// ResetDailyProgress zeroes every progressive quest whose counter was last
// touched before today, across all partitions. The per-mutation lazy reset
// makes this a cleanup convenience, not the sole reset mechanism.
func (s *Service) ResetDailyProgress(ctx context.Context) error {
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return err
	}
	today := s.today()

	dirty := false
	for _, typ := range Types {
		for _, q := range *partition(doc, typ) {
			if !q.IsProgressive || q.ProgressLastDate == today {
				continue
			}
			lazyDailyReset(q, today)
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return s.saveQuests(ctx, doc)
}
