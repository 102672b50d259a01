package quest

import (
	"context"

	"lifetracker/internal/store"
)

// bumpQuestStreak advances a quest's consecutive-day counter based on its
// previous completion stamp: yesterday extends the run, anything else (a
// gap, or no prior completion) restarts it at 1.
func bumpQuestStreak(q *store.Quest, yesterday string) {
	if q.CompletedDate == yesterday {
		q.Streak++
		return
	}
	q.Streak = 1
}

// bumpGlobalStreak advances the cross-quest streak in settings. It applies
// at most once per calendar day no matter how many quests complete: the
// first completion of the day moves the streak, the rest are no-ops.
func (s *Service) bumpGlobalStreak(ctx context.Context) error {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	today, yesterday := s.today(), s.yesterday()

	sd := &settings.StreakData
	switch sd.LastCompletedDate {
	case today:
		return nil
	case yesterday:
		sd.Current++
	default:
		sd.Current = 1
	}
	if sd.Current > sd.Longest {
		sd.Longest = sd.Current
	}
	sd.LastCompletedDate = today
	return s.store.SaveSettings(ctx, settings)
}

// GlobalStreak returns the cross-quest streak data.
func (s *Service) GlobalStreak(ctx context.Context) (store.StreakData, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return store.StreakData{}, err
	}
	return settings.StreakData, nil
}
