package quest

import (
	"context"

	"lifetracker/internal/store"
)

// RecountDayLog recomputes today's quest totals from the daily partition and
// overwrites the day-log entry. This is always a full recount, never an
// increment, so the invariant quests_completed <= quests_total holds by
// construction. Quests skipped today are not counted as eligible.
func (s *Service) RecountDayLog(ctx context.Context) error {
	doc, err := s.store.Quests(ctx)
	if err != nil {
		return err
	}
	logs, err := s.store.Logs(ctx)
	if err != nil {
		return err
	}
	today := s.today()

	total, completed := 0, 0
	for _, q := range doc.Daily {
		if q.SkippedOn(today) {
			continue
		}
		total++
		if q.IsComplete() {
			completed++
		}
	}

	entry := logs[today]
	if entry == nil {
		entry = &store.DayLog{}
		logs[today] = entry
	}
	entry.QuestsTotal = total
	entry.QuestsCompleted = completed

	return s.store.SaveLogs(ctx, logs)
}
