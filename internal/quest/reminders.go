package quest

import (
	"context"
	"time"

	"lifetracker/internal/store"
)

func validReminderTime(hhmm string) bool {
	_, err := time.Parse(TimeFormat, hhmm)
	return err == nil
}

// AddReminder creates a reminder, drawing its id from the same global
// counter as quests.
func (s *Service) AddReminder(ctx context.Context, draft ReminderDraft) (*store.Reminder, error) {
	title, err := normalizeTitle(draft.Title)
	if err != nil {
		return nil, err
	}
	if !validReminderTime(draft.Time) {
		return nil, ValidationError{Field: "time", Reason: "must be HH:MM"}
	}

	reminders, err := s.store.Reminders(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.GenerateID(ctx)
	if err != nil {
		return nil, err
	}

	r := &store.Reminder{
		ID:         id,
		Title:      title,
		Time:       draft.Time,
		RepeatDays: draft.RepeatDays,
		Active:     true,
	}
	reminders = append(reminders, r)
	if err := s.store.SaveReminders(ctx, reminders); err != nil {
		return nil, err
	}
	return r, nil
}

// ListReminders returns all reminders.
func (s *Service) ListReminders(ctx context.Context) ([]*store.Reminder, error) {
	return s.store.Reminders(ctx)
}

// UpdateReminder applies the patch to the matching reminder. Returns
// (nil, nil) when the id is unknown.
func (s *Service) UpdateReminder(ctx context.Context, id int64, patch ReminderPatch) (*store.Reminder, error) {
	reminders, err := s.store.Reminders(ctx)
	if err != nil {
		return nil, err
	}
	var r *store.Reminder
	for _, cand := range reminders {
		if cand.ID == id {
			r = cand
			break
		}
	}
	if r == nil {
		return nil, nil
	}

	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		r.Title = title
	}
	if patch.Time != nil {
		if !validReminderTime(*patch.Time) {
			return nil, ValidationError{Field: "time", Reason: "must be HH:MM"}
		}
		r.Time = *patch.Time
	}
	if patch.RepeatDays != nil {
		r.RepeatDays = *patch.RepeatDays
	}
	if patch.Active != nil {
		r.Active = *patch.Active
	}

	if err := s.store.SaveReminders(ctx, reminders); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReminder removes a reminder by id; false when absent.
func (s *Service) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	reminders, err := s.store.Reminders(ctx)
	if err != nil {
		return false, err
	}
	for i, r := range reminders {
		if r.ID == id {
			reminders = append(reminders[:i], reminders[i+1:]...)
			if err := s.store.SaveReminders(ctx, reminders); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// CheckDueReminders returns the reminders due right now and stamps them as
// triggered so a 60-second poll loop cannot re-fire them within the same
// day. One-time reminders deactivate after firing.
func (s *Service) CheckDueReminders(ctx context.Context) ([]*store.Reminder, error) {
	reminders, err := s.store.Reminders(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	today := now.Format(DateFormat)
	clock := now.Format(TimeFormat)
	weekday := now.Format("Mon")

	var due []*store.Reminder
	for _, r := range reminders {
		if !r.Active || r.LastTriggered == today {
			continue
		}
		if len(r.RepeatDays) > 0 && !containsDay(r.RepeatDays, weekday) {
			continue
		}
		if r.Time > clock {
			continue
		}
		r.LastTriggered = today
		if len(r.RepeatDays) == 0 {
			r.Active = false
		}
		due = append(due, r)
	}

	if len(due) > 0 {
		if err := s.store.SaveReminders(ctx, reminders); err != nil {
			return nil, err
		}
	}
	return due, nil
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
