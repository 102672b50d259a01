package quest

import (
	"context"
	"testing"
	"time"

	"lifetracker/internal/store"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()

	st, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc := NewService(st, nil)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := &now
	svc.Now = func() time.Time { return *clock }
	return svc, clock
}

func addBinary(t *testing.T, svc *Service, typ Type, title string) *store.Quest {
	t.Helper()
	q, err := svc.AddQuest(context.Background(), typ, Draft{Title: title})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	return q
}

func TestAddQuestDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addBinary(t, svc, TypeDaily, "Meditate")
	if q.ID <= 0 {
		t.Fatalf("id=%d, want positive", q.ID)
	}
	if q.Created != "2026-03-10" {
		t.Fatalf("created=%q, want 2026-03-10", q.Created)
	}
	if q.IsComplete() || q.Streak != 0 {
		t.Fatalf("new quest should start incomplete with zero streak")
	}

	if _, err := svc.AddQuest(ctx, TypeDaily, Draft{Title: "   "}); err == nil {
		t.Fatalf("expected validation error for blank title")
	}
	if _, err := svc.AddQuest(ctx, TypeDaily, Draft{Title: "Read", IsProgressive: true}); err == nil {
		t.Fatalf("expected validation error for progressive target < 1")
	}
}

func TestUnknownTypeRejectedEverywhere(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// An unknown partition must never silently fall back to daily.
	q := addBinary(t, svc, TypeDaily, "Real")
	bad := Type("yearly")

	ops := map[string]func() error{
		"complete":   func() error { _, err := svc.CompleteQuest(ctx, bad, q.ID); return err },
		"uncomplete": func() error { _, err := svc.UncompleteQuest(ctx, bad, q.ID); return err },
		"skip":       func() error { _, err := svc.SkipQuest(ctx, bad, q.ID); return err },
		"unskip":     func() error { _, err := svc.UnskipQuest(ctx, bad, q.ID); return err },
		"increment":  func() error { _, err := svc.IncrementProgress(ctx, bad, q.ID); return err },
		"decrement":  func() error { _, err := svc.DecrementProgress(ctx, bad, q.ID); return err },
		"set":        func() error { _, err := svc.SetProgress(ctx, bad, q.ID, 1); return err },
	}
	for name, op := range ops {
		err := op()
		if _, ok := err.(ValidationError); !ok {
			t.Fatalf("%s with unknown type: err=%v, want ValidationError", name, err)
		}
	}

	got, _ := svc.GetQuest(ctx, TypeDaily, q.ID)
	if got.IsComplete() || got.SkippedDate != "" {
		t.Fatalf("daily quest was mutated through an unknown type: %+v", got)
	}
}

func TestUpdateQuestPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addBinary(t, svc, TypeWeekly, "Clean desk")

	title := "Clean whole desk"
	cat := "Home"
	got, err := svc.UpdateQuest(ctx, TypeWeekly, q.ID, Patch{Title: &title, Category: &cat})
	if err != nil {
		t.Fatalf("UpdateQuest: %v", err)
	}
	if got.Title != title || got.Category != cat {
		t.Fatalf("patch not applied: %+v", got)
	}

	missing, err := svc.UpdateQuest(ctx, TypeWeekly, 9999, Patch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateQuest missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestDeleteQuestIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q1 := addBinary(t, svc, TypeDaily, "One")
	addBinary(t, svc, TypeDaily, "Two")

	before, _ := svc.Quests(ctx, TypeDaily)
	removed, err := svc.DeleteQuest(ctx, TypeDaily, q1.ID)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = svc.DeleteQuest(ctx, TypeDaily, q1.ID)
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v, want false nil", removed, err)
	}
	after, _ := svc.Quests(ctx, TypeDaily)
	if len(after) != len(before)-1 {
		t.Fatalf("partition length %d, want %d", len(after), len(before)-1)
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	q := addBinary(t, svc, TypeDaily, "Run")

	for day := 0; day < 3; day++ {
		if _, err := svc.CompleteQuest(ctx, TypeDaily, q.ID); err != nil {
			t.Fatalf("complete day %d: %v", day, err)
		}
		*clock = clock.AddDate(0, 0, 1)
	}
	got, _ := svc.GetQuest(ctx, TypeDaily, q.ID)
	if got.Streak != 3 {
		t.Fatalf("streak=%d after 3 consecutive days, want 3", got.Streak)
	}

	// Skip a day, then complete: the run restarts at 1.
	*clock = clock.AddDate(0, 0, 1)
	if _, err := svc.CompleteQuest(ctx, TypeDaily, q.ID); err != nil {
		t.Fatalf("complete after gap: %v", err)
	}
	got, _ = svc.GetQuest(ctx, TypeDaily, q.ID)
	if got.Streak != 1 {
		t.Fatalf("streak=%d after gap, want 1", got.Streak)
	}
}

func TestGlobalStreakOncePerDay(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	a := addBinary(t, svc, TypeDaily, "A")
	b := addBinary(t, svc, TypeDaily, "B")

	if _, err := svc.CompleteQuest(ctx, TypeDaily, a.ID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if _, err := svc.CompleteQuest(ctx, TypeDaily, b.ID); err != nil {
		t.Fatalf("complete b: %v", err)
	}
	sd, _ := svc.GlobalStreak(ctx)
	if sd.Current != 1 {
		t.Fatalf("global current=%d after two completions same day, want 1", sd.Current)
	}

	*clock = clock.AddDate(0, 0, 1)
	if _, err := svc.CompleteQuest(ctx, TypeDaily, a.ID); err != nil {
		t.Fatalf("complete next day: %v", err)
	}
	sd, _ = svc.GlobalStreak(ctx)
	if sd.Current != 2 || sd.Longest != 2 {
		t.Fatalf("global streak=%+v, want current=2 longest=2", sd)
	}
}

func TestUncompleteKeepsStreak(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q := addBinary(t, svc, TypeDaily, "Stretch")
	if _, err := svc.CompleteQuest(ctx, TypeDaily, q.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := svc.UncompleteQuest(ctx, TypeDaily, q.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if got.IsComplete() || got.CompletedDate != "" {
		t.Fatalf("quest still complete after undo: %+v", got)
	}
	// Undo does not reverse the streak increment.
	if got.Streak != 1 {
		t.Fatalf("streak=%d after undo, want 1", got.Streak)
	}
	sd, _ := svc.GlobalStreak(ctx)
	if sd.Current != 1 {
		t.Fatalf("global streak=%d after undo, want 1", sd.Current)
	}
}

func TestProgressiveScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q, err := svc.AddQuest(ctx, TypeDaily, Draft{
		Title:          "Read",
		IsProgressive:  true,
		ProgressTarget: 10,
		ProgressUnit:   "pages",
	})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}

	for i := 0; i < 10; i++ {
		if _, err := svc.IncrementProgress(ctx, TypeDaily, q.ID); err != nil {
			t.Fatalf("increment %d: %v", i+1, err)
		}
	}
	got, _ := svc.GetQuest(ctx, TypeDaily, q.ID)
	if !got.IsComplete() {
		t.Fatalf("quest not complete at %d/%d", got.ProgressCurrent, got.ProgressTarget)
	}
	if got.CompletedDate != "2026-03-10" {
		t.Fatalf("completed_date=%q, want today", got.CompletedDate)
	}

	got, err = svc.DecrementProgress(ctx, TypeDaily, q.ID)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if got.IsComplete() || got.ProgressCurrent != 9 {
		t.Fatalf("after decrement: complete=%v current=%d, want false 9", got.IsComplete(), got.ProgressCurrent)
	}

	if _, err := svc.CompleteQuest(ctx, TypeDaily, q.ID); err == nil {
		t.Fatalf("expected error completing a progressive quest directly")
	}
}

func TestSetProgressClamps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q, err := svc.AddQuest(ctx, TypeDaily, Draft{Title: "Walk", IsProgressive: true, ProgressTarget: 5, ProgressUnit: "km"})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}

	got, _ := svc.SetProgress(ctx, TypeDaily, q.ID, -42)
	if got.ProgressCurrent != 0 {
		t.Fatalf("SetProgress(-42): current=%d, want 0", got.ProgressCurrent)
	}
	got, _ = svc.SetProgress(ctx, TypeDaily, q.ID, 1000)
	if got.ProgressCurrent != 5 {
		t.Fatalf("SetProgress(1000): current=%d, want clamped to target 5", got.ProgressCurrent)
	}
	if !got.IsComplete() {
		t.Fatalf("quest should be complete at target")
	}
}

func TestLazyDailyReset(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	q, err := svc.AddQuest(ctx, TypeDaily, Draft{Title: "Pushups", IsProgressive: true, ProgressTarget: 20})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	if _, err := svc.SetProgress(ctx, TypeDaily, q.ID, 15); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	// First touch of the next day resets before applying the delta.
	*clock = clock.AddDate(0, 0, 1)
	got, err := svc.IncrementProgress(ctx, TypeDaily, q.ID)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if got.ProgressCurrent != 1 {
		t.Fatalf("current=%d after day rollover, want 1", got.ProgressCurrent)
	}
}

func TestResetDailyProgressBatch(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	q1, _ := svc.AddQuest(ctx, TypeDaily, Draft{Title: "P1", IsProgressive: true, ProgressTarget: 3})
	q2, _ := svc.AddQuest(ctx, TypeWeekly, Draft{Title: "P2", IsProgressive: true, ProgressTarget: 3})
	for i := 0; i < 3; i++ {
		if _, err := svc.IncrementProgress(ctx, TypeDaily, q1.ID); err != nil {
			t.Fatalf("increment q1: %v", err)
		}
		if _, err := svc.IncrementProgress(ctx, TypeWeekly, q2.ID); err != nil {
			t.Fatalf("increment q2: %v", err)
		}
	}

	*clock = clock.AddDate(0, 0, 1)
	if err := svc.ResetDailyProgress(ctx); err != nil {
		t.Fatalf("ResetDailyProgress: %v", err)
	}
	for _, tc := range []struct {
		typ Type
		id  int64
	}{{TypeDaily, q1.ID}, {TypeWeekly, q2.ID}} {
		got, _ := svc.GetQuest(ctx, tc.typ, tc.id)
		if got.ProgressCurrent != 0 || got.IsComplete() {
			t.Fatalf("%s/%d not reset: current=%d complete=%v", tc.typ, tc.id, got.ProgressCurrent, got.IsComplete())
		}
	}
}

func TestEnergyMatching(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	any := addBinary(t, svc, TypeDaily, "Anything")
	lowOnly, err := svc.AddQuest(ctx, TypeDaily, Draft{Title: "Rest", EnergyRequired: []string{"Low"}})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}

	// Default categories rank "High" first, so high energy shows everything.
	got, err := svc.QuestsForEnergy(ctx, TypeDaily, "High")
	if err != nil {
		t.Fatalf("QuestsForEnergy: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("high energy matched %d quests, want 2", len(got))
	}

	got, _ = svc.QuestsForEnergy(ctx, TypeDaily, "Medium")
	if len(got) != 1 || got[0].ID != any.ID {
		t.Fatalf("medium energy should match only the unrestricted quest")
	}

	got, _ = svc.QuestsForEnergy(ctx, TypeDaily, "Low")
	if len(got) != 2 {
		t.Fatalf("low energy should match membership quest too, got %d", len(got))
	}
	_ = lowOnly
}

func TestDayLogRecount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := addBinary(t, svc, TypeDaily, "A")
	b := addBinary(t, svc, TypeDaily, "B")
	c := addBinary(t, svc, TypeDaily, "C")

	if _, err := svc.CompleteQuest(ctx, TypeDaily, a.ID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if _, err := svc.SkipQuest(ctx, TypeDaily, b.ID); err != nil {
		t.Fatalf("skip b: %v", err)
	}

	logs, err := svc.Store().Logs(ctx)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	entry := logs["2026-03-10"]
	if entry == nil {
		t.Fatalf("no day log for today")
	}
	// c pending, a complete, b skipped and excluded from the count.
	if entry.QuestsTotal != 2 || entry.QuestsCompleted != 1 {
		t.Fatalf("day log %d/%d, want 1/2", entry.QuestsCompleted, entry.QuestsTotal)
	}
	if entry.QuestsCompleted > entry.QuestsTotal {
		t.Fatalf("completed exceeds total")
	}
	_ = c
}

func TestReminderDueCheck(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	// 2026-03-10 is a Tuesday.
	weekly, err := svc.AddReminder(ctx, ReminderDraft{Title: "Standup", Time: "09:30", RepeatDays: []string{"Tue"}})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	once, err := svc.AddReminder(ctx, ReminderDraft{Title: "Dentist", Time: "11:00"})
	if err != nil {
		t.Fatalf("AddReminder: %v", err)
	}
	if _, err := svc.AddReminder(ctx, ReminderDraft{Title: "Bad", Time: "25:99"}); err == nil {
		t.Fatalf("expected validation error for malformed time")
	}

	due, err := svc.CheckDueReminders(ctx)
	if err != nil {
		t.Fatalf("CheckDueReminders: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due=%d at 12:00, want 2", len(due))
	}

	// Same-day re-check never re-fires.
	due, _ = svc.CheckDueReminders(ctx)
	if len(due) != 0 {
		t.Fatalf("re-check fired %d reminders, want 0", len(due))
	}

	// Next Tuesday the weekly fires again; the one-time stays inactive.
	*clock = clock.AddDate(0, 0, 7)
	due, _ = svc.CheckDueReminders(ctx)
	if len(due) != 1 || due[0].ID != weekly.ID {
		t.Fatalf("expected only the weekly reminder, got %d", len(due))
	}
	_ = once
}
