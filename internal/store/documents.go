package store

// TitleMaxLen caps quest and reminder titles.
const TitleMaxLen = 200

// Quest is one tracked quest. The three partitions (daily/weekly/monthly)
// each hold their own slice of these; an id never appears in two partitions.
type Quest struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	TimeSlot string `json:"time_slot,omitempty"`
	Category string `json:"category,omitempty"`

	// EnergyRequired lists the energy categories this quest asks for.
	// Empty means "Any".
	EnergyRequired []string `json:"energy_required,omitempty"`

	IsProgressive    bool   `json:"is_progressive,omitempty"`
	ProgressCurrent  int    `json:"progress_current,omitempty"`
	ProgressTarget   int    `json:"progress_target,omitempty"`
	ProgressUnit     string `json:"progress_unit,omitempty"`
	ProgressLastDate string `json:"progress_last_date,omitempty"`

	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completed_date,omitempty"`
	SkippedDate   string `json:"skipped_date,omitempty"`

	Streak  int    `json:"streak"`
	Created string `json:"created"`
}

// IsComplete reports completion. For progressive quests this is derived from
// the counter so no mutator has to keep a stored flag in sync.
func (q *Quest) IsComplete() bool {
	if q.IsProgressive {
		return q.ProgressTarget > 0 && q.ProgressCurrent >= q.ProgressTarget
	}
	return q.Completed
}

// SkippedOn reports whether the quest was skipped on the given date. A stale
// skip stamp from an earlier day simply stops applying; it is never cleared.
func (q *Quest) SkippedOn(date string) bool {
	return q.SkippedDate != "" && q.SkippedDate == date
}

// Quests is the quests domain document: one partition per quest cadence.
type Quests struct {
	Daily   []*Quest `json:"daily"`
	Weekly  []*Quest `json:"weekly"`
	Monthly []*Quest `json:"monthly"`
}

// EnergyEntry is one logged energy reading. Entries are append-only.
type EnergyEntry struct {
	Hour     int    `json:"hour"`
	TimeSlot string `json:"time_slot,omitempty"`
	Energy   string `json:"energy"`
}

// ReadingLog mirrors the host reader app's per-day statistics. This core only
// records the numbers; the reader's own storage is never touched.
type ReadingLog struct {
	PagesRead    int `json:"pages_read"`
	TimeSpentSec int `json:"time_spent"`
	Sessions     int `json:"sessions"`
}

// DayLog is one day's activity record, keyed by YYYY-MM-DD date string.
// QuestsTotal/QuestsCompleted are full recounts, not running increments.
type DayLog struct {
	QuestsTotal     int            `json:"quests_total"`
	QuestsCompleted int            `json:"quests_completed"`
	EnergyEntries   []*EnergyEntry `json:"energy_entries,omitempty"`
	Reading         *ReadingLog    `json:"reading,omitempty"`
}

// Logs is the daily-log domain document.
type Logs map[string]*DayLog

// Reminder is a scheduled notification. RepeatDays holds weekday
// abbreviations ("Mon".."Sun"); empty means one-time.
type Reminder struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Time          string   `json:"time"` // HH:MM
	RepeatDays    []string `json:"repeat_days,omitempty"`
	Active        bool     `json:"active"`
	LastTriggered string   `json:"last_triggered,omitempty"`
}

// StreakData is the global cross-quest streak, distinct from per-quest
// streaks. Updated at most once per day no matter how many quests complete.
type StreakData struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}

// Settings is the singleton settings domain document.
type Settings struct {
	// Name lists are user-configurable and ordered; the first entry of
	// EnergyCategories is always the "high energy" rank.
	EnergyCategories []string `json:"energy_categories"`
	TimeSlots        []string `json:"time_slots"`
	QuestCategories  []string `json:"quest_categories"`

	StreakData StreakData `json:"streak_data"`

	TodayEnergy     string   `json:"today_energy,omitempty"`
	TodayDate       string   `json:"today_date,omitempty"`
	PersistentNotes string   `json:"persistent_notes,omitempty"`
	Quotes          []string `json:"quotes,omitempty"`

	ShowQuotes bool `json:"show_quotes"`
	AutoBackup bool `json:"auto_backup"`

	// LastGeneratedID backs Store.GenerateID. Monotonic, never reused.
	LastGeneratedID int64 `json:"last_generated_id"`
}

// HighEnergyCategory returns the top-ranked energy category, which matches
// every quest ("a high energy day shows all quests").
func (s *Settings) HighEnergyCategory() string {
	if len(s.EnergyCategories) == 0 {
		return ""
	}
	return s.EnergyCategories[0]
}

func defaultSettings() *Settings {
	return &Settings{
		EnergyCategories: []string{"High", "Medium", "Low"},
		TimeSlots:        []string{"Morning", "Afternoon", "Evening", "Night"},
		QuestCategories:  []string{"Health", "Mind", "Work", "Home"},
		ShowQuotes:       true,
		AutoBackup:       true,
	}
}

func defaultQuests() *Quests {
	return &Quests{
		Daily:   []*Quest{},
		Weekly:  []*Quest{},
		Monthly: []*Quest{},
	}
}

func defaultLogs() Logs {
	return Logs{}
}

func defaultReminders() []*Reminder {
	return []*Reminder{}
}
