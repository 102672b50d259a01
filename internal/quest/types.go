package quest

import (
	"fmt"
	"strings"
)

// DateFormat is the calendar-date string format used across all domains.
// Zero-padded ISO dates compare correctly as plain strings.
const DateFormat = "2006-01-02"

// TimeFormat is the reminder clock format.
const TimeFormat = "15:04"

// Type is a quest's cadence and the partition key of the quests collection.
type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
)

// Types lists all partitions in display order.
var Types = []Type{TypeDaily, TypeWeekly, TypeMonthly}

func (t Type) IsValid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly:
		return true
	default:
		return false
	}
}

func ParseType(input string) (Type, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid quest type: %q", input)
	}
	return t, nil
}

// Draft is the creation input for a quest. The engine assigns id, creation
// date and zeroed progress/streak state.
type Draft struct {
	Title          string
	TimeSlot       string
	Category       string
	EnergyRequired []string

	IsProgressive  bool
	ProgressTarget int
	ProgressUnit   string
}

// Patch lists exactly the mutable quest fields. Nil means "leave unchanged";
// unknown keys cannot silently corrupt a record because there are none.
type Patch struct {
	Title          *string
	TimeSlot       *string
	Category       *string
	EnergyRequired *[]string
	ProgressTarget *int
	ProgressUnit   *string
}

// ReminderDraft is the creation input for a reminder.
type ReminderDraft struct {
	Title      string
	Time       string // HH:MM
	RepeatDays []string
}

// ReminderPatch lists the mutable reminder fields.
type ReminderPatch struct {
	Title      *string
	Time       *string
	RepeatDays *[]string
	Active     *bool
}
