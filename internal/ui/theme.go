package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LifeTracker theme (CLI + TUI).
// Kept intentionally small: reusable styles, a heat palette and a few emojis.

const (
	IconQuest  = "🗺️"
	IconDone   = "✅"
	IconSkip   = "⏭️"
	IconFlame  = "🔥"
	IconSpark  = "✨"
	IconChart  = "📊"
	IconBox    = "📦"
	IconBell   = "⏰"
	IconBolt   = "⚡"
	IconBook   = "📖"
	IconNote   = "📝"
	IconWarn   = "⚠️"
	IconError  = "🧨"
	IconTarget = "🎯"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

// heat is the contribution-grid palette, index = heat level 0..3.
var heat = [4]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

// HeatCell renders one heatmap cell at the given level (0..3).
func HeatCell(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 3 {
		level = 3
	}
	return heat[level].Render("■")
}

// FutureCell renders a grid cell for a date after today.
func FutureCell() string {
	return Muted.Render("·")
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// QuestLine renders a quest's status mark, title and progress fragment.
func QuestLine(complete, skipped, progressive bool, current, target int, unit, title string) string {
	mark := "[ ]"
	switch {
	case complete:
		mark = Good.Render("[x]")
	case skipped:
		mark = Muted.Render("[s]")
	}
	line := mark + " " + title
	if progressive {
		frag := fmt.Sprintf("%d/%d", current, target)
		if unit != "" {
			frag += " " + unit
		}
		line += " " + Muted.Render("("+frag+")")
	}
	return line
}

// StreakText renders a streak count with the flame icon, dimmed at zero.
func StreakText(n int) string {
	if n <= 0 {
		return Muted.Render("no streak")
	}
	return Gold.Render(fmt.Sprintf("%s %d day streak", IconFlame, n))
}
