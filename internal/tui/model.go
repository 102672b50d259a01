package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifetracker/internal/quest"
	"lifetracker/internal/store"
	"lifetracker/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *quest.Service

	width  int
	height int

	tab      int // index into quest.Types
	quests   []*store.Quest
	streak   store.StreakData
	energy   string
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	quests []*store.Quest
	streak store.StreakData
	energy string
	err    error
}

type actedMsg struct {
	what string
	err  error
}

func newBoardModel(ctx context.Context, svc *quest.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) typ() quest.Type {
	return quest.Types[m.tab]
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	typ := m.typ()
	return func() tea.Msg {
		quests, err := m.svc.Quests(m.ctx, typ)
		if err != nil {
			return loadedMsg{err: err}
		}
		streak, err := m.svc.GlobalStreak(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		energy, err := m.svc.TodayEnergy(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{quests: quests, streak: streak, energy: energy}
	}
}

func (m boardModel) toggleCmd(q *store.Quest) tea.Cmd {
	typ := m.typ()
	return func() tea.Msg {
		var err error
		var what string
		switch {
		case q.IsProgressive:
			_, err = m.svc.IncrementProgress(m.ctx, typ, q.ID)
			what = fmt.Sprintf("Progress +1 on #%d", q.ID)
		case q.IsComplete():
			_, err = m.svc.UncompleteQuest(m.ctx, typ, q.ID)
			what = fmt.Sprintf("Uncompleted #%d", q.ID)
		default:
			_, err = m.svc.CompleteQuest(m.ctx, typ, q.ID)
			what = fmt.Sprintf("Completed #%d", q.ID)
		}
		return actedMsg{what: what, err: err}
	}
}

func (m boardModel) decrementCmd(q *store.Quest) tea.Cmd {
	typ := m.typ()
	return func() tea.Msg {
		_, err := m.svc.DecrementProgress(m.ctx, typ, q.ID)
		return actedMsg{what: fmt.Sprintf("Progress -1 on #%d", q.ID), err: err}
	}
}

func (m boardModel) skipCmd(q *store.Quest) tea.Cmd {
	typ := m.typ()
	today := m.svc.Now().Format(quest.DateFormat)
	return func() tea.Msg {
		var err error
		var what string
		if q.SkippedOn(today) {
			_, err = m.svc.UnskipQuest(m.ctx, typ, q.ID)
			what = fmt.Sprintf("Unskipped #%d", q.ID)
		} else {
			_, err = m.svc.SkipQuest(m.ctx, typ, q.ID)
			what = fmt.Sprintf("Skipped #%d", q.ID)
		}
		return actedMsg{what: what, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.quests = msg.quests
		m.streak = msg.streak
		m.energy = msg.energy
		if m.selected >= len(m.quests) {
			m.selected = len(m.quests) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case actedMsg:
		if msg.err != nil {
			m.lastLog = "Action failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.what
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "tab", "l":
			m.tab = (m.tab + 1) % len(quest.Types)
			m.selected = 0
			m.loading = true
			return m, m.loadCmd()
		case "shift+tab", "h":
			m.tab = (m.tab + len(quest.Types) - 1) % len(quest.Types)
			m.selected = 0
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.quests)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if q := m.current(); q != nil {
				return m, m.toggleCmd(q)
			}
			return m, nil
		case "-":
			if q := m.current(); q != nil && q.IsProgressive {
				return m, m.decrementCmd(q)
			}
			return m, nil
		case "s":
			if q := m.current(); q != nil {
				return m, m.skipCmd(q)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) current() *store.Quest {
	if m.selected < 0 || m.selected >= len(m.quests) {
		return nil
	}
	return m.quests[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderQuests())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	energy := m.energy
	if energy == "" {
		energy = "unset"
	}
	return fmt.Sprintf("%s  %s  %s",
		ui.Heading(ui.IconQuest, "LifeTracker"),
		ui.StreakText(m.streak.Current),
		ui.Muted.Render(ui.IconBolt+" energy: "+energy),
	)
}

func (m boardModel) renderTabs() string {
	parts := make([]string, 0, len(quest.Types))
	for i, t := range quest.Types {
		label := string(t)
		if i == m.tab {
			parts = append(parts, ui.SelectedRow.Render("["+label+"]"))
		} else {
			parts = append(parts, ui.Muted.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m boardModel) renderQuests() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.quests) == 0 {
		return ui.Muted.Render("(no " + string(m.typ()) + " quests — add one with `lt add`)")
	}
	today := m.svc.Now().Format(quest.DateFormat)

	var out []string
	for i, q := range m.quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := ui.QuestLine(q.IsComplete(), q.SkippedOn(today), q.IsProgressive,
			q.ProgressCurrent, q.ProgressTarget, q.ProgressUnit, q.Title)
		out = append(out, cursor+line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	keys := "tab: cadence · j/k: move · space: done/+1 · -: -1 · s: skip · r: refresh · q: quit"
	return "\n" + ui.Muted.Render(keys) + "\n" + m.lastLog
}
