package activity

import (
	"context"
)

// Cell is one day of the heatmap grid.
type Cell struct {
	Date     string
	Count    int
	Level    int
	IsToday  bool
	IsFuture bool
}

// HeatLevel buckets a daily completion count into intensity levels
// 0 (none), 1 (1-2), 2 (3-4), 3 (5+).
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	default:
		return 3
	}
}

// BuildHeatmap produces a calendar-aligned grid of daily completion counts:
// weeks rows ordered oldest to newest, 7 columns Sunday through Saturday,
// aligned so today falls in its weekday column of the last row.
func (a *Aggregator) BuildHeatmap(ctx context.Context, weeks int) ([][]Cell, error) {
	if weeks < 1 {
		weeks = 1
	}
	logs, err := a.store.Logs(ctx)
	if err != nil {
		return nil, err
	}

	now := a.Now()
	today := now.Format(dateFormat)
	// Start so the final row ends on Saturday with today in the right column.
	start := now.AddDate(0, 0, -(weeks*7 - 1 - (6 - int(now.Weekday()))))

	grid := make([][]Cell, weeks)
	day := start
	for w := 0; w < weeks; w++ {
		row := make([]Cell, 7)
		for d := 0; d < 7; d++ {
			date := day.Format(dateFormat)
			count := 0
			if l := logs[date]; l != nil {
				count = l.QuestsCompleted
			}
			row[d] = Cell{
				Date:     date,
				Count:    count,
				Level:    HeatLevel(count),
				IsToday:  date == today,
				IsFuture: date > today,
			}
			day = day.AddDate(0, 0, 1)
		}
		grid[w] = row
	}
	return grid, nil
}

// Stats summarizes activity over the heatmap window. LongestStreak scans the
// windowed grid chronologically; CurrentStreak walks the raw log collection
// backward from today. The two can disagree when the window truncates an
// ongoing run; that divergence is intended.
type Stats struct {
	TotalCompletions    int
	DaysWithActivity    int
	CurrentStreak       int
	LongestStreak       int
	AveragePerActiveDay float64
}

func (a *Aggregator) Stats(ctx context.Context, weeks int) (*Stats, error) {
	grid, err := a.BuildHeatmap(ctx, weeks)
	if err != nil {
		return nil, err
	}
	logs, err := a.store.Logs(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{}
	run := 0
	for _, row := range grid {
		for _, c := range row {
			if c.IsFuture {
				continue
			}
			if c.Count > 0 {
				st.TotalCompletions += c.Count
				st.DaysWithActivity++
				run++
				if run > st.LongestStreak {
					st.LongestStreak = run
				}
			} else {
				run = 0
			}
		}
	}

	day := a.Now()
	for {
		date := day.Format(dateFormat)
		l := logs[date]
		if l == nil || l.QuestsCompleted == 0 {
			break
		}
		st.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	if st.DaysWithActivity > 0 {
		st.AveragePerActiveDay = float64(st.TotalCompletions) / float64(st.DaysWithActivity)
	}
	return st, nil
}
