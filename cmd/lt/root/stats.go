package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifetracker/internal/reading"
	"lifetracker/internal/store"
	"lifetracker/internal/ui"
)

func readingLog(rs *reading.TodayStats) *store.ReadingLog {
	if rs == nil {
		return nil
	}
	return &store.ReadingLog{
		PagesRead:    rs.PagesRead,
		TimeSpentSec: rs.TimeSpentSec,
		Sessions:     rs.Sessions,
	}
}

func newStatsCmd() *cobra.Command {
	var weeks int
	var withReading bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the contribution heatmap and activity stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			grid, err := a.activity.BuildHeatmap(ctx, weeks)
			if err != nil {
				return err
			}
			st, err := a.activity.Stats(ctx, weeks)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, fmt.Sprintf("Last %d weeks", weeks)))
			fmt.Fprintln(out, ui.Muted.Render("      S M T W T F S"))
			for _, row := range grid {
				var b strings.Builder
				b.WriteString(ui.Muted.Render(row[0].Date[5:] + " "))
				for _, c := range row {
					if c.IsFuture {
						b.WriteString(ui.FutureCell())
					} else {
						b.WriteString(ui.HeatCell(c.Level))
					}
					b.WriteString(" ")
				}
				fmt.Fprintln(out, b.String())
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Completions", st.TotalCompletions))
			fmt.Fprintln(out, ui.LabelValue("Active days", st.DaysWithActivity))
			fmt.Fprintln(out, ui.LabelValue("Current streak", st.CurrentStreak))
			fmt.Fprintln(out, ui.LabelValue("Longest streak (window)", st.LongestStreak))
			fmt.Fprintln(out, ui.LabelValue("Avg per active day", fmt.Sprintf("%.1f", st.AveragePerActiveDay)))

			if withReading {
				rs, err := a.reading.TodayStats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconBook+" Reading today"))
				fmt.Fprintln(out, ui.LabelValue("Pages", rs.PagesRead))
				fmt.Fprintln(out, ui.LabelValue("Minutes", rs.TimeSpentSec/60))
				fmt.Fprintln(out, ui.LabelValue("Books", rs.Sessions))
				if err := a.activity.LogReading(ctx, readingLog(rs)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 12, "Number of weeks in the heatmap window")
	cmd.Flags().BoolVar(&withReading, "reading", false, "Include today's reading stats and log them")

	return cmd
}
