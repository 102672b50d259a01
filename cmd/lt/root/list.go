package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/store"
	"lifetracker/internal/ui"
)

func newListCmd() *cobra.Command {
	var typeStr string
	var energy string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			types := quest.Types
			if !all {
				typ, err := quest.ParseType(typeStr)
				if err != nil {
					return err
				}
				types = []quest.Type{typ}
			}

			// Default the energy filter to today's recorded level.
			if energy == "" {
				energy, err = a.quests.TodayEnergy(ctx)
				if err != nil {
					return err
				}
			}
			today := a.quests.Now().Format(quest.DateFormat)

			for _, typ := range types {
				var quests []*store.Quest
				if energy != "" {
					quests, err = a.quests.QuestsForEnergy(ctx, typ, energy)
				} else {
					quests, err = a.quests.Quests(ctx, typ)
				}
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(string(typ)))
				if len(quests) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("  (none)"))
					continue
				}
				for _, q := range quests {
					line := ui.QuestLine(q.IsComplete(), q.SkippedOn(today), q.IsProgressive,
						q.ProgressCurrent, q.ProgressTarget, q.ProgressUnit, q.Title)
					meta := fmt.Sprintf("#%d", q.ID)
					if q.Streak > 0 {
						meta += fmt.Sprintf(" %s%d", ui.IconFlame, q.Streak)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", line, ui.Muted.Render(meta))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	cmd.Flags().StringVarP(&energy, "energy", "e", "", "Filter by energy level (default: today's)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every quest type")

	return cmd
}
