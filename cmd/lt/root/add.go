package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/ui"
)

func newAddCmd() *cobra.Command {
	var typeStr string
	var timeSlot string
	var category string
	var energy []string
	var target int
	var unit string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			typ, err := quest.ParseType(typeStr)
			if err != nil {
				return err
			}
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := a.quests.AddQuest(ctx, typ, quest.Draft{
				Title:          args[0],
				TimeSlot:       timeSlot,
				Category:       category,
				EnergyRequired: energy,
				IsProgressive:  target > 0,
				ProgressTarget: target,
				ProgressUnit:   unit,
			})
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s #%d %s %s", ui.Good.Render("Added"), q.ID, q.Title, ui.Muted.Render("("+string(typ)+")"))
			if q.IsProgressive {
				line += " " + ui.Muted.Render(fmt.Sprintf("target %d %s/day", q.ProgressTarget, q.ProgressUnit))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	cmd.Flags().StringVar(&timeSlot, "slot", "", "Preferred time slot")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Quest category")
	cmd.Flags().StringSliceVarP(&energy, "energy", "e", nil, "Required energy categories (empty = any)")
	cmd.Flags().IntVar(&target, "target", 0, "Daily target for a progressive quest (0 = binary)")
	cmd.Flags().StringVar(&unit, "unit", "", "Progress unit, e.g. pages")

	return cmd
}
