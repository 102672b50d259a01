package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifetracker/internal/ui"
)

func newEnergyCmd() *cobra.Command {
	var logOnly bool
	var slot string

	cmd := &cobra.Command{
		Use:   "energy [level]",
		Short: "Show or set today's energy level",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one level")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 0 {
				level, err := a.quests.TodayEnergy(ctx)
				if err != nil {
					return err
				}
				if level == "" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("no energy level set today"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconBolt+" Today", level))
				return nil
			}

			level := args[0]
			if !logOnly {
				if err := a.quests.SetTodayEnergy(ctx, level); err != nil {
					return err
				}
			}
			if err := a.activity.LogEnergy(ctx, a.quests.Now().Hour(), slot, level); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s energy set to %s\n", ui.IconBolt, ui.Good.Render(level))
			return nil
		},
	}

	cmd.Flags().BoolVar(&logOnly, "log-only", false, "Append an energy entry without changing today's level")
	cmd.Flags().StringVar(&slot, "slot", "", "Time slot to record with the entry")

	return cmd
}
