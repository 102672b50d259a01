package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/store"
	"lifetracker/internal/ui"
)

func newProgressCmd() *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "progress <id> [+|-|<value>]",
		Short: "Adjust a progressive quest's counter",
		Long: `Adjust a progressive quest's daily counter.

With no second argument the counter is incremented. "+" increments, "-"
decrements (clamped at zero), and a number sets the counter directly,
clamped to the quest's target. Reaching the target completes the quest.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: progress <id> [+|-|<value>]")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op := "+"
			if len(args) == 2 {
				op = args[1]
			}
			return questAction(cmd.OutOrStdout(), typeStr, args[0],
				func(ctx context.Context, a *app, typ quest.Type, id int64) (*store.Quest, error) {
					switch op {
					case "+":
						return a.quests.IncrementProgress(ctx, typ, id)
					case "-":
						return a.quests.DecrementProgress(ctx, typ, id)
					default:
						v, err := strconv.Atoi(op)
						if err != nil {
							return nil, fmt.Errorf("progress value must be +, - or an integer")
						}
						return a.quests.SetProgress(ctx, typ, id, v)
					}
				},
				func(q *store.Quest) string {
					line := fmt.Sprintf("%s #%d %s %d/%d %s",
						ui.IconTarget, q.ID, q.Title, q.ProgressCurrent, q.ProgressTarget, q.ProgressUnit)
					if q.IsComplete() {
						line += "  " + ui.Good.Render(ui.IconDone+" complete")
					}
					return line
				})
		},
	}
	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	return cmd
}
