package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/ui"
)

func newRmCmd() *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quest",
		Args:  func(cmd *cobra.Command, args []string) error { return idArg(args) },
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

			id, _ := strconv.ParseInt(args[0], 10, 64)
			removed, err := a.quests.DeleteQuest(ctx, typ, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("no %s quest with id %d", typ, id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deleted"), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")

	return cmd
}
