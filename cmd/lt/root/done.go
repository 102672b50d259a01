package root

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/store"
	"lifetracker/internal/ui"
)

// questAction runs one id-based mutation shared by done/undo/skip.
func questAction(out io.Writer, typeStr, idStr string,
	run func(ctx context.Context, a *app, typ quest.Type, id int64) (*store.Quest, error),
	render func(q *store.Quest) string,
) error {
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

	id, _ := strconv.ParseInt(idStr, 10, 64)
	q, err := run(ctx, a, typ, id)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("no %s quest with id %d", typ, id)
	}
	fmt.Fprintln(out, render(q))
	return nil
}

func newDoneCmd() *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a quest",
		Args:  func(cmd *cobra.Command, args []string) error { return idArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return questAction(cmd.OutOrStdout(), typeStr, args[0],
				func(ctx context.Context, a *app, typ quest.Type, id int64) (*store.Quest, error) {
					return a.quests.CompleteQuest(ctx, typ, id)
				},
				func(q *store.Quest) string {
					return fmt.Sprintf("%s %s #%d %s  %s",
						ui.Good.Render(ui.IconDone), ui.Good.Render("Done"), q.ID, q.Title, ui.StreakText(q.Streak))
				})
		},
	}
	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	return cmd
}

func newUndoCmd() *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Uncomplete a quest",
		Long: `Clear a quest's completion for today.

Streak increments that already happened are not reversed; undo only clears
the completion stamp and recounts today's totals.`,
		Args: func(cmd *cobra.Command, args []string) error { return idArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return questAction(cmd.OutOrStdout(), typeStr, args[0],
				func(ctx context.Context, a *app, typ quest.Type, id int64) (*store.Quest, error) {
					return a.quests.UncompleteQuest(ctx, typ, id)
				},
				func(q *store.Quest) string {
					return fmt.Sprintf("%s #%d %s", ui.Warn.Render("Uncompleted"), q.ID, q.Title)
				})
		},
	}
	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	return cmd
}

func newSkipCmd() *cobra.Command {
	var typeStr string
	var undo bool

	cmd := &cobra.Command{
		Use:   "skip <id>",
		Short: "Skip a quest for today",
		Args:  func(cmd *cobra.Command, args []string) error { return idArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			verb := "Skipped"
			if undo {
				verb = "Unskipped"
			}
			return questAction(cmd.OutOrStdout(), typeStr, args[0],
				func(ctx context.Context, a *app, typ quest.Type, id int64) (*store.Quest, error) {
					if undo {
						return a.quests.UnskipQuest(ctx, typ, id)
					}
					return a.quests.SkipQuest(ctx, typ, id)
				},
				func(q *store.Quest) string {
					return fmt.Sprintf("%s %s #%d %s", ui.IconSkip, ui.Muted.Render(verb), q.ID, q.Title)
				})
		},
	}
	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	cmd.Flags().BoolVar(&undo, "undo", false, "Remove today's skip instead")
	return cmd
}
