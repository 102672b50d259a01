package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifetracker/internal/ui"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes [text]",
		Short: "Show or replace the persistent notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 0 {
				text, err := a.quests.Notes(ctx)
				if err != nil {
					return err
				}
				if text == "" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no notes)"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			if err := a.quests.SaveNotes(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.IconNote, ui.Good.Render("Notes saved"))
			return nil
		},
	}
	return cmd
}

func newQuoteCmd() *cobra.Command {
	var add string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show a random quote, or add one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if add != "" {
				if err := a.quests.AddQuote(ctx, add); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Quote added"))
				return nil
			}

			quote, err := a.quests.RandomQuote(ctx)
			if err != nil {
				return err
			}
			if quote == "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no quotes configured)"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconSpark+" "+quote)
			return nil
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "Add a quote to the rotation")

	return cmd
}
