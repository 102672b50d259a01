package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/ui"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage reminders",
	}
	cmd.AddCommand(
		newRemindAddCmd(),
		newRemindListCmd(),
		newRemindRmCmd(),
		newRemindCheckCmd(),
	)
	return cmd
}

func newRemindAddCmd() *cobra.Command {
	var at string
	var days []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a reminder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			r, err := a.quests.AddReminder(ctx, quest.ReminderDraft{
				Title:      args[0],
				Time:       at,
				RepeatDays: days,
			})
			if err != nil {
				return err
			}
			repeat := "once"
			if len(r.RepeatDays) > 0 {
				repeat = strings.Join(r.RepeatDays, ",")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s #%d %s at %s %s\n",
				ui.IconBell, ui.Good.Render("Added"), r.ID, r.Title, r.Time, ui.Muted.Render("("+repeat+")"))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "09:00", "Reminder time (HH:MM)")
	cmd.Flags().StringSliceVarP(&days, "days", "d", nil, "Repeat weekdays (Mon,Tue,...); empty = one-time")
	return cmd
}

func newRemindListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			reminders, err := a.quests.ListReminders(ctx)
			if err != nil {
				return err
			}
			if len(reminders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no reminders)"))
				return nil
			}
			for _, r := range reminders {
				state := ui.Good.Render("active")
				if !r.Active {
					state = ui.Muted.Render("inactive")
				}
				repeat := "once"
				if len(r.RepeatDays) > 0 {
					repeat = strings.Join(r.RepeatDays, ",")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s at %s %s %s\n",
					r.ID, r.Title, r.Time, ui.Muted.Render("("+repeat+")"), state)
			}
			return nil
		},
	}
	return cmd
}

func newRemindRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reminder",
		Args:  func(cmd *cobra.Command, args []string) error { return idArg(args) },
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			removed, err := a.quests.DeleteReminder(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("no reminder with id %d", id)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deleted"), id)
			return nil
		},
	}
	return cmd
}

func newRemindCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print reminders due now (for a periodic scheduler to poll)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			due, err := a.quests.CheckDueReminders(ctx)
			if err != nil {
				return err
			}
			for _, r := range due {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", ui.IconBell, r.Title, r.Time)
			}
			return nil
		},
	}
	return cmd
}
