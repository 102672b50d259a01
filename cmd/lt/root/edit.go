package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifetracker/internal/quest"
	"lifetracker/internal/ui"
)

func idArg(args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func newEditCmd() *cobra.Command {
	var typeStr string
	var title string
	var timeSlot string
	var category string
	var energy []string
	var target int
	var unit string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a quest",
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
			patch := quest.Patch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("slot") {
				patch.TimeSlot = &timeSlot
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("energy") {
				patch.EnergyRequired = &energy
			}
			if cmd.Flags().Changed("target") {
				patch.ProgressTarget = &target
			}
			if cmd.Flags().Changed("unit") {
				patch.ProgressUnit = &unit
			}

			q, err := a.quests.UpdateQuest(ctx, typ, id, patch)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("no %s quest with id %d", typ, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render("Updated"), q.ID, q.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeStr, "type", "t", "daily", "Quest type (daily|weekly|monthly)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&timeSlot, "slot", "", "New time slot")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringSliceVarP(&energy, "energy", "e", nil, "New required energy categories")
	cmd.Flags().IntVar(&target, "target", 0, "New progressive target")
	cmd.Flags().StringVar(&unit, "unit", "", "New progress unit")

	return cmd
}
