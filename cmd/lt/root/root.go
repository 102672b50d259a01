package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifetracker/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lt",
	Short:         "LifeTracker — local-first quest and habit tracker",
	Long:          "LifeTracker tracks daily/weekly/monthly quests, progressive counters, streaks and a contribution heatmap, all stored in plain local files.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newEditCmd(),
		newRmCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newSkipCmd(),
		newProgressCmd(),
		newStatsCmd(),
		newBoardCmd(),
		newBackupCmd(),
		newRemindCmd(),
		newEnergyCmd(),
		newNotesCmd(),
		newQuoteCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
