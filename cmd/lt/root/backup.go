package root

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lifetracker/internal/ui"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import and manage backups",
	}
	cmd.AddCommand(
		newBackupExportCmd(),
		newBackupImportCmd(),
		newBackupListCmd(),
		newBackupAutoCmd(),
	)
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full backup to the backup directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := a.backups.ExportToFile(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconBox, ui.Good.Render("Exported"), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Backup filename (default: timestamped)")
	return cmd
}

func newBackupImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore all domains from a backup file",
		Long: `Restore every domain from a backup file.

The file must live inside the backup directory; a bare filename is resolved
there. Current data is overwritten by the sections the backup contains.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("backup file is required")
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

			path := args[0]
			if filepath.Dir(path) == "." {
				path = filepath.Join(a.backups.Dir(), path)
			}
			if err := a.backups.ImportFromFile(ctx, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconBox, ui.Good.Render("Restored"), path)
			return nil
		},
	}
	return cmd
}

func newBackupListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			backups, err := a.backups.List()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no backups)"))
				return nil
			}
			for _, b := range backups {
				kind := "manual"
				if b.Auto {
					kind = "auto"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					b.Name,
					ui.Muted.Render(b.ModTime.Format("2006-01-02 15:04")),
					ui.Muted.Render(kind))
			}
			return nil
		},
	}
	return cmd
}

func newBackupAutoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Take today's automatic backup and prune old ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.backups.AutoBackup(ctx, a.cfg.AutoBackupKeep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s auto backup up to date (keeping %d)\n", ui.IconBox, a.cfg.AutoBackupKeep)
			return nil
		},
	}
	return cmd
}
