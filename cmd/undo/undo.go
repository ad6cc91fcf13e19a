// Package undo reverses the most recent rename batch.
package undo

import (
	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
	"github.com/stedavkle/fish-renamer/internal/renamer"
)

// Command returns the undo subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent rename batch",
		Long: "Renames files of the latest batch back to their previous names, newest\n" +
			"first. Only the latest batch is undoable; entries whose files moved in\n" +
			"the meantime are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.UndoLogPath()
			if err != nil {
				return err
			}
			log, err := renamer.LoadUndoLog(path)
			if err != nil {
				return err
			}

			result := log.Undo()
			result.Print(cmd.OutOrStdout(), verbose)
			return log.Save(path)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List per-file outcomes")
	return cmd
}
