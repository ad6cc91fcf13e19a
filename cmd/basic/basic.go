// Package basic implements the first renaming stage: raw camera files
// gain author, site, timestamp, activity and camera fields.
package basic

import (
	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
)

// Command returns the basic rename subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "basic [files...]",
		Short: "Rename raw files into the basic naming scheme",
		Long: "Reads each file's capture timestamp from its metadata and renames it to\n" +
			"<author>_<site>_<date>_<time>_<activity>_<camera>_<original>_N.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := ctx.Settings.Defaults
			result, err := ctx.Renamer.RenameBasic(args, d.Author, d.Area, d.Site, d.Activity, d.Camera, nil)
			if err != nil {
				return err
			}
			result.Print(cmd.OutOrStdout(), verbose)
			return ctx.SaveUndoLog()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List per-file outcomes")
	return cmd
}
