// Package geotag embeds dive site coordinates into file metadata and
// flips the trailing GPS marker from N to G.
package geotag

import (
	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
)

// Command returns the geotag subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "geotag [files...]",
		Short: "Write dive site GPS coordinates into file metadata",
		Long: "Resolves each encoded filename's site code to coordinates, writes them\n" +
			"into the file in place, and renames the trailing _N marker to _G.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.Renamer.Geotag(args, nil)
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
