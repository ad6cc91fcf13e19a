// Package edit implements bulk field edits over a same-stage selection.
// Only fields explicitly flagged are rewritten; everything else is
// carried verbatim, and the selection must parse as one stage.
package edit

import (
	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
	"github.com/stedavkle/fish-renamer/internal/filename"
)

// Command returns the edit subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var (
		values  filename.EditValues
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "edit [files...]",
		Short: "Rewrite selected fields across encoded filenames",
		Long: "Analyzes the selection for per-field agreement, then rewrites only the\n" +
			"fields given as flags. Date, time and the original name never change.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask := filename.EditMask{
				Family:     cmd.Flags().Changed("family"),
				Genus:      cmd.Flags().Changed("genus"),
				Species:    cmd.Flags().Changed("species"),
				Confidence: cmd.Flags().Changed("confidence"),
				Phase:      cmd.Flags().Changed("phase"),
				Colour:     cmd.Flags().Changed("colour"),
				Behaviour:  cmd.Flags().Changed("behaviour"),
				Author:     cmd.Flags().Changed("author-code"),
				Site:       cmd.Flags().Changed("site-code"),
				Activity:   cmd.Flags().Changed("activity-value"),
				Camera:     cmd.Flags().Changed("camera-code"),
			}

			result, err := ctx.Renamer.ApplyEdits(args, mask, values, nil)
			if err != nil {
				return err
			}
			result.Print(cmd.OutOrStdout(), verbose)
			return ctx.SaveUndoLog()
		},
	}

	cmd.Flags().StringVar(&values.Family, "family", "", "New taxonomic family")
	cmd.Flags().StringVar(&values.Genus, "genus", "", "New taxonomic genus")
	cmd.Flags().StringVar(&values.Species, "species", "", "New species epithet")
	cmd.Flags().StringVar(&values.Confidence, "confidence", "", "New confidence abbreviation")
	cmd.Flags().StringVar(&values.Phase, "phase", "", "New life phase abbreviation")
	cmd.Flags().StringVar(&values.Colour, "colour", "", "New colour abbreviation")
	cmd.Flags().StringVar(&values.Behaviour, "behaviour", "", "New behaviour abbreviation")
	cmd.Flags().StringVar(&values.Author, "author-code", "", "New 5-letter author code")
	cmd.Flags().StringVar(&values.Site, "site-code", "", "New site code")
	cmd.Flags().StringVar(&values.Activity, "activity-value", "", "New activity value")
	cmd.Flags().StringVar(&values.Camera, "camera-code", "", "New camera abbreviation")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List per-file outcomes")
	return cmd
}
