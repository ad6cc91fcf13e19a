// Package identify implements the second renaming stage: basic-named
// files gain a taxonomy prefix.
package identify

import (
	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
)

// Command returns the identify subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var (
		family     string
		genus      string
		species    string
		confidence string
		phase      string
		colour     string
		behaviour  string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "identify [files...]",
		Short: "Prefix a species identification to basic-named files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.Renamer.RenameIdentified(args,
				family, genus, species, confidence, phase, colour, behaviour, nil)
			if err != nil {
				return err
			}
			result.Print(cmd.OutOrStdout(), verbose)
			return ctx.SaveUndoLog()
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Taxonomic family")
	cmd.Flags().StringVar(&genus, "genus", "", "Taxonomic genus")
	cmd.Flags().StringVar(&species, "species", "", "Species epithet, lowercase")
	cmd.Flags().StringVar(&confidence, "confidence", "ok", "Identification confidence abbreviation")
	cmd.Flags().StringVar(&phase, "phase", "ad", "Life phase abbreviation")
	cmd.Flags().StringVar(&colour, "colour", "ty", "Colour variant abbreviation")
	cmd.Flags().StringVar(&behaviour, "behaviour", "zz", "Behaviour abbreviation")
	_ = cmd.MarkFlagRequired("family")
	_ = cmd.MarkFlagRequired("genus")
	_ = cmd.MarkFlagRequired("species")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List per-file outcomes")
	return cmd
}
