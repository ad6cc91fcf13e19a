// Package sites lists the known dive sites and their codes.
package sites

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/config"
)

// Command returns the sites subcommand.
func Command(ctx *config.Context) *cobra.Command {
	var withCoordinates bool

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List known dive sites and their codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, site := range ctx.Tables.Sites() {
				if withCoordinates {
					fmt.Fprintf(out, "%-20s %s, %s (%s, %s)\n",
						site.SiteString, site.Area, site.Site, site.Latitude, site.Longitude)
				} else {
					fmt.Fprintf(out, "%-20s %s, %s\n", site.SiteString, site.Area, site.Site)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withCoordinates, "coordinates", false, "Include latitude and longitude")
	return cmd
}
