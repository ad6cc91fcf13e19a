// Package version reports the application and exiftool versions.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stedavkle/fish-renamer/internal/buildinfo"
	"github.com/stedavkle/fish-renamer/internal/config"
)

// Command returns the version subcommand.
func Command(ctx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fish-renamer %s\n", buildinfo.Version())

			if !ctx.Session.IsAvailable() {
				fmt.Fprintln(out, "exiftool: not found")
				return
			}
			if v, err := ctx.Session.Version(); err == nil {
				fmt.Fprintf(out, "exiftool: %s\n", v)
			} else {
				fmt.Fprintln(out, "exiftool: found but not responding")
			}
		},
	}
}
