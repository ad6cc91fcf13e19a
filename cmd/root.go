package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stedavkle/fish-renamer/cmd/basic"
	"github.com/stedavkle/fish-renamer/cmd/edit"
	"github.com/stedavkle/fish-renamer/cmd/geotag"
	"github.com/stedavkle/fish-renamer/cmd/identify"
	"github.com/stedavkle/fish-renamer/cmd/sites"
	"github.com/stedavkle/fish-renamer/cmd/undo"
	"github.com/stedavkle/fish-renamer/cmd/version"
	"github.com/stedavkle/fish-renamer/internal/config"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *config.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fish-renamer",
		Short: "Fish Renamer CLI",
		Long:  "Encodes dive metadata and species identifications into media filenames.",
	}

	setupFlags(rootCmd, ctx)

	subcommands := []*cobra.Command{
		basic.Command(ctx),
		identify.Command(ctx),
		edit.Command(ctx),
		geotag.Command(ctx),
		undo.Command(ctx),
		sites.Command(ctx),
		version.Command(ctx),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, ctx *config.Context) error {
	s := ctx.Settings
	rootCmd.PersistentFlags().BoolVarP(&s.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&s.Defaults.Author, "author", viper.GetString("defaults.author"), "Photographer full name")
	rootCmd.PersistentFlags().StringVar(&s.Defaults.Area, "area", viper.GetString("defaults.area"), "Geographic area of the dive site")
	rootCmd.PersistentFlags().StringVar(&s.Defaults.Site, "site", viper.GetString("defaults.site"), "Dive site name")
	rootCmd.PersistentFlags().StringVar(&s.Defaults.Activity, "activity", viper.GetString("defaults.activity"), "Capture activity, e.g. diving or snorkeling")
	rootCmd.PersistentFlags().StringVar(&s.Defaults.Camera, "camera", viper.GetString("defaults.camera"), "Camera full model name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}
	return nil
}
