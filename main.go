package main

import (
	"fmt"
	"os"

	"github.com/stedavkle/fish-renamer/cmd"
	"github.com/stedavkle/fish-renamer/internal/conf"
	"github.com/stedavkle/fish-renamer/internal/config"
	"github.com/stedavkle/fish-renamer/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := conf.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	initLogging(settings)

	ctx, err := config.NewContext(settings)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer ctx.Close()

	return cmd.RootCommand(ctx).Execute()
}

func initLogging(settings *conf.Settings) {
	logging.Init()
	if settings.Debug {
		logging.SetLevel(logging.ParseLevel("debug"))
	} else if settings.Log.Level != "" {
		logging.SetLevel(logging.ParseLevel(settings.Log.Level))
	}
	if settings.Log.Enabled {
		if err := logging.SetFileOutput(settings.Log.Path); err != nil {
			logging.Warn("could not open log file, logging to stdout", "error", err)
		}
	}
}
