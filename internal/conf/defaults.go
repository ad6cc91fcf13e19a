package conf

import "github.com/spf13/viper"

// setDefaultConfig sets viper defaults for every configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("data.dir", "data")
	viper.SetDefault("data.species", "species.csv")
	viper.SetDefault("data.photographers", "photographers.csv")
	viper.SetDefault("data.divesites", "divesites.csv")
	viper.SetDefault("data.activities", "activities.csv")
	viper.SetDefault("data.labels", "labels.json")

	viper.SetDefault("defaults.author", "")
	viper.SetDefault("defaults.area", "")
	viper.SetDefault("defaults.site", "")
	viper.SetDefault("defaults.activity", "diving")
	viper.SetDefault("defaults.camera", "")
	viper.SetDefault("defaults.location", "")

	viper.SetDefault("exiftool.path", "")
	viper.SetDefault("exiftool.batchsize", 40)

	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "fish-renamer.log")
	viper.SetDefault("log.level", "info")
}
