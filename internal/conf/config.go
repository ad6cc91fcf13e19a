// Package conf loads and persists application settings: where the lookup
// tables live, the defaults pre-filled into every rename, and the logging
// and exiftool knobs.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stedavkle/fish-renamer/internal/errors"
)

// DataSettings names the lookup table files.
type DataSettings struct {
	Dir           string `yaml:"dir"`           // base directory for table files
	Species       string `yaml:"species"`       // species CSV filename
	Photographers string `yaml:"photographers"` // photographers CSV filename
	Divesites     string `yaml:"divesites"`     // dive sites CSV filename
	Activities    string `yaml:"activities"`    // activities CSV filename
	Labels        string `yaml:"labels"`        // labels JSON filename
}

// DefaultsSettings holds the values pre-filled into every rename so a
// photographer only enters them once per trip.
type DefaultsSettings struct {
	Author   string `yaml:"author"`   // photographer full name
	Area     string `yaml:"area"`     // geographic area
	Site     string `yaml:"site"`     // dive site name
	Activity string `yaml:"activity"` // capture activity
	Camera   string `yaml:"camera"`   // camera full model name
	Location string `yaml:"location"` // table filter location, empty for all
}

// ExifToolSettings controls the metadata backend.
type ExifToolSettings struct {
	Path      string `yaml:"path"`      // explicit binary path, empty for discovery
	BatchSize int    `yaml:"batchsize"` // files per metadata read request
}

// LogSettings controls the application log file.
type LogSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Level   string `yaml:"level"`
}

// Settings is the root configuration.
type Settings struct {
	Debug    bool             `yaml:"debug"`
	Data     DataSettings     `yaml:"data"`
	Defaults DefaultsSettings `yaml:"defaults"`
	ExifTool ExifToolSettings `yaml:"exiftool"`
	Log      LogSettings      `yaml:"log"`
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file into a Settings instance, creating a
// default config file on first run.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return createDefaultConfig(configPaths[0])
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}
	return nil
}

// createDefaultConfig writes the current defaults as a config file so the
// user has something to edit, then re-reads it.
func createDefaultConfig(dir string) error {
	configPath := filepath.Join(dir, "config.yaml")

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return fmt.Errorf("error materializing default config: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling default config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// GetSettings returns the current settings instance.
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// SaveSettings writes the current settings back to the loaded config file
// atomically: marshal to a temp file in the same directory, then rename.
func SaveSettings() error {
	settingsMutex.RLock()
	settingsCopy := *settingsInstance
	settingsMutex.RUnlock()

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		return errors.Newf("no config file loaded").
			Component("conf").
			Category(errors.CategoryState).
			Build()
	}
	return writeYAML(configPath, &settingsCopy)
}

func writeYAML(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temp config file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp config file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}

// GetDefaultConfigPaths returns the candidate config directories in
// priority order: the user config dir first, then the working directory.
func GetDefaultConfigPaths() ([]string, error) {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "fish-renamer"))
	}
	paths = append(paths, ".")
	return paths, nil
}

// TablePaths resolves the data settings into lookup table paths. Relative
// filenames are joined onto the data directory; absolute ones win.
func (s *Settings) TablePaths() (species, photographers, divesites, activities, labels string) {
	join := func(name string) string {
		if name == "" {
			return ""
		}
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(s.Data.Dir, name)
	}
	return join(s.Data.Species), join(s.Data.Photographers), join(s.Data.Divesites),
		join(s.Data.Activities), join(s.Data.Labels)
}
