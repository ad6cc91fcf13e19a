package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSettings() *Settings {
	return &Settings{
		Data: DataSettings{Dir: "data"},
		ExifTool: ExifToolSettings{
			BatchSize: 40,
		},
		Log: LogSettings{Enabled: true, Path: "fish-renamer.log", Level: "info"},
	}
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid", func(s *Settings) {}, false},
		{"zero batch size", func(s *Settings) { s.ExifTool.BatchSize = 0 }, true},
		{"negative batch size", func(s *Settings) { s.ExifTool.BatchSize = -1 }, true},
		{"log enabled without path", func(s *Settings) { s.Log.Path = "" }, true},
		{"log disabled without path", func(s *Settings) { s.Log.Enabled = false; s.Log.Path = "" }, false},
		{"unknown log level", func(s *Settings) { s.Log.Level = "verbose" }, true},
		{"empty log level allowed", func(s *Settings) { s.Log.Level = "" }, false},
		{"missing data dir", func(s *Settings) { s.Data.Dir = "" }, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tc.mutate(s)
			err := ValidateSettings(s)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTablePaths(t *testing.T) {
	t.Parallel()

	s := &Settings{Data: DataSettings{
		Dir:           "/srv/tables",
		Species:       "species.csv",
		Photographers: "photographers.csv",
		Divesites:     "/etc/override/divesites.csv",
		Activities:    "activities.csv",
		Labels:        "labels.json",
	}}

	species, photographers, divesites, activities, labels := s.TablePaths()
	assert.Equal(t, "/srv/tables/species.csv", species)
	assert.Equal(t, "/srv/tables/photographers.csv", photographers)
	assert.Equal(t, "/etc/override/divesites.csv", divesites, "absolute path wins over data dir")
	assert.Equal(t, "/srv/tables/activities.csv", activities)
	assert.Equal(t, "/srv/tables/labels.json", labels)
}
