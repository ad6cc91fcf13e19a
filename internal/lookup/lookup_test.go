package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadFixtures(t *testing.T) *Tables {
	t.Helper()
	dir := t.TempDir()

	paths := Paths{
		Species: writeFixture(t, dir, "species.csv",
			"Family;Genus;Species;Species English;Bangka;Red Sea\n"+
				"Pomacentridae;Amphiprion;clarkii;Clark's anemonefish;1;0\n"+
				"Pomacentridae;Amphiprion;ocellaris;Clown anemonefish;1;1\n"+
				"Labridae;Thalassoma;lunare;Moon wrasse;0;1\n"),
		Photographers: writeFixture(t, dir, "photographers.csv",
			"\xef\xbb\xbfFull name;Namecode\n"+
				"Jane Diver;JDIVE\n"+
				"Bob Diver;BDIVE\n"),
		Divesites: writeFixture(t, dir, "divesites.csv",
			"Area;Site;Site string;latitude;longitude;Bangka;Red Sea\n"+
				"Indonesia;Bangka;IDN-Bangka-BTI;1.7425;125.1371;1;0\n"+
				"Egypt;Hurghada;EGY-Hurghada-HUR;27.2579;33.8116;0;1\n"),
		Activities: writeFixture(t, dir, "activities.csv",
			"Activity\ndiving\nsnorkeling\ntransect\n"),
		Labels: writeFixture(t, dir, "labels.json", `{
			"Confidence": {"ok": "certain", "cf": "uncertain"},
			"Behaviour": {"zz": "none", "feed": "feeding"},
			"Camera": {"S-A7IV": "Sony A7IV", "C-R5": "Canon EOS R5"}
		}`),
	}

	tables, err := Load(paths)
	require.NoError(t, err)
	return tables
}

func TestAuthorLookup(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	assert.Equal(t, "JDIVE", tables.AuthorCode("Jane Diver"))
	assert.Equal(t, "Bob Diver", tables.AuthorName("BDIVE"))
	assert.Empty(t, tables.AuthorCode("Nobody"))
	assert.Empty(t, tables.AuthorName("XXXXX"))
}

func TestSiteLookup(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	assert.Equal(t, "IDN-Bangka-BTI", tables.SiteString("Indonesia", "Bangka"))
	assert.Empty(t, tables.SiteString("Atlantis", "Nowhere"))

	area, site, ok := tables.AreaSite("EGY-Hurghada-HUR")
	require.True(t, ok)
	assert.Equal(t, "Egypt", area)
	assert.Equal(t, "Hurghada", site)

	_, _, ok = tables.AreaSite("XXX-Missing-000")
	assert.False(t, ok)
}

func TestCoordinates(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	lat, lon, err := tables.Coordinates("IDN-Bangka-BTI")
	require.NoError(t, err)
	assert.InDelta(t, 1.7425, lat, 1e-9)
	assert.InDelta(t, 125.1371, lon, 1e-9)

	_, _, err = tables.Coordinates("XXX-Missing-000")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	assert.Equal(t, "certain", tables.Label("Confidence", "ok"))
	assert.Equal(t, "cf", tables.Abbreviation("Confidence", "uncertain"))
	assert.Equal(t, []string{"feed", "zz"}, tables.Abbreviations("Behaviour"))
	assert.Empty(t, tables.Label("Confidence", "nope"))

	assert.Equal(t, "S-A7IV", tables.CameraAbbrev("Sony A7IV"))
	assert.Equal(t, "Canon EOS R5", tables.CameraName("C-R5"))
}

func TestLocationFilter(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	assert.Equal(t, []string{"Bangka", "Red Sea"}, tables.AvailableLocations())

	tables.FilterByLocation("Bangka")
	assert.Len(t, tables.SearchSpecies(""), 2)
	assert.Empty(t, tables.SiteString("Egypt", "Hurghada"))
	assert.Equal(t, "IDN-Bangka-BTI", tables.SiteString("Indonesia", "Bangka"))

	tables.FilterByLocation("")
	assert.Len(t, tables.SearchSpecies(""), 3)
	assert.Equal(t, "EGY-Hurghada-HUR", tables.SiteString("Egypt", "Hurghada"))
}

func TestSearchSpecies(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	got := tables.SearchSpecies("amphiprion clown")
	require.Len(t, got, 1)
	assert.Equal(t, "ocellaris", got[0].Species)

	assert.Empty(t, tables.SearchSpecies("amphiprion wrasse"))

	all := tables.SearchSpecies("")
	require.Len(t, all, 3)
	assert.Equal(t, "Labridae", all[0].Family, "results sorted by taxonomy")
}

func TestMissingFilesAreSkipped(t *testing.T) {
	t.Parallel()

	tables, err := Load(Paths{Species: filepath.Join(t.TempDir(), "absent.csv")})
	require.NoError(t, err)
	assert.Empty(t, tables.SearchSpecies(""))
	assert.Empty(t, tables.AuthorCode("anyone"))
}

func TestMalformedLabelsFileFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := Load(Paths{Labels: writeFixture(t, dir, "labels.json", "{not json")})
	assert.Error(t, err)
}

func TestActivities(t *testing.T) {
	t.Parallel()
	tables := loadFixtures(t)

	assert.Equal(t, []string{"diving", "snorkeling", "transect"}, tables.Activities())
}
