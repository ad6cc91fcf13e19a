package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	basicName      = "JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_N"
	identifiedName = "Pomacentridae_Amphiprion_clarkii_B_ok_ad_ty_zz_" + basicName
)

func TestMatchBasic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantMatch bool
		want      BasicFields
	}{
		{
			name:      "full basic name with marker",
			input:     basicName,
			wantMatch: true,
			want: BasicFields{
				AuthorCode:   "JDIVE",
				SiteString:   "IDN-Bangka-BTI",
				Date:         "2024-01-15",
				Time:         "14-30-45",
				Activity:     "diving",
				CameraCode:   "S-A7IV",
				OriginalName: "DSC0001",
				GPSMarker:    "N",
			},
		},
		{
			name:      "legacy name without marker",
			input:     "ABCDE_ABC-Location-123_2024-01-15_14-30-45_snorkeling_C-R5_IMG001",
			wantMatch: true,
			want: BasicFields{
				AuthorCode:   "ABCDE",
				SiteString:   "ABC-Location-123",
				Date:         "2024-01-15",
				Time:         "14-30-45",
				Activity:     "snorkeling",
				CameraCode:   "C-R5",
				OriginalName: "IMG001",
				GPSMarker:    "",
			},
		},
		{
			name:      "gps written marker",
			input:     "ABCDE_ABC-Location-123_2024-01-15_14-30-45_diving_S-A7IV_IMG001_G",
			wantMatch: true,
			want: BasicFields{
				AuthorCode:   "ABCDE",
				SiteString:   "ABC-Location-123",
				Date:         "2024-01-15",
				Time:         "14-30-45",
				Activity:     "diving",
				CameraCode:   "S-A7IV",
				OriginalName: "IMG001",
				GPSMarker:    "G",
			},
		},
		{name: "unclassified raw name", input: "DSC0001", wantMatch: false},
		{name: "author code too short", input: "JDIV_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_N", wantMatch: false},
		{name: "missing camera field", input: "JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_DSC0001_N", wantMatch: false},
		{name: "identified name is not basic", input: identifiedName, wantMatch: false},
		{name: "trailing garbage", input: basicName + "_extra_bits", wantMatch: false},
		{name: "empty string", input: "", wantMatch: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := MatchBasic(tc.input)
			require.Equal(t, tc.wantMatch, ok)
			if tc.wantMatch {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestMatchIdentified(t *testing.T) {
	t.Parallel()

	f, ok := MatchIdentified(identifiedName)
	require.True(t, ok)
	assert.Equal(t, "Pomacentridae", f.Family)
	assert.Equal(t, "Amphiprion", f.Genus)
	assert.Equal(t, "clarkii", f.Species)
	assert.Equal(t, "ok", f.Confidence)
	assert.Equal(t, "ad", f.Phase)
	assert.Equal(t, "ty", f.Colour)
	assert.Equal(t, "zz", f.Behaviour)
	assert.Equal(t, "JDIVE", f.AuthorCode)
	assert.Equal(t, "IDN-Bangka-BTI", f.SiteString)
	assert.Equal(t, "DSC0001", f.OriginalName)
	assert.Equal(t, "N", f.GPSMarker)

	// Unknown-family placeholder and hyphenated attribute tokens parse.
	placeholder := "0-Fam_Amphiprion_clarkii_B_cf_juv_no-spot_mouth-b_" + basicName
	f, ok = MatchIdentified(placeholder)
	require.True(t, ok)
	assert.Equal(t, "0-Fam", f.Family)
	assert.Equal(t, "no-spot", f.Colour)
	assert.Equal(t, "mouth-b", f.Behaviour)

	// Basic and raw names never satisfy the identified grammar.
	_, ok = MatchIdentified(basicName)
	assert.False(t, ok)
	_, ok = MatchIdentified("DSC0001")
	assert.False(t, ok)
}

func TestStagesAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	names := []string{
		basicName,
		identifiedName,
		"ABCDE_ABC-Location-123_2024-01-15_14-30-45_diving_S-A7IV_IMG001",
		"0-Fam_Amphiprion_clarkii_B_cf_juv_ty_zz_" + basicName,
	}
	for _, name := range names {
		_, isBasic := MatchBasic(name)
		_, isIdentified := MatchIdentified(name)
		assert.False(t, isBasic && isIdentified, "name matches two stage grammars: %s", name)
		assert.True(t, isBasic || isIdentified, "encoded name matches no grammar: %s", name)
	}
}

func TestDetectStage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StageBasic, DetectStage(basicName))
	assert.Equal(t, StageIdentified, DetectStage(identifiedName))
	assert.Equal(t, StageUnclassified, DetectStage("DSC0001"))
	assert.True(t, MatchesAnyStage(basicName))
	assert.False(t, MatchesAnyStage("holiday_pics_042"))
}

func TestExtractSiteString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"from basic", basicName, "IDN-Bangka-BTI", true},
		{"from identified", identifiedName, "IDN-Bangka-BTI", true},
		{"unclassified", "DSC0001", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractSiteString(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	basic, ok := MatchBasic(basicName)
	require.True(t, ok)
	assert.Equal(t, basicName, basic.Encode())

	identified, ok := MatchIdentified(identifiedName)
	require.True(t, ok)
	assert.Equal(t, identifiedName, identified.Encode())

	// Legacy names without marker round-trip byte for byte.
	legacy := "ABCDE_ABC-Location-123_2024-01-15_14-30-45_diving_S-A7IV_IMG001"
	f, ok := MatchBasic(legacy)
	require.True(t, ok)
	assert.Equal(t, legacy, f.Encode())
}
