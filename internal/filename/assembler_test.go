package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookups is a minimal lookup-table stub for assembler tests.
type fakeLookups struct {
	authors map[string]string
	sites   map[string]string
}

func (f *fakeLookups) AuthorCode(fullName string) string {
	return f.authors[fullName]
}

func (f *fakeLookups) SiteString(area, site string) string {
	return f.sites[area+"/"+site]
}

func testLookups() *fakeLookups {
	return &fakeLookups{
		authors: map[string]string{"Jane Diver": "JDIVE"},
		sites:   map[string]string{"Indonesia/Bangka": "IDN-Bangka-BTI"},
	}
}

func TestToBasic(t *testing.T) {
	t.Parallel()

	a := NewAssembler(testLookups())

	t.Run("assembles encoded name with N marker", func(t *testing.T) {
		t.Parallel()
		got, err := a.ToBasic("DSC0001", "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		require.NoError(t, err)
		assert.Equal(t, basicName, got)
	})

	t.Run("round trips through the basic grammar", func(t *testing.T) {
		t.Parallel()
		got, err := a.ToBasic("DSC0042", "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		require.NoError(t, err)
		fields, ok := MatchBasic(got)
		require.True(t, ok)
		assert.Equal(t, "JDIVE", fields.AuthorCode)
		assert.Equal(t, "IDN-Bangka-BTI", fields.SiteString)
		assert.Equal(t, "2024-01-15", fields.Date)
		assert.Equal(t, "14-30-45", fields.Time)
		assert.Equal(t, "diving", fields.Activity)
		assert.Equal(t, "S-A7IV", fields.CameraCode)
		assert.Equal(t, "DSC0042", fields.OriginalName)
		assert.Equal(t, MarkerNoGPS, fields.GPSMarker)
	})

	t.Run("sanitizes separators in the original name", func(t *testing.T) {
		t.Parallel()
		got, err := a.ToBasic("DSC_00_01", "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		require.NoError(t, err)
		fields, ok := MatchBasic(got)
		require.True(t, ok)
		assert.Equal(t, "DSC0001", fields.OriginalName)
	})

	t.Run("rejects already basic name", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic(basicName, "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("rejects already identified name", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic(identifiedName, "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("rejects unknown author", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic("DSC0001", "2024-01-15_14-30-45", "Nobody", "Indonesia", "Bangka", "diving", "S-A7IV")
		assert.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("rejects unknown site", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic("DSC0001", "2024-01-15_14-30-45", "Jane Diver", "Atlantis", "Nowhere", "diving", "S-A7IV")
		assert.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("rejects empty activity", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic("DSC0001", "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "", "S-A7IV")
		assert.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("rejects malformed timestamp", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic("DSC0001", "2024-01-15 14:30:45", "Jane Diver", "Indonesia", "Bangka", "diving", "S-A7IV")
		assert.Error(t, err)
	})

	t.Run("rejects lowercase camera code", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToBasic("DSC0001", "2024-01-15_14-30-45", "Jane Diver", "Indonesia", "Bangka", "diving", "s-a7iv")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestToIdentified(t *testing.T) {
	t.Parallel()

	a := NewAssembler(testLookups())

	t.Run("prefixes taxonomy block", func(t *testing.T) {
		t.Parallel()
		got, err := a.ToIdentified(basicName, "Pomacentridae", "Amphiprion", "clarkii", "ok", "ad", "ty", "zz")
		require.NoError(t, err)
		assert.Equal(t, identifiedName, got)
	})

	t.Run("carries basic payload verbatim", func(t *testing.T) {
		t.Parallel()
		legacy := "ABCDE_ABC-Location-123_2024-01-15_14-30-45_diving_S-A7IV_IMG001_G"
		got, err := a.ToIdentified(legacy, "Pomacentridae", "Amphiprion", "clarkii", "ok", "ad", "ty", "zz")
		require.NoError(t, err)
		assert.Equal(t, "Pomacentridae_Amphiprion_clarkii_B_ok_ad_ty_zz_"+legacy, got)
	})

	t.Run("rejects unclassified input", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToIdentified("DSC0001", "Pomacentridae", "Amphiprion", "clarkii", "ok", "ad", "ty", "zz")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects already identified input", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToIdentified(identifiedName, "Pomacentridae", "Amphiprion", "clarkii", "ok", "ad", "ty", "zz")
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("rejects empty taxonomy field", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToIdentified(basicName, "Pomacentridae", "Amphiprion", "", "ok", "ad", "ty", "zz")
		assert.ErrorIs(t, err, ErrMissingData)
	})

	t.Run("rejects uppercase species", func(t *testing.T) {
		t.Parallel()
		_, err := a.ToIdentified(basicName, "Pomacentridae", "Amphiprion", "Clarkii", "ok", "ad", "ty", "zz")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	t.Run("replaces only masked fields at identified stage", func(t *testing.T) {
		t.Parallel()
		rec, ok := MatchIdentified(identifiedName)
		require.True(t, ok)

		got, err := ApplyEdits(StageIdentified, rec,
			EditMask{Behaviour: true},
			EditValues{Behaviour: "feed"})
		require.NoError(t, err)
		assert.Equal(t, "Pomacentridae_Amphiprion_clarkii_B_ok_ad_ty_feed_"+basicName, got)
	})

	t.Run("keeps date time and original name untouched", func(t *testing.T) {
		t.Parallel()
		rec, ok := MatchIdentified(identifiedName)
		require.True(t, ok)

		got, err := ApplyEdits(StageIdentified, rec,
			EditMask{Author: true, Site: true, Activity: true},
			EditValues{Author: "BDIVE", Site: "EGY-Hurghada-HUR", Activity: "snorkeling"})
		require.NoError(t, err)

		out, ok := MatchIdentified(got)
		require.True(t, ok)
		assert.Equal(t, "BDIVE", out.AuthorCode)
		assert.Equal(t, "EGY-Hurghada-HUR", out.SiteString)
		assert.Equal(t, "snorkeling", out.Activity)
		assert.Equal(t, "2024-01-15", out.Date)
		assert.Equal(t, "14-30-45", out.Time)
		assert.Equal(t, "DSC0001", out.OriginalName)
	})

	t.Run("basic stage ignores taxonomy mask", func(t *testing.T) {
		t.Parallel()
		basic, ok := MatchBasic(basicName)
		require.True(t, ok)

		got, err := ApplyEdits(StageBasic, IdentifiedFields{BasicFields: basic},
			EditMask{Activity: true, Species: true},
			EditValues{Activity: "transect", Species: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, "JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_transect_S-A7IV_DSC0001_N", got)
	})

	t.Run("unclassified stage is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ApplyEdits(StageUnclassified, IdentifiedFields{}, EditMask{}, EditValues{})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestFlipGPSMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"flips N to G", basicName, "JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_G", false},
		{
			"already G is idempotent",
			"JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_G",
			"JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_G",
			false,
		},
		{
			"legacy name gets marker appended",
			"JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001",
			"JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_G",
			false,
		},
		{
			"identified name flips trailing marker",
			identifiedName,
			"Pomacentridae_Amphiprion_clarkii_B_ok_ad_ty_zz_JDIVE_IDN-Bangka-BTI_2024-01-15_14-30-45_diving_S-A7IV_DSC0001_G",
			false,
		},
		{"unclassified name rejected", "DSC0001", "", true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := FlipGPSMarker(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// Flipping the result again must be a fixed point.
			again, err := FlipGPSMarker(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
