package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonality-labs/tonality/pkg/theory"
)

func TestCompareMajMin(t *testing.T) {
	scales, qualities := loadCatalogs(t)
	maj, err := qualities.Lookup("maj")
	require.NoError(t, err)
	min, err := qualities.Lookup("min")
	require.NoError(t, err)

	cmp := CompareQualities(maj, min, scales)

	assert.Equal(t, "maj", cmp.QualityA)
	assert.Equal(t, "min", cmp.QualityB)
	assert.Equal(t, []theory.PitchClass{4}, cmp.OnlyA)
	assert.Equal(t, []theory.PitchClass{3}, cmp.OnlyB)

	var ionian *ScalePlacement
	for i := range cmp.Shared {
		if cmp.Shared[i].Scale.Name == "Ionian" {
			ionian = &cmp.Shared[i]
		}
		assert.NotEqual(t, "Chromatic", cmp.Shared[i].Scale.Name)
	}
	require.NotNil(t, ionian, "both triads live in the major scale")
	assert.Equal(t, []theory.PitchClass{0, 5, 7}, ionian.RootsA)
	assert.Equal(t, []theory.PitchClass{2, 4, 9}, ionian.RootsB)
	assert.Empty(t, ionian.SharedRoots)
	assert.Equal(t, []string{"I", "III", "V"}, ionian.DegreesA[0])
	assert.Equal(t, []string{"II", "IV", "VI"}, ionian.DegreesB[2])

	// both triads carry a perfect fifth, so neither fits the all-even
	// whole-tone collection
	assert.NotContains(t, cmp.UniqueToA, "Whole Tone")
	assert.NotContains(t, cmp.UniqueToB, "Whole Tone")
}

func TestCompareAugMin(t *testing.T) {
	scales, qualities := loadCatalogs(t)
	aug, err := qualities.Lookup("aug")
	require.NoError(t, err)
	min, err := qualities.Lookup("min")
	require.NoError(t, err)

	cmp := CompareQualities(aug, min, scales)

	// the augmented triad is all even intervals; the minor triad's fifth
	// keeps it out of the whole-tone collection
	assert.Contains(t, cmp.UniqueToA, "Whole Tone")
	assert.NotContains(t, cmp.UniqueToB, "Whole Tone")
}

func TestIntervalFingerprint(t *testing.T) {
	tests := []struct {
		name string
		pcs  []theory.PitchClass
		want string
	}{
		{name: "major triad", pcs: []theory.PitchClass{0, 4, 7}, want: "ic3:1, ic4:1, ic5:1"},
		{name: "dim7", pcs: []theory.PitchClass{0, 3, 6, 9}, want: "ic3:4, ic6:2"},
		{name: "empty", pcs: nil, want: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalFingerprint(tt.pcs))
		})
	}
}

func TestRomanDegreeLabel(t *testing.T) {
	scales, _ := loadCatalogs(t)
	ionian, err := scales.Lookup("Ionian")
	require.NoError(t, err)

	assert.Equal(t, "I", RomanDegreeLabel(ionian, 0))
	assert.Equal(t, "V", RomanDegreeLabel(ionian, 7))
	assert.Equal(t, OutOfScaleLabel, RomanDegreeLabel(ionian, 6))
}
