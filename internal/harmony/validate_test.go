package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonality-labs/tonality/pkg/theory"
)

func TestValidateCleanDiatonicMapping(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: false})
	report := Validate("major diatonic", roles, fx.ionian)

	assert.True(t, report.Clean())
	assert.Equal(t, "major diatonic", report.Mapping)
	assert.Same(t, fx.ionian, report.Reference)
}

func TestValidateFlagsSecondaryDominant(t *testing.T) {
	fx := loadFixtures(t)

	dom7, err := fx.qualities.Lookup("7")
	require.NoError(t, err)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: false})
	// tack a V7/ii (D7 in C) onto the diatonic mapping; its F# leaves Ionian
	roles = append(roles, Role{
		Degree:     2,
		Quality:    dom7.Name,
		Intervals:  dom7.PitchClasses,
		Mask:       theory.MaskFromPitchClasses(2, 6, 9, 0),
		Role:       "dominant",
		ModalLabel: "V7/ii",
	})

	report := Validate("major with V7/ii", roles, fx.ionian)
	require.Len(t, report.Issues, 1)
	assert.False(t, report.Clean())

	issue := report.Issues[0]
	assert.Equal(t, theory.PitchClass(2), issue.Degree)
	assert.Equal(t, "V7/ii", issue.ModalLabel)
	assert.Equal(t, "7", issue.Quality)
	assert.Equal(t, fx.ionian.Mask, issue.Expected)
	assert.Equal(t, theory.MaskFromPitchClasses(0, 2, 6, 9), issue.Actual)
	assert.Equal(t, []theory.PitchClass{6}, issue.Missing)
}

func TestValidateRecomputesFromIntervals(t *testing.T) {
	fx := loadFixtures(t)

	dom7, err := fx.qualities.Lookup("7")
	require.NoError(t, err)

	// a stale mask on the role must not hide the mismatch
	role := Role{
		Degree:     2,
		Quality:    dom7.Name,
		Intervals:  dom7.PitchClasses,
		Mask:       fx.ionian.Mask,
		ModalLabel: "V7/ii",
	}
	report := Validate("stale mask", []Role{role}, fx.ionian)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, []theory.PitchClass{6}, report.Issues[0].Missing)
}

func TestValidateMinorMappingAgainstAeolian(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.aeolian, ModeMinor, fx.qualities, Options{IncludeBorrowed: true})
	report := Validate("minor defaults", roles, fx.aeolian)

	// the leading-tone chords (V7, viio, ...) are exactly the borrowed set
	assert.False(t, report.Clean())
	for _, issue := range report.Issues {
		assert.Contains(t, issue.Missing, theory.PitchClass(11),
			"%s should be flagged for the raised seventh", issue.ModalLabel)
	}
}
