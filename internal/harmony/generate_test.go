package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

type fixtures struct {
	scales    *catalog.Catalog
	qualities *catalog.Catalog
	ionian    *catalog.Entry
	aeolian   *catalog.Entry
}

func loadFixtures(t *testing.T) fixtures {
	t.Helper()
	scales, err := catalog.LoadScales()
	require.NoError(t, err)
	qualities, err := catalog.LoadChordQualities()
	require.NoError(t, err)
	ionian, err := scales.Lookup("Ionian")
	require.NoError(t, err)
	aeolian, err := scales.Lookup("Aeolian")
	require.NoError(t, err)
	return fixtures{scales: scales, qualities: qualities, ionian: ionian, aeolian: aeolian}
}

func TestGenerateDiatonicOnly(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: false})
	require.NotEmpty(t, roles)

	for _, role := range roles {
		assert.True(t, role.Mask.IsSubsetOf(fx.ionian.Mask),
			"%s (%s) should be diatonic, mask %s", role.ModalLabel, role.Quality, role.Mask)
		assert.False(t, role.Borrowed())
	}
}

func TestGenerateOrdering(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: true})
	require.NotEmpty(t, roles)

	// degree ascending
	for i := 1; i < len(roles); i++ {
		assert.LessOrEqual(t, roles[i-1].Degree, roles[i].Degree)
	}
	// the tonic triad comes first, in declaration order
	assert.Equal(t, "I", roles[0].ModalLabel)
	assert.Equal(t, "maj", roles[0].Quality)
}

func TestGenerateIdempotent(t *testing.T) {
	fx := loadFixtures(t)
	opts := Options{
		IncludeBorrowed: true,
		Features:        NewFeatureSet(FeatureExtended, FeatureAlteredDominant, FeatureSuspended),
	}

	first := Generate(fx.ionian, ModeMajor, fx.qualities, opts)
	second := Generate(fx.ionian, ModeMajor, fx.qualities, opts)
	assert.Equal(t, first, second)
}

func TestGenerateSharedDominantTemplate(t *testing.T) {
	fx := loadFixtures(t)
	opts := Options{IncludeBorrowed: true}

	major := Generate(fx.ionian, ModeMajor, fx.qualities, opts)
	minor := Generate(fx.aeolian, ModeMinor, fx.qualities, opts)

	findV7 := func(roles []Role) *Role {
		for i := range roles {
			if roles[i].Degree == 7 && roles[i].Quality == "7" && roles[i].Role == "dominant" {
				return &roles[i]
			}
		}
		return nil
	}

	majorV7 := findV7(major)
	minorV7 := findV7(minor)
	require.NotNil(t, majorV7)
	require.NotNil(t, minorV7)

	// the dominant seventh lands on the same absolute degree with the same
	// pitch content in both modes
	assert.Equal(t, majorV7.Mask, minorV7.Mask)
	assert.Equal(t, theory.MaskFromPitchClasses(7, 11, 2, 5), majorV7.Mask)
}

func TestGenerateBorrowedTagging(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.aeolian, ModeMinor, fx.qualities, Options{IncludeBorrowed: true})

	var v7 *Role
	for i := range roles {
		if roles[i].ModalLabel == "V7" {
			v7 = &roles[i]
			break
		}
	}
	require.NotNil(t, v7, "leading_tone is in the minor defaults, V7 must be emitted")
	assert.True(t, v7.Borrowed())
	assert.NotContains(t, v7.Tags, FeatureDiatonic)

	// the minor v7 (subtonic seventh chord) is natively diatonic
	var minorV *Role
	for i := range roles {
		if roles[i].ModalLabel == "v7" {
			minorV = &roles[i]
			break
		}
	}
	require.NotNil(t, minorV)
	assert.False(t, minorV.Borrowed())
}

func TestGenerateFeatureGating(t *testing.T) {
	fx := loadFixtures(t)

	labels := func(roles []Role) map[string]bool {
		set := make(map[string]bool, len(roles))
		for _, role := range roles {
			set[role.ModalLabel] = true
		}
		return set
	}

	base := labels(Generate(fx.ionian, ModeMajor, fx.qualities, Options{
		IncludeBorrowed: true,
		Features:        NewFeatureSet(),
	}))
	assert.True(t, base["I"])
	assert.True(t, base["V7"])
	assert.False(t, base["V7b9"], "altered dominants need the altered_dominant feature")
	assert.False(t, base["I5"], "power dyads need the power_dyads feature")

	altered := labels(Generate(fx.ionian, ModeMajor, fx.qualities, Options{
		IncludeBorrowed: true,
		Features:        NewFeatureSet(FeatureAlteredDominant, FeaturePowerDyads),
	}))
	assert.True(t, altered["V7b9"])
	assert.True(t, altered["Valt"])
	assert.True(t, altered["I5"])
}

func TestGenerateDegreeFiltering(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: true})
	dominant := RolesForDegree(roles, 7)
	require.NotEmpty(t, dominant)
	for _, role := range dominant {
		assert.Equal(t, theory.PitchClass(7), role.Degree)
		assert.Equal(t, "dominant", role.Role)
	}
}

func TestGenerateTonicProlongationSubtype(t *testing.T) {
	fx := loadFixtures(t)

	roles := Generate(fx.ionian, ModeMajor, fx.qualities, Options{IncludeBorrowed: true})
	var iii *Role
	for i := range roles {
		if roles[i].ModalLabel == "iii" {
			iii = &roles[i]
			break
		}
	}
	require.NotNil(t, iii)
	assert.Equal(t, "tonic", iii.Role)
	assert.Equal(t, TagTonicProlongation, iii.RoleSubtype)
}

func TestDefaultFeatures(t *testing.T) {
	major := DefaultFeatures(ModeMajor)
	assert.True(t, major.Has(FeatureSixthChords))
	assert.False(t, major.Has(FeatureLeadingTone))

	minor := DefaultFeatures(ModeMinor)
	assert.True(t, minor.Has(FeatureLeadingTone))
	assert.True(t, minor.Has(FeatureParallelMajor))
	assert.False(t, minor.Has(FeatureSixthChords))
}
