package analysis

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

func loadCatalogs(t *testing.T) (*catalog.Catalog, *catalog.Catalog) {
	t.Helper()
	scales, err := catalog.LoadScales()
	require.NoError(t, err)
	qualities, err := catalog.LoadChordQualities()
	require.NoError(t, err)
	return scales, qualities
}

func TestExtensionPriority(t *testing.T) {
	assert.Less(t, ExtensionPriority("maj"), ExtensionPriority("maj7"))
	assert.Less(t, ExtensionPriority("maj7"), ExtensionPriority("7alt"))
	// session-defined qualities rank after every catalog quality
	assert.Greater(t, ExtensionPriority("ManualChord-1"), ExtensionPriority("dim7"))
}

func TestOverviewOrdering(t *testing.T) {
	scales, qualities := loadCatalogs(t)

	overview := Overview(scales, qualities)
	require.Len(t, overview, scales.Len())

	names := make([]string, 0, len(overview))
	for _, compat := range overview {
		names = append(names, compat.Scale.Name)
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestScaleOverviewIonian(t *testing.T) {
	scales, qualities := loadCatalogs(t)
	ionian, err := scales.Lookup("Ionian")
	require.NoError(t, err)

	compat := ScaleOverview(ionian, qualities)
	require.NotEmpty(t, compat.Compatible)

	// dyads and triads come before extended qualities
	assert.Equal(t, "power", compat.Compatible[0].Quality.Name)

	byName := make(map[string][]theory.PitchClass)
	for _, placement := range compat.Compatible {
		byName[placement.Quality.Name] = placement.Roots
	}
	assert.Equal(t, []theory.PitchClass{0, 5, 7}, byName["maj"])
	assert.Equal(t, []theory.PitchClass{7}, byName["7"])
	assert.Equal(t, []theory.PitchClass{0, 2, 4, 5, 7, 9}, byName["power"])

	assert.Contains(t, compat.Incompatible, "aug")
	assert.Contains(t, compat.Incompatible, "dim7")
	assert.True(t, sort.StringsAreSorted(compat.Incompatible))
	assert.NotContains(t, byName, "aug")
}

func TestScaleOverviewChromaticAdmitsEverything(t *testing.T) {
	scales, qualities := loadCatalogs(t)
	chromatic, err := scales.Lookup("Chromatic")
	require.NoError(t, err)

	compat := ScaleOverview(chromatic, qualities)
	assert.Empty(t, compat.Incompatible)
	assert.Len(t, compat.Compatible, qualities.Len())
	for _, placement := range compat.Compatible {
		assert.Len(t, placement.Roots, 12)
	}
}
