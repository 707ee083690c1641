package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonality-labs/tonality/pkg/theory"
)

func TestLoadScales(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)
	assert.Greater(t, scales.Len(), 10)

	ionian, err := scales.Lookup("Ionian")
	require.NoError(t, err)
	assert.Equal(t, theory.MaskFromPitchClasses(0, 2, 4, 5, 7, 9, 11), ionian.Mask)
	assert.Equal(t, []theory.PitchClass{0, 2, 4, 5, 7, 9, 11}, ionian.PitchClasses)
}

func TestLoadChordQualities(t *testing.T) {
	qualities, err := LoadChordQualities()
	require.NoError(t, err)

	dom7, err := qualities.Lookup("7")
	require.NoError(t, err)
	assert.Equal(t, theory.MaskFromPitchClasses(0, 4, 7, 10), dom7.Mask)

	// alias resolution returns the identical entry
	viaAlias, err := qualities.Lookup("dom7")
	require.NoError(t, err)
	assert.Same(t, dom7, viaAlias)
}

func TestLookupAliases(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)

	aeolian, err := scales.Lookup("Aeolian")
	require.NoError(t, err)

	tests := []string{"aeolian", "Natural Minor", "natural minor", "  natural   minor  ", "NATURAL MINOR"}
	for _, name := range tests {
		got, err := scales.Lookup(name)
		require.NoError(t, err, "lookup %q", name)
		assert.Same(t, aeolian, got, "lookup %q", name)
	}
}

func TestLookupNotFound(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)

	_, err = scales.Lookup("Klingon")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindScale, notFound.Kind)
	assert.Equal(t, "Klingon", notFound.Name)
}

func TestNewEntryValidation(t *testing.T) {
	_, err := NewEntry("empty", nil, nil, nil)
	var invalid *theory.InvalidMaskError
	require.ErrorAs(t, err, &invalid)

	_, err = NewEntry("rootless", []theory.PitchClass{3, 7}, nil, nil)
	require.ErrorAs(t, err, &invalid)

	entry, err := NewEntry("dup degrees", []theory.PitchClass{0, 7, 7, 19}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []theory.PitchClass{0, 7}, entry.PitchClasses)
}

func TestAddRejectsDuplicateNames(t *testing.T) {
	c := New(KindScale)
	first, err := NewEntry("Ionian", []theory.PitchClass{0, 2, 4, 5, 7, 9, 11}, []string{"Major"}, nil)
	require.NoError(t, err)
	require.NoError(t, c.Add(first))

	second, err := NewEntry("major", []theory.PitchClass{0, 4, 7}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, c.Add(second))
}

func TestMatchMaskExact(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)

	// the major scale's own mask matches Ionian exactly at transposition 0
	input := theory.MaskFromPitchClasses(0, 2, 4, 5, 7, 9, 11)
	matches := scales.MatchMask(input)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Ionian", matches[0].Entry.Name)
	assert.Equal(t, 0, matches[0].Transposition)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestMatchMaskTransposed(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)

	// D major pitch classes: Ionian rotated up two semitones
	input := theory.MaskFromPitchClasses(2, 4, 6, 7, 9, 11, 1)
	matches := scales.MatchMask(input)
	require.NotEmpty(t, matches)

	var ionian *Match
	for i := range matches {
		if matches[i].Entry.Name == "Ionian" {
			ionian = &matches[i]
			break
		}
	}
	require.NotNil(t, ionian)
	assert.InDelta(t, 1.0, ionian.Score, 1e-9)
	assert.Equal(t, 2, ionian.Transposition)
}

func TestMatchMaskOrderingStable(t *testing.T) {
	c := New(KindChordQuality)
	for _, name := range []string{"first", "second"} {
		entry, err := NewEntry(name, []theory.PitchClass{0, 4, 7}, nil, nil)
		require.NoError(t, err)
		// same mask under different names: insertion order must decide
		require.NoError(t, c.Add(entry))
	}

	matches := c.MatchMask(theory.MaskFromPitchClasses(0, 4, 7))
	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].Entry.Name)
	assert.Equal(t, "second", matches[1].Entry.Name)
}

func TestBorrowSuggestions(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)

	// V7 in a minor key: {7, 11, 2, 5} needs the raised seventh
	chord := theory.MaskFromPitchClasses(7, 11, 2, 5)
	suggestions := scales.BorrowSuggestions(chord)
	require.NotEmpty(t, suggestions)

	// top suggestions fully contain the chord
	assert.Zero(t, suggestions[0].Distance())
	assert.Empty(t, suggestions[0].Missing)

	// Aeolian is missing exactly the leading tone
	var aeolian *BorrowSuggestion
	for i := range suggestions {
		if suggestions[i].Entry.Name == "Aeolian" {
			aeolian = &suggestions[i]
			break
		}
	}
	require.NotNil(t, aeolian)
	assert.Equal(t, []theory.PitchClass{11}, aeolian.Missing)

	// distances never decrease
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i].Distance(), suggestions[i-1].Distance())
	}
}

func TestCompatibilityRoots(t *testing.T) {
	scales, err := LoadScales()
	require.NoError(t, err)
	qualities, err := LoadChordQualities()
	require.NoError(t, err)

	ionian, err := scales.Lookup("Ionian")
	require.NoError(t, err)
	maj, err := qualities.Lookup("maj")
	require.NoError(t, err)
	dom7, err := qualities.Lookup("7")
	require.NoError(t, err)

	// major triads sit on degrees I, IV, V of the major scale
	assert.Equal(t, []theory.PitchClass{0, 5, 7}, CompatibilityRoots(ionian, maj))
	// the dominant seventh fits only on V
	assert.Equal(t, []theory.PitchClass{7}, CompatibilityRoots(ionian, dom7))
}
