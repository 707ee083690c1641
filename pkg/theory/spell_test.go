package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcPtr(pc PitchClass) *PitchClass { return &pc }
func intPtr(v int) *int               { return &v }

func TestSpellFixedModes(t *testing.T) {
	// Fixed modes ignore tonic and bias entirely.
	assert.Equal(t, "D#", Spell(3, nil, SpellingSharps, nil).String())
	assert.Equal(t, "Eb", Spell(3, nil, SpellingFlats, nil).String())
	assert.Equal(t, "D#", Spell(3, pcPtr(5), SpellingSharps, intPtr(-7)).String())
	assert.Equal(t, "C", Spell(0, nil, SpellingFlats, nil).String())
}

func TestSpellAutoBias(t *testing.T) {
	tests := []struct {
		name string
		pc   PitchClass
		bias *int
		want string
	}{
		{"positive bias sharps", 1, intPtr(2), "C#"},
		{"zero bias sharps", 1, intPtr(0), "C#"},
		{"negative bias flats", 1, intPtr(-2), "Db"},
		{"natural unaffected", 7, intPtr(-7), "G"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Spell(tt.pc, nil, SpellingAuto, tt.bias).String())
		})
	}
}

func TestSpellAutoTonicPreference(t *testing.T) {
	// Without an explicit bias the tonic's circle-of-fifths side decides.
	assert.Equal(t, "Eb", Spell(3, pcPtr(5), SpellingAuto, nil).String())  // F major leans flat
	assert.Equal(t, "D#", Spell(3, pcPtr(7), SpellingAuto, nil).String())  // G major leans sharp
	assert.Equal(t, "D#", Spell(3, pcPtr(0), SpellingAuto, nil).String())  // C is neutral, sharp side
	assert.Equal(t, "Bb", Spell(10, pcPtr(10), SpellingAuto, nil).String()) // Bb major spells itself flat
}

func TestSpellDeterministic(t *testing.T) {
	first := Spell(6, pcPtr(2), SpellingAuto, nil)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Spell(6, pcPtr(2), SpellingAuto, nil))
	}
}

func TestKeySignatureForTonic(t *testing.T) {
	tests := []struct {
		tonic PitchClass
		want  int
	}{
		{0, 0}, {7, 1}, {2, 2}, {9, 3}, {4, 4}, {11, 5}, {6, 6},
		{5, -1}, {10, -2}, {3, -3}, {8, -4}, {1, -5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KeySignatureForTonic(tt.tonic), "tonic %d", tt.tonic)
	}
}

func TestSpellPitchCarriesOctave(t *testing.T) {
	note := SpellPitch(PitchFromMIDI(61), nil, SpellingFlats, nil)
	assert.Equal(t, "Db4", note.String())
}

func TestParseSpellingMode(t *testing.T) {
	mode, err := ParseSpellingMode("Sharps")
	require.NoError(t, err)
	assert.Equal(t, SpellingSharps, mode)

	mode, err = ParseSpellingMode("")
	require.NoError(t, err)
	assert.Equal(t, SpellingAuto, mode)

	_, err = ParseSpellingMode("quartertones")
	assert.Error(t, err)
}

func TestDegreeAndIntervalLabels(t *testing.T) {
	assert.Equal(t, "b3", DegreeLabel(3, 0))
	assert.Equal(t, "1", DegreeLabel(9, 9))
	assert.Equal(t, "#4", DegreeLabel(0, 6))
	assert.Equal(t, "TT", IntervalLabel(6))
	assert.Equal(t, "m3", IntervalLabel(15))

	semis, ok := ParseIntervalLabel("m3")
	require.True(t, ok)
	assert.Equal(t, 3, semis)

	semis, ok = ParseDegreeLabel("b7")
	require.True(t, ok)
	assert.Equal(t, 10, semis)

	_, ok = ParseDegreeLabel("b9")
	assert.False(t, ok)
}
