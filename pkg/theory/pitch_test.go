package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePC(t *testing.T) {
	tests := []struct {
		in   int
		want PitchClass
	}{
		{0, 0},
		{11, 11},
		{12, 0},
		{13, 1},
		{-1, 11},
		{-12, 0},
		{-13, 11},
		{25, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePC(tt.in), "NormalizePC(%d)", tt.in)
	}
}

func TestAddSubtractRoundTrip(t *testing.T) {
	// subtract(add(p, k), k) == p for every pitch class and a spread of k.
	for p := PitchClass(0); p < 12; p++ {
		for _, k := range []int{-25, -12, -1, 0, 1, 5, 7, 11, 12, 13, 100} {
			assert.Equal(t, p, p.Add(k).Subtract(k), "p=%d k=%d", p, k)
		}
	}
}

func TestSubtractWrapsNegative(t *testing.T) {
	assert.Equal(t, PitchClass(11), PitchClass(0).Subtract(1))
	assert.Equal(t, PitchClass(5), PitchClass(0).Subtract(7))
}

func TestPitchFromMIDI(t *testing.T) {
	tests := []struct {
		midi   int
		pc     PitchClass
		octave int
	}{
		{60, 0, 4},  // middle C
		{69, 9, 4},  // A4
		{0, 0, -1},
		{11, 11, -1},
		{127, 7, 9},
	}

	for _, tt := range tests {
		p := PitchFromMIDI(tt.midi)
		assert.Equal(t, tt.pc, p.PC, "midi %d pc", tt.midi)
		assert.Equal(t, tt.octave, p.Octave, "midi %d octave", tt.midi)
	}
}

func TestPitchFromComponents(t *testing.T) {
	p := PitchFromComponents(0, 4)
	assert.Equal(t, 60, p.MIDI)

	p = PitchFromComponents(10, -1)
	assert.Equal(t, 10, p.MIDI)
	assert.Equal(t, PitchClass(10), p.PC)
}

func TestParsePitchToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantPC   PitchClass
		wantMIDI int // -1 when no absolute pitch expected
		wantNote bool
	}{
		{"bare pitch class", "3", 3, -1, false},
		{"pitch class eleven", "11", 11, -1, false},
		{"negative wraps", "-1", 11, -1, false},
		{"midi number", "60", 0, 60, false},
		{"plain note", "C", 0, -1, true},
		{"sharp note", "F#", 6, -1, true},
		{"flat note", "Bb", 10, -1, true},
		{"double sharp", "C##", 2, -1, true},
		{"double flat", "Ebb", 2, -1, true},
		{"lowercase", "g", 7, -1, true},
		{"absolute note", "C3", 0, 48, true},
		{"absolute negative octave", "Bb-1", 10, 10, true},
		{"whitespace trimmed", "  D  ", 2, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParsePitchToken(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPC, parsed.PC)
			assert.Equal(t, tt.wantNote, parsed.IsNoteToken)
			if tt.wantMIDI >= 0 {
				require.NotNil(t, parsed.Pitch)
				assert.Equal(t, tt.wantMIDI, parsed.Pitch.MIDI)
			} else {
				assert.Nil(t, parsed.Pitch)
			}
		})
	}
}

func TestParsePitchTokenErrors(t *testing.T) {
	for _, token := range []string{"", "   ", "H", "C#b", "Cb#", "4.5", "do"} {
		t.Run("token "+token, func(t *testing.T) {
			_, err := ParsePitchToken(token)
			require.Error(t, err)
			var invalid *InvalidPitchInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
