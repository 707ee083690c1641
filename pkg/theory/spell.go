package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// SpellingMode selects how ambiguous pitch classes are spelled.
type SpellingMode string

const (
	// SpellingAuto picks sharps or flats from the key-signature bias.
	SpellingAuto SpellingMode = "auto"
	// SpellingSharps always uses the sharp spelling.
	SpellingSharps SpellingMode = "sharps"
	// SpellingFlats always uses the flat spelling.
	SpellingFlats SpellingMode = "flats"
)

// ParseSpellingMode validates a spelling mode string.
func ParseSpellingMode(s string) (SpellingMode, error) {
	switch SpellingMode(strings.ToLower(strings.TrimSpace(s))) {
	case SpellingAuto, "":
		return SpellingAuto, nil
	case SpellingSharps:
		return SpellingSharps, nil
	case SpellingFlats:
		return SpellingFlats, nil
	}
	return "", fmt.Errorf("unknown spelling mode %q (want auto, sharps, or flats)", s)
}

// SpelledNote is a letter name plus accidental count. Accidental is the
// number of sharps (positive) or flats (negative). Octave is set only when
// spelling an absolute pitch.
type SpelledNote struct {
	Letter     string
	Accidental int
	Octave     *int
}

func (n SpelledNote) String() string {
	var b strings.Builder
	b.WriteString(n.Letter)
	switch {
	case n.Accidental > 0:
		b.WriteString(strings.Repeat("#", n.Accidental))
	case n.Accidental < 0:
		b.WriteString(strings.Repeat("b", -n.Accidental))
	}
	if n.Octave != nil {
		b.WriteString(strconv.Itoa(*n.Octave))
	}
	return b.String()
}

// Canonical chromatic spellings per pitch class.
var (
	sharpSpellings = [12]SpelledNote{
		{Letter: "C"}, {Letter: "C", Accidental: 1}, {Letter: "D"},
		{Letter: "D", Accidental: 1}, {Letter: "E"}, {Letter: "F"},
		{Letter: "F", Accidental: 1}, {Letter: "G"}, {Letter: "G", Accidental: 1},
		{Letter: "A"}, {Letter: "A", Accidental: 1}, {Letter: "B"},
	}
	flatSpellings = [12]SpelledNote{
		{Letter: "C"}, {Letter: "D", Accidental: -1}, {Letter: "D"},
		{Letter: "E", Accidental: -1}, {Letter: "E"}, {Letter: "F"},
		{Letter: "G", Accidental: -1}, {Letter: "G"}, {Letter: "A", Accidental: -1},
		{Letter: "A"}, {Letter: "B", Accidental: -1}, {Letter: "B"},
	}
)

// keySignatureByTonic maps a tonic pitch class to its circle-of-fifths
// position (positive = sharp keys, negative = flat keys). F# sits at +6
// rather than Gb at -6; Db at -5 rather than C# at +7.
var keySignatureByTonic = [12]int{
	0:  0,
	7:  1,
	2:  2,
	9:  3,
	4:  4,
	11: 5,
	6:  6,
	5:  -1,
	10: -2,
	3:  -3,
	8:  -4,
	1:  -5,
}

// KeySignatureForTonic returns the circle-of-fifths position for a tonic.
func KeySignatureForTonic(tonic PitchClass) int {
	return keySignatureByTonic[NormalizePC(int(tonic))]
}

// Spell converts a pitch class to a letter name plus accidental.
//
// With mode sharps or flats the fixed spelling is always used. With mode
// auto the key-signature bias decides: bias >= 0 prefers sharps, bias < 0
// prefers flats. When bias is nil the tonic's own circle-of-fifths position
// is used; with neither tonic nor bias, spelling is relative to C (sharps).
// The result is a pure function of its inputs.
func Spell(pc PitchClass, tonic *PitchClass, mode SpellingMode, bias *int) SpelledNote {
	idx := NormalizePC(int(pc))
	switch mode {
	case SpellingSharps:
		return sharpSpellings[idx]
	case SpellingFlats:
		return flatSpellings[idx]
	}

	effective := 0
	switch {
	case bias != nil:
		effective = *bias
	case tonic != nil:
		effective = KeySignatureForTonic(*tonic)
	}
	if effective < 0 {
		return flatSpellings[idx]
	}
	return sharpSpellings[idx]
}

// SpellPitch spells an absolute pitch, carrying its octave.
func SpellPitch(p Pitch, tonic *PitchClass, mode SpellingMode, bias *int) SpelledNote {
	note := Spell(p.PC, tonic, mode, bias)
	octave := p.Octave
	note.Octave = &octave
	return note
}

// degreeLabels are chromatic degree names relative to a tonic.
var degreeLabels = [12]string{
	"1", "b2", "2", "b3", "3", "4", "#4", "5", "b6", "6", "b7", "7",
}

// intervalLabels are compact interval-class names.
var intervalLabels = [12]string{
	"P1", "m2", "M2", "m3", "M3", "P4", "TT", "P5", "m6", "M6", "m7", "M7",
}

// DegreeLabel names the chromatic degree of pc relative to tonic ("b3", "#4").
func DegreeLabel(pc, tonic PitchClass) string {
	return degreeLabels[pc.Subtract(int(tonic))]
}

// IntervalLabel names the interval of the given semitone span ("m3", "TT").
func IntervalLabel(semitones int) string {
	return intervalLabels[NormalizePC(semitones)]
}

// ParseIntervalLabel resolves an interval name back to its semitone count.
func ParseIntervalLabel(label string) (int, bool) {
	needle := strings.TrimSpace(label)
	for semitones, name := range intervalLabels {
		if strings.EqualFold(name, needle) {
			return semitones, true
		}
	}
	return 0, false
}

// ParseDegreeLabel resolves a scale-degree token ("1", "b3", "#4") to its
// semitone offset from the tonic.
func ParseDegreeLabel(label string) (int, bool) {
	needle := strings.TrimSpace(label)
	for semitones, name := range degreeLabels {
		if strings.EqualFold(name, needle) {
			return semitones, true
		}
	}
	return 0, false
}
