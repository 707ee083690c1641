// Package theory implements pitch-class algebra over the 12-tone system:
// modular pitch arithmetic, 12-bit pitch-class masks, enharmonic spelling,
// and parsing of the pitch input formats accepted at the engine boundary.
package theory

import (
	"regexp"
	"strconv"
	"strings"
)

// PitchClass is a note modulo octave, normalized into [0,11].
type PitchClass int

// NormalizePC reduces an arbitrary integer into [0,11] using floor modulo,
// so negative values wrap correctly (-1 -> 11).
func NormalizePC(v int) PitchClass {
	return PitchClass(((v % 12) + 12) % 12)
}

// Add transposes p upward by interval semitones, wrapping modulo 12.
func (p PitchClass) Add(interval int) PitchClass {
	return NormalizePC(int(p) + interval)
}

// Subtract transposes p downward by interval semitones, wrapping modulo 12.
func (p PitchClass) Subtract(interval int) PitchClass {
	return NormalizePC(int(p) - interval)
}

// Valid reports whether p is already in canonical range.
func (p PitchClass) Valid() bool {
	return p >= 0 && p < 12
}

// Pitch is an absolute pitch identified by its MIDI number (C4 == 60).
type Pitch struct {
	MIDI   int
	PC     PitchClass
	Octave int
}

// PitchFromMIDI derives the pitch class and octave from a MIDI number.
func PitchFromMIDI(midi int) Pitch {
	return Pitch{
		MIDI:   midi,
		PC:     NormalizePC(midi),
		Octave: floorDiv(midi, 12) - 1,
	}
}

// PitchFromComponents builds an absolute pitch from pitch class and octave.
func PitchFromComponents(pc PitchClass, octave int) Pitch {
	return PitchFromMIDI(int(NormalizePC(int(pc))) + 12*(octave+1))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var noteTokenRe = regexp.MustCompile(`^([A-Ga-g])(#{1,2}|b{1,2})?(-?\d+)?$`)

// letter pitch classes in C major: C D E F G A B.
var letterPC = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParsedPitch is the normalized form of a pitch token. PC is always set;
// Pitch is non-nil only when the token carried octave information (an
// absolute note name or a MIDI number above the pitch-class range).
type ParsedPitch struct {
	PC          PitchClass
	Pitch       *Pitch
	Token       string
	IsNoteToken bool
}

// ParsePitchToken normalizes the pitch input formats accepted at the engine
// boundary: bare integers (pitch classes up to 11, MIDI numbers above),
// note names ("C", "F#", "Bb", "C##"), and absolute names ("C3", "Bb-1").
// All other call sites go through this one parser.
func ParsePitchToken(token string) (ParsedPitch, error) {
	stripped := strings.TrimSpace(token)
	if stripped == "" {
		return ParsedPitch{}, &InvalidPitchInputError{Token: token, Reason: "empty pitch token"}
	}

	if value, err := strconv.Atoi(stripped); err == nil {
		if value <= 11 {
			return ParsedPitch{PC: NormalizePC(value), Token: stripped}, nil
		}
		pitch := PitchFromMIDI(value)
		return ParsedPitch{PC: pitch.PC, Pitch: &pitch, Token: stripped}, nil
	}

	m := noteTokenRe.FindStringSubmatch(stripped)
	if m == nil {
		return ParsedPitch{}, &InvalidPitchInputError{Token: token, Reason: "unrecognized pitch token"}
	}

	letter := m[1][0]
	if letter >= 'a' {
		letter -= 'a' - 'A'
	}
	pc := letterPC[letter]
	for _, r := range m[2] {
		switch r {
		case '#':
			pc = pc.Add(1)
		case 'b':
			pc = pc.Subtract(1)
		}
	}

	parsed := ParsedPitch{PC: pc, Token: stripped, IsNoteToken: true}
	if m[3] != "" {
		octave, err := strconv.Atoi(m[3])
		if err != nil {
			return ParsedPitch{}, &InvalidPitchInputError{Token: token, Reason: "malformed octave"}
		}
		pitch := PitchFromComponents(pc, octave)
		parsed.Pitch = &pitch
	}
	return parsed, nil
}

// ParsePitchClass parses a token that must resolve to a bare pitch class.
func ParsePitchClass(token string) (PitchClass, error) {
	parsed, err := ParsePitchToken(token)
	if err != nil {
		return 0, err
	}
	return parsed.PC, nil
}
