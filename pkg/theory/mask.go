package theory

import (
	"math/bits"
	"strconv"
	"strings"
)

// Mask is a 12-bit pitch-class set: bit i is set iff pitch class i is present.
type Mask uint16

// MaskFull has every pitch class set (the chromatic aggregate).
const MaskFull Mask = 1<<12 - 1

// MaskFromPitchClasses builds a mask from pitch classes, normalizing each
// into [0,11] first.
func MaskFromPitchClasses(pcs ...PitchClass) Mask {
	var m Mask
	for _, pc := range pcs {
		m |= 1 << NormalizePC(int(pc))
	}
	return m
}

// MaskFromIntervals builds a mask from integer semitone offsets.
func MaskFromIntervals(intervals []int) Mask {
	var m Mask
	for _, iv := range intervals {
		m |= 1 << NormalizePC(iv)
	}
	return m
}

// PitchClasses returns the set bits in ascending order. Exact inverse of
// MaskFromPitchClasses for any subset of {0..11}.
func (m Mask) PitchClasses() []PitchClass {
	pcs := make([]PitchClass, 0, bits.OnesCount16(uint16(m)))
	for pc := PitchClass(0); pc < 12; pc++ {
		if m.Contains(pc) {
			pcs = append(pcs, pc)
		}
	}
	return pcs
}

// Contains reports whether the pitch class is in the set.
func (m Mask) Contains(pc PitchClass) bool {
	return m&(1<<NormalizePC(int(pc))) != 0
}

// Cardinality is the number of pitch classes in the set.
func (m Mask) Cardinality() int {
	return bits.OnesCount16(uint16(m))
}

// Rotate transposes the set by the given number of semitones.
func (m Mask) Rotate(semitones int) Mask {
	var rotated Mask
	for pc := 0; pc < 12; pc++ {
		if m&(1<<pc) != 0 {
			rotated |= 1 << NormalizePC(pc+semitones)
		}
	}
	return rotated
}

// IsSubsetOf reports whether every pitch class of m is in other.
func (m Mask) IsSubsetOf(other Mask) bool {
	return m&other == m
}

// Jaccard is |intersection| / |union|, the score used for near matches.
// Two empty masks score zero.
func (m Mask) Jaccard(other Mask) float64 {
	union := bits.OnesCount16(uint16(m | other))
	if union == 0 {
		return 0
	}
	return float64(bits.OnesCount16(uint16(m&other))) / float64(union)
}

// SymmetryOrder is the smallest rotation step (1..12) that maps the set
// onto itself. 12 means no non-trivial rotational symmetry.
func (m Mask) SymmetryOrder() int {
	for step := 1; step < 12; step++ {
		if m.Rotate(step) == m {
			return step
		}
	}
	return 12
}

// String renders the mask as 12 binary digits, pitch class 0 first.
func (m Mask) String() string {
	var b strings.Builder
	for pc := 0; pc < 12; pc++ {
		if m.Contains(PitchClass(pc)) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseMask parses a decimal or binary mask string ("2741", "0b101010110101",
// "101010110101"), truncating to 12 bits.
func ParseMask(text string) (Mask, error) {
	stripped := strings.ToLower(strings.TrimSpace(text))
	if stripped == "" {
		return 0, &InvalidMaskError{Reason: "empty mask text"}
	}
	base := 10
	if strings.HasPrefix(stripped, "0b") {
		stripped = stripped[2:]
		base = 2
	} else if strings.Trim(stripped, "01") == "" {
		base = 2
	}
	value, err := strconv.ParseUint(stripped, base, 64)
	if err != nil {
		return 0, &InvalidMaskError{Reason: "unparseable mask text " + strconv.Quote(text)}
	}
	return Mask(value) & MaskFull, nil
}
