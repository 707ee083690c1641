package catalog

import (
	"sort"

	"github.com/tonality-labs/tonality/pkg/theory"
)

// Match pairs a catalog entry with the transposition at which it best fits
// an input mask. Score 1.0 is an exact bit-for-bit match after rotation;
// partial overlaps carry the Jaccard similarity at the best rotation.
type Match struct {
	Entry         *Entry
	Transposition int
	Score         float64
}

// MatchMask ranks catalog entries against an input mask. Every entry is
// tried at all 12 rotations; the best-scoring rotation wins (smallest
// transposition on rotation ties). Results are ordered by descending score
// with catalog insertion order breaking score ties, so ranking is stable.
func (c *Catalog) MatchMask(mask theory.Mask) []Match {
	matches := make([]Match, 0, len(c.entries))
	for _, entry := range c.entries {
		best := Match{Entry: entry}
		for transposition := 0; transposition < 12; transposition++ {
			rotated := entry.Mask.Rotate(transposition)
			score := rotated.Jaccard(mask)
			if score > best.Score {
				best.Score = score
				best.Transposition = transposition
			}
		}
		if best.Score > 0 {
			matches = append(matches, best)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// BorrowSuggestion names a scale that would contain a chord after adding
// the listed pitch classes. Distance is the size of that addition: the
// minimal symmetric difference between the scale and a superset of the
// chord.
type BorrowSuggestion struct {
	Entry   *Entry
	Missing []theory.PitchClass
	Score   float64
}

// Distance is the number of pitch classes the scale is missing.
func (s BorrowSuggestion) Distance() int { return len(s.Missing) }

// BorrowSuggestions ranks scales by how little they must change to contain
// the chord mask. Scales already containing the chord come first with an
// empty Missing list; the rest follow in order of ascending distance, with
// insertion order breaking ties. Used for modal-borrow reporting when a
// chord is not a subset of the active scale.
func (c *Catalog) BorrowSuggestions(chordMask theory.Mask) []BorrowSuggestion {
	suggestions := make([]BorrowSuggestion, 0, len(c.entries))
	for _, entry := range c.entries {
		var missing []theory.PitchClass
		for _, pc := range chordMask.PitchClasses() {
			if !entry.Mask.Contains(pc) {
				missing = append(missing, pc)
			}
		}
		suggestions = append(suggestions, BorrowSuggestion{
			Entry:   entry,
			Missing: missing,
			Score:   entry.Mask.Jaccard(chordMask),
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Distance() < suggestions[j].Distance()
	})
	return suggestions
}

// CompatibilityRoots returns the root positions (0..11) at which the chord
// quality's interval stack fits inside the scale mask.
func CompatibilityRoots(scale, quality *Entry) []theory.PitchClass {
	var roots []theory.PitchClass
	for root := theory.PitchClass(0); root < 12; root++ {
		if quality.Mask.Rotate(int(root)).IsSubsetOf(scale.Mask) {
			roots = append(roots, root)
		}
	}
	return roots
}
