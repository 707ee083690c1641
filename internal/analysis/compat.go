package analysis

import (
	"sort"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// extensionOrder ranks chord qualities from plain triads and dyads out to
// altered and symmetric extensions. Overview listings sort by this rank so
// simpler structures appear before their embellished forms.
var extensionOrder = []string{
	"power", "maj", "min", "dim", "aug", "sus2", "sus4",
	"maj6", "min6",
	"majadd9", "minadd9", "maj6add9", "min6add9",
	"maj7", "min7", "min7b5", "minmaj7", "7", "7sus4",
	"maj9", "min9", "9",
	"9b5", "9#5", "maj7#11", "maj9#11",
	"11", "min11",
	"13", "min13", "maj13", "7b5", "7#5", "7b9", "7#9", "7#11",
	"7alt", "dim7",
}

var extensionRank = func() map[string]int {
	ranks := make(map[string]int, len(extensionOrder))
	for i, name := range extensionOrder {
		ranks[name] = i
	}
	return ranks
}()

// ExtensionPriority returns the overview sort rank for a quality name.
// Unranked (session-defined) qualities sort after every catalog quality.
func ExtensionPriority(name string) int {
	if rank, ok := extensionRank[name]; ok {
		return rank
	}
	return len(extensionOrder)
}

// QualityPlacement records where one chord quality fits inside a scale.
type QualityPlacement struct {
	Quality *catalog.Entry
	Roots   []theory.PitchClass
}

/// ScaleCompatibility is the compatibility picture of a single scale:
// which qualities fit (and at which roots) and which never do.
type ScaleCompatibility struct {
	Scale        *catalog.Entry
	Compatible   []QualityPlacement
	Incompatible []string
}

// Overview computes chord-scale compatibility for every scale in the
// catalog. Scales are ordered by name; each scale's compatible qualities
// are ordered by extension priority, then cardinality, widest interval,
// and name. Incompatible quality names are sorted.
func Overview(scales, qualities *catalog.Catalog) []ScaleCompatibility {
	ordered := append([]*catalog.Entry(nil), scales.Entries()...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	out := make([]ScaleCompatibility, 0, len(ordered))
	for _, scale := range ordered {
		out = append(out, scaleCompatibility(scale, qualities))
	}
	return out
}

// ScaleOverview computes the compatibility picture for one scale.
func ScaleOverview(scale *catalog.Entry, qualities *catalog.Catalog) ScaleCompatibility {
	return scaleCompatibility(scale, qualities)
}

func scaleCompatibility(scale *catalog.Entry, qualities *catalog.Catalog) ScaleCompatibility {
	compat := ScaleCompatibility{Scale: scale}
	for _, quality := range qualities.Entries() {
		roots := catalog.CompatibilityRoots(scale, quality)
		if len(roots) == 0 {
			compat.Incompatible = append(compat.Incompatible, quality.Name)
			continue
		}
		compat.Compatible = append(compat.Compatible, QualityPlacement{Quality: quality, Roots: roots})
	}
	sort.Slice(compat.Compatible, func(i, j int) bool {
		return lessPlacement(compat.Compatible[i].Quality, compat.Compatible[j].Quality)
	})
	sort.Strings(compat.Incompatible)
	return compat
}

func lessPlacement(a, b *catalog.Entry) bool {
	ra, rb := ExtensionPriority(a.Name), ExtensionPriority(b.Name)
	if ra != rb {
		return ra < rb
	}
	if len(a.PitchClasses) != len(b.PitchClasses) {
		return len(a.PitchClasses) < len(b.PitchClasses)
	}
	ma, mb := widestInterval(a), widestInterval(b)
	if ma != mb {
		return ma < mb
	}
	return a.Name < b.Name
}

func widestInterval(entry *catalog.Entry) theory.PitchClass {
	var widest theory.PitchClass
	for _, pc := range entry.PitchClasses {
		if pc > widest {
			widest = pc
		}
	}
	return widest
}
