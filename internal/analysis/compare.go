package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII"}

// OutOfScaleLabel marks a chord tone that falls outside the scale when
// degree labels are rendered.
const OutOfScaleLabel = "(out)"

// ScalePlacement reports, for one scale, where each of two qualities fits
// and how their chord tones map onto scale degrees at each usable root.
type ScalePlacement struct {
	Scale       *catalog.Entry
	RootsA      []theory.PitchClass
	RootsB      []theory.PitchClass
	SharedRoots []theory.PitchClass
	DegreesA    map[theory.PitchClass][]string
	DegreesB    map[theory.PitchClass][]string
}

// Comparison relates two chord qualities across the scale catalog.
type Comparison struct {
	QualityA     string
	QualityB     string
	FingerprintA string
	FingerprintB string
	OnlyA        []theory.PitchClass
	OnlyB        []theory.PitchClass
	Shared       []ScalePlacement
	UniqueToA    []string
	UniqueToB    []string
}

// CompareQualities places two chord qualities against every scale in the
// catalog (the chromatic scale is skipped since it admits everything) and
// reports shared contexts, exclusive scales, and interval differences.
func CompareQualities(a, b *catalog.Entry, scales *catalog.Catalog) Comparison {
	cmp := Comparison{
		QualityA:     a.Name,
		QualityB:     b.Name,
		FingerprintA: IntervalFingerprint(a.PitchClasses),
		FingerprintB: IntervalFingerprint(b.PitchClasses),
		OnlyA:        pcDifference(a.PitchClasses, b.PitchClasses),
		OnlyB:        pcDifference(b.PitchClasses, a.PitchClasses),
	}

	ordered := append([]*catalog.Entry(nil), scales.Entries()...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	for _, scale := range ordered {
		if catalog.NormalizeName(scale.Name) == "chromatic" {
			continue
		}
		rootsA := catalog.CompatibilityRoots(scale, a)
		rootsB := catalog.CompatibilityRoots(scale, b)
		switch {
		case len(rootsA) > 0 && len(rootsB) > 0:
			cmp.Shared = append(cmp.Shared, ScalePlacement{
				Scale:       scale,
				RootsA:      rootsA,
				RootsB:      rootsB,
				SharedRoots: pcIntersection(rootsA, rootsB),
				DegreesA:    degreeMaps(scale, a, rootsA),
				DegreesB:    degreeMaps(scale, b, rootsB),
			})
		case len(rootsA) > 0:
			cmp.UniqueToA = append(cmp.UniqueToA, scale.Name)
		case len(rootsB) > 0:
			cmp.UniqueToB = append(cmp.UniqueToB, scale.Name)
		}
	}
	return cmp
}

// IntervalFingerprint renders the three most frequent interval classes of
// a pitch-class set, e.g. "ic5:2, ic4:1, ic3:1".
func IntervalFingerprint(pcs []theory.PitchClass) string {
	vector := IntervalVector(pcs)
	type icCount struct {
		ic    int
		count int
	}
	counts := make([]icCount, 0, 6)
	for i, count := range vector {
		if count > 0 {
			counts = append(counts, icCount{ic: i + 1, count: count})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].ic < counts[j].ic
	})
	if len(counts) > 3 {
		counts = counts[:3]
	}
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("ic%d:%d", c.ic, c.count))
	}
	return strings.Join(parts, ", ")
}

// RomanDegreeLabel names a pitch class by its position in the scale using
// Roman numerals, or OutOfScaleLabel when the tone leaves the scale.
func RomanDegreeLabel(scale *catalog.Entry, pc theory.PitchClass) string {
	for i, degree := range scale.PitchClasses {
		if degree == pc {
			if i < len(romanNumerals) {
				return romanNumerals[i]
			}
			return fmt.Sprintf("%d", i+1)
		}
	}
	return OutOfScaleLabel
}

func degreeMaps(scale, quality *catalog.Entry, roots []theory.PitchClass) map[theory.PitchClass][]string {
	out := make(map[theory.PitchClass][]string, len(roots))
	for _, root := range roots {
		labels := make([]string, 0, len(quality.PitchClasses))
		for _, iv := range quality.PitchClasses {
			labels = append(labels, RomanDegreeLabel(scale, root.Add(int(iv))))
		}
		out[root] = labels
	}
	return out
}

func pcDifference(a, b []theory.PitchClass) []theory.PitchClass {
	inB := make(map[theory.PitchClass]struct{}, len(b))
	for _, pc := range b {
		inB[pc] = struct{}{}
	}
	var out []theory.PitchClass
	for _, pc := range a {
		if _, ok := inB[pc]; !ok {
			out = append(out, pc)
		}
	}
	return out
}

func pcIntersection(a, b []theory.PitchClass) []theory.PitchClass {
	inB := make(map[theory.PitchClass]struct{}, len(b))
	for _, pc := range b {
		inB[pc] = struct{}{}
	}
	var out []theory.PitchClass
	for _, pc := range a {
		if _, ok := inB[pc]; ok {
			out = append(out, pc)
		}
	}
	return out
}
