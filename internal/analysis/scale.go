// Package analysis derives structural reports from scales and chord
// qualities: step patterns, interval vectors, modal rotations, symmetry,
// chord-scale compatibility, and comparisons across the catalog.
package analysis

import (
	"sort"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// ScaleOptions selects which sections of a scale report are produced. The
// zero value yields the full report; note names require a tonic.
type ScaleOptions struct {
	Tonic        *theory.PitchClass
	Spelling     theory.SpellingMode
	KeySignature *int
	SkipModes    bool
	SkipSymmetry bool
	SkipSummary  bool
}

// ModeRotation is one modal rotation of a scale, rebuilt on a new root.
type ModeRotation struct {
	Index          int
	Root           theory.PitchClass
	Degrees        []theory.PitchClass
	Mask           theory.Mask
	StepPattern    []int
	IntervalVector [6]int
}

// AxisKind distinguishes reflection axes that pass through a pitch class
// from axes that pass between two adjacent ones.
type AxisKind string

const (
	AxisPitch   AxisKind = "pitch"
	AxisBetween AxisKind = "between"
)

// ReflectionAxis is an inversional symmetry axis on the pitch-class clock.
// Center is measured in semitones; between-axes land on half positions.
type ReflectionAxis struct {
	Kind   AxisKind
	Center float64
}

// SymmetryReport captures rotational and reflective symmetry of a scale.
type SymmetryReport struct {
	RotationalOrder int
	RotationalSteps []int
	Achiral         bool
	ReflectionAxes  []ReflectionAxis
}

// IntervalSummary condenses the step pattern and interval vector.
type IntervalSummary struct {
	Cardinality   int
	LargestStep   int
	SmallestStep  int
	SemitoneCount int
	ToneCount     int
	TritonePairs  int
}

// ScaleReport is the full structural analysis of one scale.
type ScaleReport struct {
	Name           string
	Degrees        []theory.PitchClass
	Cardinality    int
	StepPattern    []int
	IntervalVector [6]int
	Mask           theory.Mask
	NoteNames      []string
	Modes          []ModeRotation
	Symmetry       *SymmetryReport
	Summary        *IntervalSummary
}

// AnalyzeScale builds a structural report for a catalog entry. Note names
// are emitted only when opts.Tonic is set; they spell each degree relative
// to the tonic using the configured spelling preference.
func AnalyzeScale(entry *catalog.Entry, opts ScaleOptions) ScaleReport {
	degrees := append([]theory.PitchClass(nil), entry.PitchClasses...)
	pattern := StepPattern(degrees)
	vector := IntervalVector(degrees)

	report := ScaleReport{
		Name:           entry.Name,
		Degrees:        degrees,
		Cardinality:    len(degrees),
		StepPattern:    pattern,
		IntervalVector: vector,
		Mask:           entry.Mask,
	}
	if opts.Tonic != nil {
		mode := opts.Spelling
		if mode == "" {
			mode = theory.SpellingAuto
		}
		report.NoteNames = make([]string, 0, len(degrees))
		for _, degree := range degrees {
			pc := opts.Tonic.Add(int(degree))
			report.NoteNames = append(report.NoteNames, theory.Spell(pc, opts.Tonic, mode, opts.KeySignature).String())
		}
	}
	if !opts.SkipModes {
		report.Modes = modalRotations(degrees)
	}
	if !opts.SkipSymmetry {
		report.Symmetry = symmetryReport(entry.Mask, degrees, pattern)
	}
	if !opts.SkipSummary {
		report.Summary = intervalSummary(pattern, vector)
	}
	return report
}

// StepPattern returns the circular semitone gaps between consecutive
// degrees, closing the loop from the last degree back to the first. For a
// single degree the wrap-around step is the full octave.
func StepPattern(degrees []theory.PitchClass) []int {
	ordered := sortedUnique(degrees)
	if len(ordered) == 0 {
		return nil
	}
	pattern := make([]int, len(ordered))
	for i, pc := range ordered {
		next := ordered[(i+1)%len(ordered)]
		step := int(next.Subtract(int(pc)))
		if step == 0 {
			step = 12
		}
		pattern[i] = step
	}
	return pattern
}

// IntervalVector counts pitch-class pairs per interval class 1..6.
func IntervalVector(degrees []theory.PitchClass) [6]int {
	ordered := sortedUnique(degrees)
	var vector [6]int
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			diff := int(ordered[j].Subtract(int(ordered[i])))
			if diff > 6 {
				diff = 12 - diff
			}
			if diff >= 1 && diff <= 6 {
				vector[diff-1]++
			}
		}
	}
	return vector
}

func modalRotations(degrees []theory.PitchClass) []ModeRotation {
	ordered := sortedUnique(degrees)
	rotations := make([]ModeRotation, 0, len(ordered))
	for i, root := range ordered {
		rotated := make([]theory.PitchClass, 0, len(ordered))
		for _, pc := range ordered {
			rotated = append(rotated, pc.Subtract(int(root)))
		}
		sort.Slice(rotated, func(a, b int) bool { return rotated[a] < rotated[b] })
		rotations = append(rotations, ModeRotation{
			Index:          i,
			Root:           root,
			Degrees:        rotated,
			Mask:           theory.MaskFromPitchClasses(rotated...),
			StepPattern:    StepPattern(rotated),
			IntervalVector: IntervalVector(rotated),
		})
	}
	return rotations
}

func symmetryReport(mask theory.Mask, degrees []theory.PitchClass, pattern []int) *SymmetryReport {
	report := &SymmetryReport{RotationalOrder: mask.SymmetryOrder()}
	for step := 1; step < 12; step++ {
		if mask.Rotate(step) == mask {
			report.RotationalSteps = append(report.RotationalSteps, step)
		}
	}
	if len(report.RotationalSteps) == 0 {
		report.RotationalSteps = []int{12}
	}
	report.Achiral = achiral(pattern)
	report.ReflectionAxes = reflectionAxes(degrees)
	return report
}

// achiral reports whether the reversed step pattern is some rotation of the
// original, i.e. the scale equals one of its inversions.
func achiral(pattern []int) bool {
	n := len(pattern)
	if n == 0 {
		return false
	}
	reversed := make([]int, n)
	for i, step := range pattern {
		reversed[n-1-i] = step
	}
	for shift := 0; shift < n; shift++ {
		match := true
		for i := 0; i < n; i++ {
			if reversed[(i+shift)%n] != pattern[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func reflectionAxes(degrees []theory.PitchClass) []ReflectionAxis {
	set := make(map[theory.PitchClass]struct{}, len(degrees))
	for _, pc := range degrees {
		set[pc] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	reflects := func(offset int) bool {
		for pc := range set {
			mirrored := theory.NormalizePC(offset - int(pc))
			if _, ok := set[mirrored]; !ok {
				return false
			}
		}
		return true
	}
	var axes []ReflectionAxis
	for axis := 0; axis < 12; axis++ {
		if reflects(2 * axis) {
			axes = append(axes, ReflectionAxis{Kind: AxisPitch, Center: float64(axis)})
		}
		if reflects(2*axis + 1) {
			center := float64(axis) + 0.5
			if center >= 12 {
				center -= 12
			}
			axes = append(axes, ReflectionAxis{Kind: AxisBetween, Center: center})
		}
	}
	return axes
}

func intervalSummary(pattern []int, vector [6]int) *IntervalSummary {
	summary := &IntervalSummary{Cardinality: len(pattern), TritonePairs: vector[5]}
	if len(pattern) == 0 {
		return summary
	}
	summary.LargestStep = pattern[0]
	summary.SmallestStep = pattern[0]
	for _, step := range pattern {
		if step > summary.LargestStep {
			summary.LargestStep = step
		}
		if step < summary.SmallestStep {
			summary.SmallestStep = step
		}
		switch step {
		case 1:
			summary.SemitoneCount++
		case 2:
			summary.ToneCount++
		}
	}
	return summary
}

func sortedUnique(degrees []theory.PitchClass) []theory.PitchClass {
	seen := make(map[theory.PitchClass]struct{}, len(degrees))
	out := make([]theory.PitchClass, 0, len(degrees))
	for _, pc := range degrees {
		pc = theory.NormalizePC(int(pc))
		if _, ok := seen[pc]; ok {
			continue
		}
		seen[pc] = struct{}{}
		out = append(out, pc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
