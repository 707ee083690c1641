package harmony

import (
	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// Issue records one role whose pitch classes are not fully contained in
// the reference scale.
type Issue struct {
	Degree     theory.PitchClass
	ModalLabel string
	Quality    string
	Expected   theory.Mask
	Actual     theory.Mask
	// Missing are the role's pitch classes absent from the reference mask.
	Missing []theory.PitchClass
}

// Report is the outcome of validating a functional mapping against a
// reference scale. It is advisory diagnostic data, never an error, and the
// validator never mutates the mapping it checks.
type Report struct {
	Mapping   string
	Reference *catalog.Entry
	Issues    []Issue
}

// Clean reports whether every role fit inside the reference scale.
func (r Report) Clean() bool { return len(r.Issues) == 0 }

// Validate recomputes each role's mask and compares it against the
// reference scale (commonly Ionian for major contexts, Aeolian for minor),
// reporting every degree whose required pitch classes leave the reference
// mask.
func Validate(mapping string, roles []Role, reference *catalog.Entry) Report {
	report := Report{Mapping: mapping, Reference: reference}
	for _, role := range roles {
		mask := theory.MaskFromPitchClasses(stackOnDegree(role.Degree, role.Intervals)...)
		if mask.IsSubsetOf(reference.Mask) {
			continue
		}
		var missing []theory.PitchClass
		for _, pc := range mask.PitchClasses() {
			if !reference.Mask.Contains(pc) {
				missing = append(missing, pc)
			}
		}
		report.Issues = append(report.Issues, Issue{
			Degree:     role.Degree,
			ModalLabel: role.ModalLabel,
			Quality:    role.Quality,
			Expected:   reference.Mask,
			Actual:     mask,
			Missing:    missing,
		})
	}
	return report
}
