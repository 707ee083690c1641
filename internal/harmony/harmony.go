// Package harmony derives functional chord roles for scale degrees from
// rule templates: per-degree chord variants gated by feature flags, with
// diatonic/borrowed classification against the active scale.
package harmony

import (
	"sort"

	"github.com/tonality-labs/tonality/pkg/theory"
)

// Mode is the template family used for generation.
type Mode string

const (
	// ModeMajor selects the major-key template table.
	ModeMajor Mode = "major"
	// ModeMinor selects the minor-key template table.
	ModeMinor Mode = "minor"
)

// Feature flags controlling optional chord variants.
const (
	FeatureDiatonic         = "diatonic"
	FeatureSixthChords      = "sixth_chords"
	FeatureAddedTones       = "added_tones"
	FeatureSuspended        = "suspended"
	FeaturePowerDyads       = "power_dyads"
	FeatureExtended         = "extended"
	FeatureLydianExtensions = "lydian_extensions"
	FeatureAlteredDominant  = "altered_dominant"
	FeatureLeadingTone      = "leading_tone"
	FeatureRaisedSixth      = "raised_sixth"
	FeatureParallelMajor    = "parallel_major"
	FeatureParallelMinor    = "parallel_minor"
)

// Descriptive tags attached to generated roles.
const (
	TagBorrowable         = "borrowable"
	TagBorrowed           = "borrowed"
	TagModalMix           = "modal_mix"
	TagHarmonicMinor      = "harmonic_minor"
	TagMelodicMinor       = "melodic_minor"
	TagSubtonic           = "subtonic"
	TagOmit11             = "omit_11"
	TagAvoid3Or11         = "avoid_3_or_11"
	TagTonicProlongation  = "tonic_prolongation"
	TagModal              = "modal"
	TagScaleFormDependent = "scale_form_dependent"
)

// FeatureSet is the set of enabled feature flags.
type FeatureSet map[string]struct{}

// NewFeatureSet builds a feature set from flag names.
func NewFeatureSet(names ...string) FeatureSet {
	set := make(FeatureSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether the flag is enabled.
func (s FeatureSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the enabled flags sorted.
func (s FeatureSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFeatures is the feature set conventionally enabled for a mode.
func DefaultFeatures(mode Mode) FeatureSet {
	if mode == ModeMinor {
		return NewFeatureSet(
			FeatureDiatonic, FeatureAddedTones, FeatureSuspended,
			FeatureExtended, FeatureLeadingTone, FeatureParallelMajor,
		)
	}
	return NewFeatureSet(
		FeatureDiatonic, FeatureSixthChords, FeatureAddedTones,
		FeatureSuspended, FeatureExtended,
	)
}

// Variant is one concrete chord option for a functional slot.
type Variant struct {
	Quality    string
	ModalLabel string
	Role       string
	Tags       []string
	Requires   []string
}

// Template is a functional slot: a degree (semitone offset from the tonic)
// and the chord variants available there.
type Template struct {
	Degree   int
	Variants []Variant
}

// Role is a resolved functional mapping for a single degree and variant.
// Roles are never mutated after generation; regenerating with identical
// inputs yields an identical ordered sequence.
type Role struct {
	Degree      theory.PitchClass
	Quality     string
	Intervals   []theory.PitchClass
	Mask        theory.Mask
	Role        string
	RoleSubtype string
	ModalLabel  string
	Tags        []string
}

// Borrowed reports whether the role's pitch classes fall outside the scale
// it was generated for.
func (r Role) Borrowed() bool {
	for _, tag := range r.Tags {
		if tag == TagBorrowed {
			return true
		}
	}
	return false
}

// variant builds a Variant the way the template tables declare them:
// diatonic slots get the diatonic tag, borrowable ones the borrowable tag,
// and extra tags merge in sorted and deduplicated.
func variant(quality, modalLabel, role string, diatonic bool, requires []string, extraTags ...string) Variant {
	tagSet := map[string]struct{}{}
	for _, tag := range extraTags {
		tagSet[tag] = struct{}{}
	}
	if diatonic {
		tagSet[FeatureDiatonic] = struct{}{}
	} else {
		tagSet[TagBorrowable] = struct{}{}
	}
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	reqs := append([]string(nil), requires...)
	sort.Strings(reqs)

	return Variant{
		Quality:    quality,
		ModalLabel: modalLabel,
		Role:       role,
		Tags:       tags,
		Requires:   reqs,
	}
}

func req(names ...string) []string { return names }
