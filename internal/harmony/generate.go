package harmony

import (
	"sort"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// Options controls generation.
type Options struct {
	// IncludeBorrowed keeps roles whose pitch classes fall outside the
	// scale mask (tagged "borrowed"). When false only natively diatonic
	// roles are emitted.
	IncludeBorrowed bool
	// Features enables optional variants. Nil means the mode's defaults.
	Features FeatureSet
}

// Generate resolves the mode's template table against a scale, producing
// one Role per surviving variant. Output order is degree ascending, then
// template declaration order; generation is deterministic and idempotent.
//
// A variant survives when its required features are all enabled and its
// quality exists in the catalog. Each chord's pitch classes are the degree
// plus the quality's interval stack, wrapped modulo 12. Diatonic status is
// recomputed against the scale mask regardless of how the template declared
// the slot; non-diatonic roles are dropped or tagged per IncludeBorrowed.
func Generate(scale *catalog.Entry, mode Mode, qualities *catalog.Catalog, opts Options) []Role {
	features := opts.Features
	if features == nil {
		features = DefaultFeatures(mode)
	}
	enabled := make(FeatureSet, len(features)+1)
	for name := range features {
		enabled[name] = struct{}{}
	}
	enabled[FeatureDiatonic] = struct{}{}

	var roles []Role
	for _, template := range TemplatesFor(mode) {
		degree := theory.NormalizePC(template.Degree)
		for _, v := range template.Variants {
			if !requiresMet(v.Requires, enabled) {
				continue
			}
			quality, err := qualities.Lookup(v.Quality)
			if err != nil {
				continue
			}

			pcs := stackOnDegree(degree, quality.PitchClasses)
			mask := theory.MaskFromPitchClasses(pcs...)
			diatonic := mask.IsSubsetOf(scale.Mask)
			if !diatonic && !opts.IncludeBorrowed {
				continue
			}

			tags := cloneTagSet(v.Tags)
			if !diatonic {
				delete(tags, FeatureDiatonic)
				tags[TagBorrowed] = struct{}{}
			}
			if _, ok := tags[TagModalMix]; ok {
				delete(tags, FeatureDiatonic)
			}

			role, subtype := v.Role, ""
			if role == TagTonicProlongation {
				role, subtype = "tonic", TagTonicProlongation
			}

			roles = append(roles, Role{
				Degree:      degree,
				Quality:     quality.Name,
				Intervals:   quality.PitchClasses,
				Mask:        mask,
				Role:        role,
				RoleSubtype: subtype,
				ModalLabel:  v.ModalLabel,
				Tags:        sortedTags(tags),
			})
		}
	}
	return roles
}

// RolesForDegree filters generated roles down to one degree.
func RolesForDegree(roles []Role, degree theory.PitchClass) []Role {
	var out []Role
	for _, role := range roles {
		if role.Degree == theory.NormalizePC(int(degree)) {
			out = append(out, role)
		}
	}
	return out
}

func requiresMet(requires []string, enabled FeatureSet) bool {
	for _, name := range requires {
		if !enabled.Has(name) {
			return false
		}
	}
	return true
}

func stackOnDegree(degree theory.PitchClass, intervals []theory.PitchClass) []theory.PitchClass {
	seen := make(map[theory.PitchClass]struct{}, len(intervals))
	pcs := make([]theory.PitchClass, 0, len(intervals))
	for _, iv := range intervals {
		pc := degree.Add(int(iv))
		if _, ok := seen[pc]; ok {
			continue
		}
		seen[pc] = struct{}{}
		pcs = append(pcs, pc)
	}
	sort.Slice(pcs, func(i, j int) bool { return pcs[i] < pcs[j] })
	return pcs
}

func cloneTagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func sortedTags(set map[string]struct{}) []string {
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
