// Package catalog holds the named scale and chord-quality tables and the
// mask-matching logic layered over them. Catalogs are built once from the
// embedded reference data and are read-only afterwards; session-defined
// entries live in the registry package.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tonality-labs/tonality/pkg/theory"
)

// Kind distinguishes the two catalog families.
type Kind string

const (
	// KindScale is the scale/mode catalog.
	KindScale Kind = "scale"
	// KindChordQuality is the chord-quality catalog.
	KindChordQuality Kind = "chord quality"
)

// Entry is a named pitch-class set. For scales PitchClasses are the degrees
// relative to the tonic; for chord qualities they are the interval stack
// relative to the chord root. Tensions (chord qualities only) are optional
// color tones not included in the mask.
type Entry struct {
	Name         string
	Aliases      []string
	PitchClasses []theory.PitchClass
	Tensions     []theory.PitchClass
	Mask         theory.Mask
}

// NewEntry normalizes and validates a catalog entry. Catalog convention
// requires the root (pitch class 0) to be present.
func NewEntry(name string, pcs []theory.PitchClass, aliases []string, tensions []theory.PitchClass) (*Entry, error) {
	normalized := normalizePCs(pcs)
	mask := theory.MaskFromPitchClasses(normalized...)
	if mask == 0 {
		return nil, &theory.InvalidMaskError{Mask: mask, Reason: "empty interval set"}
	}
	if !mask.Contains(0) {
		return nil, &theory.InvalidMaskError{Mask: mask, Reason: "root bit absent"}
	}

	clean := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if trimmed := strings.TrimSpace(alias); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	sort.Strings(clean)

	return &Entry{
		Name:         strings.TrimSpace(name),
		Aliases:      clean,
		PitchClasses: normalized,
		Tensions:     normalizePCs(tensions),
		Mask:         mask,
	}, nil
}

func normalizePCs(pcs []theory.PitchClass) []theory.PitchClass {
	seen := make(map[theory.PitchClass]struct{}, len(pcs))
	out := make([]theory.PitchClass, 0, len(pcs))
	for _, pc := range pcs {
		norm := theory.NormalizePC(int(pc))
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NotFoundError indicates a name that matches neither a canonical entry nor
// an alias.
type NotFoundError struct {
	Kind Kind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Kind, e.Name)
}

var foldCaser = cases.Fold()

// NormalizeName canonicalizes a lookup key: Unicode case folding plus
// whitespace collapsing, so "natural  minor" and "Natural Minor" agree.
func NormalizeName(name string) string {
	return foldCaser.String(strings.Join(strings.Fields(name), " "))
}

// Catalog is an ordered collection of entries with alias-aware lookup.
// Insertion order is preserved and used for match tie-breaking.
type Catalog struct {
	kind    Kind
	entries []*Entry
	index   map[string]*Entry
}

// New creates an empty catalog of the given kind.
func New(kind Kind) *Catalog {
	return &Catalog{kind: kind, index: make(map[string]*Entry)}
}

// Kind returns the catalog family.
func (c *Catalog) Kind() Kind { return c.kind }

// Add appends an entry, indexing its canonical name and every alias.
func (c *Catalog) Add(entry *Entry) error {
	keys := append([]string{entry.Name}, entry.Aliases...)
	for _, key := range keys {
		norm := NormalizeName(key)
		if existing, ok := c.index[norm]; ok && existing != entry {
			return fmt.Errorf("%s name %q already registered to %q", c.kind, key, existing.Name)
		}
	}
	c.entries = append(c.entries, entry)
	for _, key := range keys {
		c.index[NormalizeName(key)] = entry
	}
	return nil
}

// Lookup resolves a canonical name or alias, case- and
// whitespace-insensitively. Alias and canonical lookups return the
// identical entry.
func (c *Catalog) Lookup(name string) (*Entry, error) {
	if entry, ok := c.index[NormalizeName(name)]; ok {
		return entry, nil
	}
	return nil, &NotFoundError{Kind: c.kind, Name: name}
}

// Has reports whether the name or alias is present.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[NormalizeName(name)]
	return ok
}

// Entries returns the entries in insertion order. The slice is shared;
// callers must not mutate it.
func (c *Catalog) Entries() []*Entry { return c.entries }

// Len is the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Names returns the canonical names in insertion order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}
