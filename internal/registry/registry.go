// Package registry holds scales and chord qualities defined during a
// session. Session entries live next to the built-in catalogs: lookups
// consult the catalog first, then the registry, and registrations of
// structures the catalog already knows resolve to the catalog entry
// instead of minting a duplicate.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// Context preserves how a session entry was originally expressed.
type Context struct {
	Scope        string
	Tokens       []string
	AbsoluteMIDI []int
}

// ScopeAbstract is the default context scope for entries registered
// without note or octave information.
const ScopeAbstract = "abstract"

// Record is one session-registered entry with its provenance.
type Record struct {
	ID        string
	Entry     *catalog.Entry
	Context   Context
	CreatedAt time.Time
}

// Result reports the outcome of a registration.
type Result struct {
	Record *Record
	// Matches lists catalog entries with the identical structure. When
	// non-empty the registration resolved to Matches[0] instead of
	// creating a new session entry.
	Matches []*catalog.Entry
	// Existing is true when the registration reused a catalog entry or
	// an already-registered session entry.
	Existing bool
}

// Registry is a concurrency-safe store of session scales and chords.
type Registry struct {
	mu     sync.RWMutex
	scales map[string]*Record
	chords map[string]*Record
	order  []string // registration order, kind-prefixed keys
	clock  func() time.Time
	newID  func() string
}

func New() *Registry {
	return &Registry{
		scales: make(map[string]*Record),
		chords: make(map[string]*Record),
		clock:  time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// RegisterScale adds a session scale. An empty name yields a placeholder
// ("ManualScale-N"); a name colliding with the catalog or an existing
// session entry is also replaced by a placeholder. When the pitch-class
// set matches a catalog scale the catalog entry is returned unchanged.
func (r *Registry) RegisterScale(name string, pcs []theory.PitchClass, ctx Context, scales *catalog.Catalog) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mask := theory.MaskFromPitchClasses(pcs...)
	if matches := matchByMask(scales, mask); len(matches) > 0 {
		record := r.adoptLocked(r.scales, "scale", matches[0], ctx)
		return Result{Record: record, Matches: matches, Existing: true}, nil
	}
	return r.registerLocked(r.scales, "scale", "ManualScale", name, pcs, nil, ctx, scales)
}

// RegisterChord adds a session chord quality with the same resolution
// rules as RegisterScale, matching on the normalized interval set.
func (r *Registry) RegisterChord(name string, intervals, tensions []theory.PitchClass, ctx Context, qualities *catalog.Catalog) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mask := theory.MaskFromPitchClasses(intervals...)
	if matches := matchByMask(qualities, mask); len(matches) > 0 {
		record := r.adoptLocked(r.chords, "chord", matches[0], ctx)
		return Result{Record: record, Matches: matches, Existing: true}, nil
	}
	return r.registerLocked(r.chords, "chord", "ManualChord", name, intervals, tensions, ctx, qualities)
}

func (r *Registry) adoptLocked(bucket map[string]*Record, kind string, entry *catalog.Entry, ctx Context) *Record {
	key := catalog.NormalizeName(entry.Name)
	if existing, ok := bucket[key]; ok {
		return existing
	}
	record := &Record{ID: r.newID(), Entry: entry, Context: normalizeContext(ctx), CreatedAt: r.clock()}
	bucket[key] = record
	r.order = append(r.order, kind+"/"+key)
	return record
}

func (r *Registry) registerLocked(
	bucket map[string]*Record,
	kind, stem, name string,
	pcs, tensions []theory.PitchClass,
	ctx Context,
	cat *catalog.Catalog,
) (Result, error) {
	if name == "" || cat.Has(name) || r.hasLocked(bucket, name) {
		name = r.placeholderLocked(bucket, stem, cat)
	}
	entry, err := catalog.NewEntry(name, pcs, nil, tensions)
	if err != nil {
		return Result{}, err
	}
	record := &Record{ID: r.newID(), Entry: entry, Context: normalizeContext(ctx), CreatedAt: r.clock()}
	key := catalog.NormalizeName(name)
	bucket[key] = record
	r.order = append(r.order, kind+"/"+key)
	return Result{Record: record}, nil
}

func (r *Registry) placeholderLocked(bucket map[string]*Record, stem string, cat *catalog.Catalog) string {
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", stem, n)
		if !r.hasLocked(bucket, candidate) && !cat.Has(candidate) {
			return candidate
		}
	}
}

func (r *Registry) hasLocked(bucket map[string]*Record, name string) bool {
	_, ok := bucket[catalog.NormalizeName(name)]
	return ok
}

// LookupScale finds a session scale by name.
func (r *Registry) LookupScale(name string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.scales[catalog.NormalizeName(name)]
	return record, ok
}

// LookupChord finds a session chord quality by name.
func (r *Registry) LookupChord(name string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.chords[catalog.NormalizeName(name)]
	return record, ok
}

// HasScale reports whether the name was registered this session.
func (r *Registry) HasScale(name string) bool {
	_, ok := r.LookupScale(name)
	return ok
}

// HasChord reports whether the name was registered this session.
func (r *Registry) HasChord(name string) bool {
	_, ok := r.LookupChord(name)
	return ok
}

// Scales returns session scales in registration order.
func (r *Registry) Scales() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collectLocked("scale", r.scales)
}

// Chords returns session chord qualities in registration order.
func (r *Registry) Chords() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collectLocked("chord", r.chords)
}

func (r *Registry) collectLocked(kind string, bucket map[string]*Record) []*Record {
	var out []*Record
	prefix := kind + "/"
	for _, key := range r.order {
		if strings.HasPrefix(key, prefix) {
			if record, ok := bucket[strings.TrimPrefix(key, prefix)]; ok {
				out = append(out, record)
			}
		}
	}
	return out
}

// Clear drops every session entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scales = make(map[string]*Record)
	r.chords = make(map[string]*Record)
	r.order = nil
}

// Restore re-adds a persisted record, keeping its original id. Used by the
// session store when reloading; structural matching is not re-run.
func (r *Registry) Restore(kind string, record *Record) error {
	if record == nil || record.Entry == nil {
		return fmt.Errorf("restore: empty record")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var bucket map[string]*Record
	switch kind {
	case "scale":
		bucket = r.scales
	case "chord":
		bucket = r.chords
	default:
		return fmt.Errorf("restore: unknown kind %q", kind)
	}
	key := catalog.NormalizeName(record.Entry.Name)
	if _, ok := bucket[key]; ok {
		return nil
	}
	// copy so the caller's record is never rewritten in place
	stored := *record
	if stored.ID == "" {
		stored.ID = r.newID()
	}
	stored.Context = normalizeContext(stored.Context)
	bucket[key] = &stored
	r.order = append(r.order, kind+"/"+key)
	return nil
}

func matchByMask(cat *catalog.Catalog, mask theory.Mask) []*catalog.Entry {
	if cat == nil || mask == 0 {
		return nil
	}
	var matches []*catalog.Entry
	for _, entry := range cat.Entries() {
		if entry.Mask == mask {
			matches = append(matches, entry)
		}
	}
	return matches
}

func normalizeContext(ctx Context) Context {
	if ctx.Scope == "" {
		ctx.Scope = ScopeAbstract
	}
	return ctx
}
