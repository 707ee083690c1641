// Package engine ties the catalogs, session registry, and analysis
// routines together behind one facade. Every operation is a pure
// computation over in-memory structures; persistence and rendering live
// with the callers.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/tonality-labs/tonality/internal/analysis"
	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/internal/harmony"
	"github.com/tonality-labs/tonality/internal/registry"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Session is the session registry to use (optional, created if nil)
	Session *registry.Registry
}

// Engine owns the built-in catalogs and the session registry.
type Engine struct {
	scales    *catalog.Catalog
	qualities *catalog.Catalog
	session   *registry.Registry
	logger    *slog.Logger
}

// New loads the embedded catalogs and prepares the engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	scales, err := catalog.LoadScales()
	if err != nil {
		return nil, fmt.Errorf("failed to load scale catalog: %w", err)
	}
	qualities, err := catalog.LoadChordQualities()
	if err != nil {
		return nil, fmt.Errorf("failed to load chord quality catalog: %w", err)
	}

	session := cfg.Session
	if session == nil {
		session = registry.New()
	}

	logger.Debug("engine initialized", "scales", scales.Len(), "chord_qualities", qualities.Len())

	return &Engine{
		scales:    scales,
		qualities: qualities,
		session:   session,
		logger:    logger,
	}, nil
}

// Scales exposes the built-in scale catalog.
func (e *Engine) Scales() *catalog.Catalog { return e.scales }

// ChordQualities exposes the built-in chord quality catalog.
func (e *Engine) ChordQualities() *catalog.Catalog { return e.qualities }

// Session exposes the session registry.
func (e *Engine) Session() *registry.Registry { return e.session }

// LookupScale resolves a scale by name: catalog first, then session.
func (e *Engine) LookupScale(name string) (*catalog.Entry, error) {
	if entry, err := e.scales.Lookup(name); err == nil {
		return entry, nil
	}
	if record, ok := e.session.LookupScale(name); ok {
		return record.Entry, nil
	}
	return nil, &catalog.NotFoundError{Kind: catalog.KindScale, Name: name}
}

// LookupChordQuality resolves a chord quality by name: catalog first,
// then session.
func (e *Engine) LookupChordQuality(name string) (*catalog.Entry, error) {
	if entry, err := e.qualities.Lookup(name); err == nil {
		return entry, nil
	}
	if record, ok := e.session.LookupChord(name); ok {
		return record.Entry, nil
	}
	return nil, &catalog.NotFoundError{Kind: catalog.KindChordQuality, Name: name}
}

// ParsePitchClasses normalizes a list of pitch tokens into pitch classes,
// preserving input order.
func (e *Engine) ParsePitchClasses(tokens []string) ([]theory.PitchClass, error) {
	pcs := make([]theory.PitchClass, 0, len(tokens))
	for _, token := range tokens {
		parsed, err := theory.ParsePitchToken(token)
		if err != nil {
			return nil, err
		}
		pcs = append(pcs, parsed.PC)
	}
	return pcs, nil
}

// MatchScales ranks catalog scales against a pitch-class set across all
// twelve transpositions.
func (e *Engine) MatchScales(pcs []theory.PitchClass) []catalog.Match {
	return e.scales.MatchMask(theory.MaskFromPitchClasses(pcs...))
}

// MatchChordQualities ranks catalog chord qualities against a pitch-class
// set across all twelve transpositions.
func (e *Engine) MatchChordQualities(pcs []theory.PitchClass) []catalog.Match {
	return e.qualities.MatchMask(theory.MaskFromPitchClasses(pcs...))
}

// Spell renders pitch classes as note names under one spelling decision.
func (e *Engine) Spell(pcs []theory.PitchClass, tonic *theory.PitchClass, mode theory.SpellingMode, bias *int) []string {
	if mode == "" {
		mode = theory.SpellingAuto
	}
	out := make([]string, 0, len(pcs))
	for _, pc := range pcs {
		out = append(out, theory.Spell(pc, tonic, mode, bias).String())
	}
	return out
}

// GenerateFunctions produces the functional-harmony roles of a scale.
func (e *Engine) GenerateFunctions(scaleName string, mode harmony.Mode, opts harmony.Options) ([]harmony.Role, error) {
	scale, err := e.LookupScale(scaleName)
	if err != nil {
		return nil, err
	}
	roles := harmony.Generate(scale, mode, e.qualities, opts)
	e.logger.Debug("generated functions", "scale", scale.Name, "mode", string(mode), "roles", len(roles))
	return roles, nil
}

// ValidateMapping generates a mode's roles for a scale and checks them
// against a reference scale, reporting non-subset degrees.
func (e *Engine) ValidateMapping(scaleName, referenceName string, mode harmony.Mode, opts harmony.Options) (harmony.Report, error) {
	roles, err := e.GenerateFunctions(scaleName, mode, opts)
	if err != nil {
		return harmony.Report{}, err
	}
	reference, err := e.LookupScale(referenceName)
	if err != nil {
		return harmony.Report{}, err
	}
	mapping := fmt.Sprintf("%s/%s", scaleName, mode)
	return harmony.Validate(mapping, roles, reference), nil
}

// RegisterScale records a session scale, resolving known pitch-class sets
// to their catalog entries.
func (e *Engine) RegisterScale(name string, pcs []theory.PitchClass, ctx registry.Context) (registry.Result, error) {
	result, err := e.session.RegisterScale(name, pcs, ctx, e.scales)
	if err != nil {
		return registry.Result{}, err
	}
	e.logger.Debug("registered scale", "name", result.Record.Entry.Name, "existing", result.Existing)
	return result, nil
}

// RegisterChordQuality records a session chord quality.
func (e *Engine) RegisterChordQuality(name string, intervals, tensions []theory.PitchClass, ctx registry.Context) (registry.Result, error) {
	result, err := e.session.RegisterChord(name, intervals, tensions, ctx, e.qualities)
	if err != nil {
		return registry.Result{}, err
	}
	e.logger.Debug("registered chord quality", "name", result.Record.Entry.Name, "existing", result.Existing)
	return result, nil
}

// AnalyzeScale builds the structural report for a scale.
func (e *Engine) AnalyzeScale(name string, opts analysis.ScaleOptions) (analysis.ScaleReport, error) {
	scale, err := e.LookupScale(name)
	if err != nil {
		return analysis.ScaleReport{}, err
	}
	return analysis.AnalyzeScale(scale, opts), nil
}

// CompatibilityOverview reports chord-scale compatibility for every
// catalog scale.
func (e *Engine) CompatibilityOverview() []analysis.ScaleCompatibility {
	return analysis.Overview(e.scales, e.allQualities())
}

// ScaleCompatibility reports which qualities fit one scale.
func (e *Engine) ScaleCompatibility(scaleName string) (analysis.ScaleCompatibility, error) {
	scale, err := e.LookupScale(scaleName)
	if err != nil {
		return analysis.ScaleCompatibility{}, err
	}
	return analysis.ScaleOverview(scale, e.allQualities()), nil
}

// CompatibilityRoots lists the roots at which a quality fits a scale.
func (e *Engine) CompatibilityRoots(scaleName, qualityName string) ([]theory.PitchClass, error) {
	scale, err := e.LookupScale(scaleName)
	if err != nil {
		return nil, err
	}
	quality, err := e.LookupChordQuality(qualityName)
	if err != nil {
		return nil, err
	}
	return catalog.CompatibilityRoots(scale, quality), nil
}

// CompareChordQualities relates two qualities across the scale catalog.
func (e *Engine) CompareChordQualities(nameA, nameB string) (analysis.Comparison, error) {
	a, err := e.LookupChordQuality(nameA)
	if err != nil {
		return analysis.Comparison{}, err
	}
	b, err := e.LookupChordQuality(nameB)
	if err != nil {
		return analysis.Comparison{}, err
	}
	return analysis.CompareQualities(a, b, e.scales), nil
}

// ParseChordSpec parses a chord expression against the combined catalog
// and session qualities.
func (e *Engine) ParseChordSpec(text string) (analysis.ParseResult, error) {
	return analysis.ParseChordSpec(text, e.allQualities())
}

// BorrowSuggestions ranks scales by how few pitch classes they need to
// borrow to cover a chord.
func (e *Engine) BorrowSuggestions(pcs []theory.PitchClass) []catalog.BorrowSuggestion {
	return e.scales.BorrowSuggestions(theory.MaskFromPitchClasses(pcs...))
}

// allQualities merges the built-in qualities with session chords. Session
// entries never shadow catalog names.
func (e *Engine) allQualities() *catalog.Catalog {
	records := e.session.Chords()
	if len(records) == 0 {
		return e.qualities
	}
	merged := catalog.New(catalog.KindChordQuality)
	for _, entry := range e.qualities.Entries() {
		if err := merged.Add(entry); err != nil {
			continue
		}
	}
	for _, record := range records {
		if err := merged.Add(record.Entry); err != nil {
			continue
		}
	}
	return merged
}
