package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// Scope classifies how concrete a chord expression is: abstract interval
// structure, pitch classes anchored to note names, or absolute pitches.
type Scope string

const (
	ScopeAbstract Scope = "abstract"
	ScopeNote     Scope = "note"
	ScopeAbsolute Scope = "absolute"
)

// QualityVariant relates a parsed chord to a nearby catalog quality.
// Missing holds intervals the catalog quality has that the chord lacks,
// Extra the reverse; Distance is the size of the symmetric difference.
type QualityVariant struct {
	Name     string
	Missing  []theory.PitchClass
	Extra    []theory.PitchClass
	Distance int
}

// ChordSpec is the normalized form of a user-supplied chord expression.
type ChordSpec struct {
	Label     string
	Scope     Scope
	Intervals []theory.PitchClass
	Tokens    []string
	Absolute  []theory.Pitch
	Tensions  []theory.PitchClass
	// Voicing preserves the raw semitone offsets in input order, before
	// octave folding. Offsets above 11 indicate spread voicings.
	Voicing []int
	// QualityName is the primary catalog quality the chord resolves to.
	QualityName string
	Matches     []string
	Subsets     []QualityVariant
	Supersets   []QualityVariant
	Cousins     []QualityVariant
}

// ParseResult pairs the parsed spec with any root the expression anchored.
type ParseResult struct {
	Spec      ChordSpec
	RootPC    *theory.PitchClass
	RootPitch *theory.Pitch
}

var (
	classicalIntervalRe = regexp.MustCompile(`^([PMAmd])(\d{1,2})$`)
	scaleDegreeRe       = regexp.MustCompile(`^(bb|b|##|#)?(\d+)$`)
)

var bracketPairs = map[byte]byte{'[': ']', '(': ')', '{': '}'}

// ParseChordSpec parses the chord expression grammar shared by the CLI and
// the REPL:
//
//	[0,3,7] [P1,m3,P5]      interval lists (values above 11 keep voicing)
//	(1,b3,5)                scale-degree lists relative to the root
//	[C,E,G] [C3,E3,G3]      note tokens, with or without octaves
//	{60,63,67}              explicit MIDI pitches
//	min  C:min  C3:min      catalog quality, optionally rooted
//	C3[0,3,7]  60{0,4,7}    rooted bracket forms
//	...=label               inline aliasing
//
// The result is annotated against the quality catalog: exact matches plus
// the nearest subset, superset, and cousin qualities.
func ParseChordSpec(text string, qualities *catalog.Catalog) (ParseResult, error) {
	core, label := splitAlias(strings.TrimSpace(text))
	if core == "" {
		return ParseResult{}, &InvalidChordSpecError{Input: text, Reason: "empty chord expression"}
	}

	if idx := strings.IndexAny(core, "[({"); idx >= 0 {
		opening := core[idx]
		closing := bracketPairs[opening]
		end := strings.LastIndexByte(core, closing)
		if end < idx {
			return ParseResult{}, &InvalidChordSpecError{Input: text, Reason: "missing closing bracket"}
		}
		prefix := strings.TrimSpace(core[:idx])
		payload := strings.TrimSpace(core[idx+1 : end])

		rootPC, rootPitch, err := parseRootToken(prefix)
		if err != nil {
			return ParseResult{}, &InvalidChordSpecError{Input: text, Reason: err.Error()}
		}
		seq, err := parseSequence(payload, opening, rootPC, rootPitch)
		if err != nil {
			return ParseResult{}, &InvalidChordSpecError{Input: text, Reason: err.Error()}
		}

		spec := ChordSpec{
			Label:     label,
			Scope:     seq.scope,
			Intervals: seq.intervals,
			Tokens:    seq.tokens,
			Absolute:  seq.absolute,
			Voicing:   seq.voicing,
		}
		annotate(&spec, qualities)
		result := ParseResult{Spec: spec, RootPC: seq.rootPC, RootPitch: seq.rootPitch}
		if result.RootPC == nil {
			result.RootPC = rootPC
		}
		if result.RootPitch == nil {
			result.RootPitch = rootPitch
		}
		return result, nil
	}

	if strings.Contains(core, ":") {
		parts := strings.SplitN(core, ":", 2)
		quality, err := qualities.Lookup(strings.TrimSpace(parts[1]))
		if err != nil {
			return ParseResult{}, err
		}
		rootPC, rootPitch, err := parseRootToken(strings.TrimSpace(parts[0]))
		if err != nil {
			return ParseResult{}, &InvalidChordSpecError{Input: text, Reason: err.Error()}
		}
		spec := specFromQuality(quality, label)
		applyRoot(&spec, rootPC, rootPitch)
		annotate(&spec, qualities)
		return ParseResult{Spec: spec, RootPC: rootPC, RootPitch: rootPitch}, nil
	}

	quality, err := qualities.Lookup(core)
	if err != nil {
		return ParseResult{}, err
	}
	spec := specFromQuality(quality, label)
	annotate(&spec, qualities)
	return ParseResult{Spec: spec}, nil
}

type parsedSequence struct {
	intervals []theory.PitchClass
	tokens    []string
	absolute  []theory.Pitch
	scope     Scope
	rootPC    *theory.PitchClass
	rootPitch *theory.Pitch
	voicing   []int
}

func splitAlias(expr string) (string, string) {
	core, alias, found := strings.Cut(expr, "=")
	if !found {
		return expr, ""
	}
	return strings.TrimSpace(core), strings.TrimSpace(alias)
}

func parseRootToken(token string) (*theory.PitchClass, *theory.Pitch, error) {
	if token == "" {
		return nil, nil, nil
	}
	parsed, err := theory.ParsePitchToken(token)
	if err != nil {
		return nil, nil, err
	}
	pc := parsed.PC
	return &pc, parsed.Pitch, nil
}

func parseSequence(payload string, opening byte, rootPC *theory.PitchClass, rootPitch *theory.Pitch) (parsedSequence, error) {
	parts := splitList(payload)
	if len(parts) == 0 {
		return parsedSequence{}, &InvalidChordSpecError{Input: payload, Reason: "at least one element required inside brackets"}
	}

	switch opening {
	case '{':
		pitches := make([]theory.Pitch, 0, len(parts))
		for _, part := range parts {
			midi, err := strconv.Atoi(part)
			if err != nil {
				return parsedSequence{}, &InvalidChordSpecError{Input: part, Reason: "expected a MIDI number"}
			}
			pitches = append(pitches, theory.PitchFromMIDI(midi))
		}
		return absoluteSequence(pitches, parts, rootPitch), nil

	case '(':
		return degreeSequence(parts, rootPC, rootPitch)
	}

	// "[" accepts integers, classical interval labels, or note tokens.
	if allIntegers(parts) {
		offsets := make([]int, 0, len(parts))
		for _, part := range parts {
			value, _ := strconv.Atoi(part)
			offsets = append(offsets, value)
		}
		seq := abstractSequence(offsets, parts, rootPC, rootPitch)
		return applyRootToSequence(seq, rootPC, rootPitch), nil
	}
	if allMatch(parts, classicalIntervalRe) {
		offsets := make([]int, 0, len(parts))
		for _, part := range parts {
			value, err := classicalInterval(part)
			if err != nil {
				return parsedSequence{}, err
			}
			offsets = append(offsets, value)
		}
		seq := abstractSequence(offsets, parts, rootPC, rootPitch)
		return applyRootToSequence(seq, rootPC, rootPitch), nil
	}
	if allMatch(parts, scaleDegreeRe) {
		return degreeSequence(parts, rootPC, rootPitch)
	}
	return noteSequence(parts, rootPC, rootPitch)
}

func degreeSequence(parts []string, rootPC *theory.PitchClass, rootPitch *theory.Pitch) (parsedSequence, error) {
	offsets := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := scaleDegreeSemitones(part)
		if err != nil {
			return parsedSequence{}, err
		}
		offsets = append(offsets, value)
	}
	seq := abstractSequence(offsets, parts, rootPC, rootPitch)
	return applyRootToSequence(seq, rootPC, rootPitch), nil
}

func noteSequence(parts []string, rootPC *theory.PitchClass, rootPitch *theory.Pitch) (parsedSequence, error) {
	parsed := make([]theory.ParsedPitch, 0, len(parts))
	absoluteCount := 0
	for _, part := range parts {
		p, err := theory.ParsePitchToken(part)
		if err != nil {
			return parsedSequence{}, err
		}
		if p.Pitch != nil {
			absoluteCount++
		}
		parsed = append(parsed, p)
	}

	if absoluteCount > 0 {
		if absoluteCount != len(parsed) {
			return parsedSequence{}, &InvalidChordSpecError{Input: strings.Join(parts, ","), Reason: "cannot mix absolute and octave-less tokens"}
		}
		pitches := make([]theory.Pitch, 0, len(parsed))
		tokens := make([]string, 0, len(parsed))
		for _, p := range parsed {
			pitches = append(pitches, *p.Pitch)
			tokens = append(tokens, p.Token)
		}
		return absoluteSequence(pitches, tokens, rootPitch), nil
	}

	base := parsed[0].PC
	if rootPC != nil {
		base = *rootPC
	}
	intervals := make([]theory.PitchClass, 0, len(parsed))
	tokens := make([]string, 0, len(parsed))
	for _, p := range parsed {
		intervals = append(intervals, p.PC.Subtract(int(base)))
		tokens = append(tokens, p.Token)
	}
	return parsedSequence{
		intervals: foldedIntervals(nil, intervals),
		tokens:    tokens,
		scope:     ScopeNote,
		rootPC:    &base,
		rootPitch: rootPitch,
	}, nil
}

func absoluteSequence(pitches []theory.Pitch, tokens []string, rootPitch *theory.Pitch) parsedSequence {
	base := pitches[0]
	if rootPitch != nil {
		base = *rootPitch
	}
	voicing := make([]int, 0, len(pitches))
	for _, pitch := range pitches {
		voicing = append(voicing, pitch.MIDI-base.MIDI)
	}
	basePC := base.PC
	return parsedSequence{
		intervals: foldedIntervals(voicing, nil),
		tokens:    append([]string(nil), tokens...),
		absolute:  append([]theory.Pitch(nil), pitches...),
		scope:     ScopeAbsolute,
		rootPC:    &basePC,
		rootPitch: &base,
		voicing:   voicing,
	}
}

func abstractSequence(offsets []int, tokens []string, rootPC *theory.PitchClass, rootPitch *theory.Pitch) parsedSequence {
	return parsedSequence{
		intervals: foldedIntervals(offsets, nil),
		tokens:    append([]string(nil), tokens...),
		scope:     ScopeAbstract,
		rootPC:    rootPC,
		rootPitch: rootPitch,
		voicing:   append([]int(nil), offsets...),
	}
}

// applyRootToSequence concretizes an abstract sequence when the expression
// carried a root prefix: an absolute root realizes the voicing as MIDI
// pitches, a bare root renders the tones as note names.
func applyRootToSequence(seq parsedSequence, rootPC *theory.PitchClass, rootPitch *theory.Pitch) parsedSequence {
	if seq.scope != ScopeAbstract {
		return seq
	}
	if rootPitch != nil {
		offsets := seq.voicing
		if len(offsets) == 0 {
			offsets = intervalOffsets(seq.intervals)
		}
		pitches := make([]theory.Pitch, 0, len(offsets))
		tokens := make([]string, 0, len(offsets))
		for _, offset := range offsets {
			pitch := theory.PitchFromMIDI(rootPitch.MIDI + offset)
			pitches = append(pitches, pitch)
			tokens = append(tokens, theory.SpellPitch(pitch, nil, theory.SpellingAuto, nil).String())
		}
		basePC := rootPitch.PC
		return parsedSequence{
			intervals: foldedIntervals(offsets, nil),
			tokens:    tokens,
			absolute:  pitches,
			scope:     ScopeAbsolute,
			rootPC:    &basePC,
			rootPitch: rootPitch,
			voicing:   offsets,
		}
	}
	if rootPC != nil {
		offsets := seq.voicing
		if len(offsets) == 0 {
			offsets = intervalOffsets(seq.intervals)
		}
		tokens := make([]string, 0, len(offsets))
		for _, offset := range offsets {
			tokens = append(tokens, theory.Spell(rootPC.Add(offset), nil, theory.SpellingAuto, nil).String())
		}
		return parsedSequence{
			intervals: foldedIntervals(offsets, nil),
			tokens:    tokens,
			scope:     ScopeNote,
			rootPC:    rootPC,
			voicing:   seq.voicing,
		}
	}
	return seq
}

func specFromQuality(quality *catalog.Entry, label string) ChordSpec {
	intervals := append([]theory.PitchClass(nil), quality.PitchClasses...)
	spec := ChordSpec{
		Label:       label,
		Scope:       ScopeAbstract,
		Intervals:   intervals,
		Tensions:    append([]theory.PitchClass(nil), quality.Tensions...),
		Voicing:     intervalOffsets(intervals),
		QualityName: quality.Name,
		Matches:     []string{quality.Name},
	}
	return spec
}

func applyRoot(spec *ChordSpec, rootPC *theory.PitchClass, rootPitch *theory.Pitch) {
	if spec.Scope != ScopeAbstract {
		return
	}
	if rootPitch != nil {
		offsets := spec.Voicing
		if len(offsets) == 0 {
			offsets = intervalOffsets(spec.Intervals)
		}
		spec.Absolute = make([]theory.Pitch, 0, len(offsets))
		spec.Tokens = make([]string, 0, len(offsets))
		for _, offset := range offsets {
			pitch := theory.PitchFromMIDI(rootPitch.MIDI + offset)
			spec.Absolute = append(spec.Absolute, pitch)
			spec.Tokens = append(spec.Tokens, theory.SpellPitch(pitch, nil, theory.SpellingAuto, nil).String())
		}
		spec.Scope = ScopeAbsolute
		spec.Voicing = offsets
		return
	}
	if rootPC != nil {
		offsets := spec.Voicing
		if len(offsets) == 0 {
			offsets = intervalOffsets(spec.Intervals)
		}
		spec.Tokens = make([]string, 0, len(offsets))
		for _, offset := range offsets {
			spec.Tokens = append(spec.Tokens, theory.Spell(rootPC.Add(offset), nil, theory.SpellingAuto, nil).String())
		}
		spec.Scope = ScopeNote
	}
}

// annotate classifies the chord against every catalog quality: exact
// matches, subsets (catalog quality misses tones), supersets (catalog
// quality adds tones), and cousins (both directions differ). Each bucket
// keeps at most six nearest entries.
func annotate(spec *ChordSpec, qualities *catalog.Catalog) {
	if qualities == nil || qualities.Len() == 0 {
		return
	}
	const limit = 6

	chordSet := make(map[theory.PitchClass]struct{}, len(spec.Intervals))
	for _, iv := range spec.Intervals {
		chordSet[iv] = struct{}{}
	}

	var exact []string
	var subsets, supersets, cousins []QualityVariant
	for _, quality := range qualities.Entries() {
		qualitySet := make(map[theory.PitchClass]struct{}, len(quality.PitchClasses))
		for _, iv := range quality.PitchClasses {
			qualitySet[iv] = struct{}{}
		}
		missing := setDifference(qualitySet, chordSet)
		extra := setDifference(chordSet, qualitySet)
		if len(missing) == 0 && len(extra) == 0 {
			exact = append(exact, quality.Name)
			continue
		}
		variant := QualityVariant{
			Name:     quality.Name,
			Missing:  missing,
			Extra:    extra,
			Distance: len(missing) + len(extra),
		}
		switch {
		case len(extra) == 0:
			subsets = append(subsets, variant)
		case len(missing) == 0:
			supersets = append(supersets, variant)
		default:
			cousins = append(cousins, variant)
		}
	}

	sort.Strings(exact)
	sortVariants(subsets)
	sortVariants(supersets)
	sortVariants(cousins)

	matches := append([]string(nil), spec.Matches...)
	for _, name := range exact {
		if !containsString(matches, name) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	spec.Matches = matches
	if spec.QualityName == "" && len(matches) > 0 {
		spec.QualityName = matches[0]
	}
	spec.Subsets = truncateVariants(subsets, limit)
	spec.Supersets = truncateVariants(supersets, limit)
	spec.Cousins = truncateVariants(cousins, limit)
}

func sortVariants(variants []QualityVariant) {
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Distance != variants[j].Distance {
			return variants[i].Distance < variants[j].Distance
		}
		return variants[i].Name < variants[j].Name
	})
}

func truncateVariants(variants []QualityVariant, limit int) []QualityVariant {
	if len(variants) > limit {
		return variants[:limit]
	}
	return variants
}

// classicalInterval converts a P/M/m/A/d interval label, compound numbers
// included, to a semitone offset.
func classicalInterval(token string) (int, error) {
	m := classicalIntervalRe.FindStringSubmatch(token)
	if m == nil {
		return 0, &InvalidChordSpecError{Input: token, Reason: "invalid interval token"}
	}
	quality := m[1]
	number, _ := strconv.Atoi(m[2])
	if number < 1 {
		return 0, &InvalidChordSpecError{Input: token, Reason: "interval number must be positive"}
	}
	step := (number-1)%7 + 1
	semitone := majorScaleSemitones[step] + 12*((number-1)/7)
	perfect := perfectIntervalNumbers[number]
	switch quality {
	case "P":
		if !perfect {
			return 0, &InvalidChordSpecError{Input: token, Reason: "quality P only applies to perfect intervals"}
		}
		return semitone, nil
	case "M":
		if perfect {
			return 0, &InvalidChordSpecError{Input: token, Reason: "quality M invalid for perfect interval numbers"}
		}
		return semitone, nil
	case "m":
		if perfect {
			return 0, &InvalidChordSpecError{Input: token, Reason: "quality m invalid for perfect interval numbers"}
		}
		return semitone - 1, nil
	case "A":
		return semitone + 1, nil
	case "d":
		if perfect {
			return semitone - 1, nil
		}
		return semitone - 2, nil
	}
	return 0, &InvalidChordSpecError{Input: token, Reason: "unsupported interval quality"}
}

// scaleDegreeSemitones converts a degree token ("1", "b3", "#11") to its
// semitone offset from the root, keeping compound degrees unfolded.
func scaleDegreeSemitones(token string) (int, error) {
	m := scaleDegreeRe.FindStringSubmatch(token)
	if m == nil {
		return 0, &InvalidChordSpecError{Input: token, Reason: "invalid scale-degree token"}
	}
	number, _ := strconv.Atoi(m[2])
	if number < 1 {
		return 0, &InvalidChordSpecError{Input: token, Reason: "degree number must be positive"}
	}
	step := (number-1)%7 + 1
	semitone := majorScaleSemitones[step] + 12*((number-1)/7)
	for _, r := range m[1] {
		switch r {
		case 'b':
			semitone--
		case '#':
			semitone++
		}
	}
	return semitone, nil
}

var majorScaleSemitones = map[int]int{1: 0, 2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 7: 11}

var perfectIntervalNumbers = map[int]bool{1: true, 4: true, 5: true, 8: true, 11: true, 12: true}

func splitList(payload string) []string {
	var parts []string
	for _, item := range strings.Split(payload, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			parts = append(parts, item)
		}
	}
	return parts
}

func allIntegers(parts []string) bool {
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return false
		}
	}
	return true
}

func allMatch(parts []string, re *regexp.Regexp) bool {
	for _, part := range parts {
		if !re.MatchString(part) {
			return false
		}
	}
	return true
}

// foldedIntervals normalizes offsets (or pitch classes) mod 12, deduped
// and sorted. Exactly one of the two argument slices is consulted.
func foldedIntervals(offsets []int, pcs []theory.PitchClass) []theory.PitchClass {
	seen := make(map[theory.PitchClass]struct{})
	var out []theory.PitchClass
	add := func(pc theory.PitchClass) {
		if _, ok := seen[pc]; ok {
			return
		}
		seen[pc] = struct{}{}
		out = append(out, pc)
	}
	for _, offset := range offsets {
		add(theory.NormalizePC(offset))
	}
	for _, pc := range pcs {
		add(theory.NormalizePC(int(pc)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func intervalOffsets(intervals []theory.PitchClass) []int {
	out := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, int(iv))
	}
	return out
}

func setDifference(a, b map[theory.PitchClass]struct{}) []theory.PitchClass {
	var out []theory.PitchClass
	for pc := range a {
		if _, ok := b[pc]; !ok {
			out = append(out, pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
