package commands

import (
	"strconv"
	"strings"

	"github.com/tonality-labs/tonality/internal/cli/config"
	"github.com/tonality-labs/tonality/pkg/theory"
)

// spellingFromConfig resolves the configured spelling mode. Config
// validation already rejected unknown values.
func spellingFromConfig(cfg *config.Config) theory.SpellingMode {
	mode, err := theory.ParseSpellingMode(cfg.Spelling)
	if err != nil {
		return theory.SpellingAuto
	}
	return mode
}

// parseTonic parses an optional tonic flag value. Empty means no tonic.
func parseTonic(value string) (*theory.PitchClass, error) {
	if value == "" {
		return nil, nil
	}
	pc, err := theory.ParsePitchClass(value)
	if err != nil {
		return nil, err
	}
	return &pc, nil
}

// joinPCs renders pitch classes as a space-free comma list, e.g. "0,4,7".
func joinPCs(pcs []theory.PitchClass) string {
	parts := make([]string, len(pcs))
	for i, pc := range pcs {
		parts[i] = strconv.Itoa(int(pc))
	}
	return strings.Join(parts, ",")
}

// spellAll spells each pitch class and joins the names with spaces.
func spellAll(pcs []theory.PitchClass, tonic *theory.PitchClass, mode theory.SpellingMode, bias *int) string {
	names := make([]string, len(pcs))
	for i, pc := range pcs {
		names[i] = theory.Spell(pc, tonic, mode, bias).String()
	}
	return strings.Join(names, " ")
}
