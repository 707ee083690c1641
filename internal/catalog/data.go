package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tonality-labs/tonality/pkg/theory"
)

//go:embed data/scales.yaml
var scalesYAML []byte

//go:embed data/chord_qualities.yaml
var chordQualitiesYAML []byte

type scaleDoc struct {
	Scales []struct {
		Name    string   `yaml:"name"`
		Aliases []string `yaml:"aliases"`
		Degrees []int    `yaml:"degrees"`
	} `yaml:"scales"`
}

type qualityDoc struct {
	Qualities []struct {
		Name      string   `yaml:"name"`
		Aliases   []string `yaml:"aliases"`
		Intervals []int    `yaml:"intervals"`
		Tensions  []int    `yaml:"tensions"`
	} `yaml:"qualities"`
}

func toPCs(values []int) []theory.PitchClass {
	pcs := make([]theory.PitchClass, len(values))
	for i, v := range values {
		pcs[i] = theory.PitchClass(v)
	}
	return pcs
}

// LoadScales builds the reference scale catalog from the embedded data.
func LoadScales() (*Catalog, error) {
	var doc scaleDoc
	if err := yaml.Unmarshal(scalesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse scale catalog: %w", err)
	}

	c := New(KindScale)
	for _, raw := range doc.Scales {
		entry, err := NewEntry(raw.Name, toPCs(raw.Degrees), raw.Aliases, nil)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", raw.Name, err)
		}
		if err := c.Add(entry); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadChordQualities builds the reference chord-quality catalog from the
// embedded data.
func LoadChordQualities() (*Catalog, error) {
	var doc qualityDoc
	if err := yaml.Unmarshal(chordQualitiesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse chord-quality catalog: %w", err)
	}

	c := New(KindChordQuality)
	for _, raw := range doc.Qualities {
		entry, err := NewEntry(raw.Name, toPCs(raw.Intervals), raw.Aliases, toPCs(raw.Tensions))
		if err != nil {
			return nil, fmt.Errorf("chord quality %q: %w", raw.Name, err)
		}
		if err := c.Add(entry); err != nil {
			return nil, err
		}
	}
	return c, nil
}
