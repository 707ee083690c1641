// Package config loads CLI configuration from file, environment, and
// flags with koanf.
package config

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string `koanf:"state_path"`
	Spelling     string `koanf:"spelling"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultStateFile = ".tonality/session.db"
	DefaultSpelling  = "auto"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
