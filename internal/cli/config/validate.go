package config

import (
	"fmt"

	"github.com/tonality-labs/tonality/pkg/theory"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if _, err := theory.ParseSpellingMode(c.Spelling); err != nil {
		return err
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want auto, text, markdown, or json)", c.OutputFormat)
}
