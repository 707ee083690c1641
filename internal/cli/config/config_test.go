package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("state", "", "")
	fs.String("spelling", "", "")
	fs.Bool("verbose", false, "")
	fs.String("output", "", "")
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultSpelling, cfg.Spelling)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	content := "state_path: custom/session.db\nspelling: flats\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tonality.yaml"), []byte(content), 0644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "custom/session.db", cfg.StatePath)
	assert.Equal(t, "flats", cfg.Spelling)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "tonality.yaml", GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	content := "spelling: flats\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tonality.yaml"), []byte(content), 0644))
	t.Setenv("TONALITY_SPELLING", "sharps")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sharps", cfg.Spelling)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("TONALITY_OUTPUT", "markdown")

	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--output", "json", "--state", "flagged.db"}))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	// Explicit --state resolves relative to the working directory.
	assert.True(t, filepath.IsAbs(cfg.StatePath))
	assert.Equal(t, "flagged.db", filepath.Base(cfg.StatePath))
}

func TestLoadConfigExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "elsewhere.yml")
	require.NoError(t, os.WriteFile(path, []byte("output: text\n"), 0644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad spelling", map[string]string{"TONALITY_SPELLING": "solfege"}},
		{"bad output", map[string]string{"TONALITY_OUTPUT": "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			t.Chdir(t.TempDir())
			for key, val := range tt.env {
				t.Setenv(key, val)
			}

			_, err := LoadConfig("", nil)
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{StatePath: "x.db", Spelling: "auto", OutputFormat: "auto"}
	assert.NoError(t, valid.Validate())

	missing := Config{Spelling: "auto", OutputFormat: "auto"}
	assert.Error(t, missing.Validate())
}
