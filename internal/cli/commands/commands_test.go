// Package commands tests CLI command creation and end-to-end execution
// against a temporary session database.
package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSession points the environment-fallback config at a throwaway
// session database so commands can run without a loaded config file.
func setupSession(t *testing.T) {
	t.Helper()
	t.Setenv("TONALITY_STATE_PATH", filepath.Join(t.TempDir(), "session.db"))
	t.Setenv("TONALITY_OUTPUT", "markdown")
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestNewScaleCommand(t *testing.T) {
	cmd := NewScaleCommand()

	assert.Equal(t, "scale <name>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"tonic", "key-sig", "no-modes", "no-symmetry", "no-summary"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewFunctionsCommand(t *testing.T) {
	cmd := NewFunctionsCommand()

	assert.Equal(t, "functions <scale>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"mode", "degree", "borrowed", "feature", "no-defaults"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewMatchCommand(t *testing.T) {
	cmd := NewMatchCommand()

	assert.Equal(t, "match <pitch>...", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("chords"))
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
}

func TestScaleCommandAnalyzes(t *testing.T) {
	setupSession(t)

	out := execute(t, NewScaleCommand(), "ionian", "--tonic", "C")
	assert.Contains(t, out, "Ionian")
	assert.Contains(t, out, "2-2-1-2-2-2-1")
	assert.Contains(t, out, "C D E F G A B")
}

func TestScaleCommandJSON(t *testing.T) {
	setupSession(t)
	t.Setenv("TONALITY_OUTPUT", "json")

	out := execute(t, NewScaleCommand(), "dorian")

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Dorian", report["Name"])
	assert.EqualValues(t, 7, report["Cardinality"])
}

func TestScaleCommandUnknownScale(t *testing.T) {
	setupSession(t)

	cmd := NewScaleCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"definitely-not-a-scale"})
	assert.Error(t, cmd.Execute())
}

func TestChordCommandParsesTriad(t *testing.T) {
	setupSession(t)

	out := execute(t, NewChordCommand(), "[0,3,7]")
	assert.Contains(t, out, "min")
	assert.Contains(t, out, "0,3,7")
}

func TestMatchCommandFindsScale(t *testing.T) {
	setupSession(t)

	out := execute(t, NewMatchCommand(), "C", "D", "E", "F", "G", "A", "B")
	assert.Contains(t, out, "Ionian")
	assert.Contains(t, out, "1.000")
}

func TestMatchCommandChordQualities(t *testing.T) {
	setupSession(t)

	out := execute(t, NewMatchCommand(), "0", "4", "7", "--chords", "--limit", "3")
	assert.Contains(t, out, "maj")
}

func TestSpellCommandFlatKey(t *testing.T) {
	setupSession(t)

	out := execute(t, NewSpellCommand(), "10", "3", "--tonic", "Bb")
	assert.Contains(t, out, "Bb")
	assert.Contains(t, out, "Eb")
}

func TestFunctionsCommandDiatonic(t *testing.T) {
	setupSession(t)

	out := execute(t, NewFunctionsCommand(), "ionian")
	assert.Contains(t, out, "I")
	assert.Contains(t, out, "tonic")
	assert.Contains(t, out, "dominant")
}

func TestValidateCommandClean(t *testing.T) {
	setupSession(t)

	out := execute(t, NewValidateCommand(), "ionian")
	assert.Contains(t, out, "fully contained")
}

func TestValidateCommandFlagsBorrowed(t *testing.T) {
	setupSession(t)

	out := execute(t, NewValidateCommand(), "aeolian", "--mode", "minor", "--borrowed")
	assert.Contains(t, out, "leave the reference scale")
}

func TestCompatCommandScale(t *testing.T) {
	setupSession(t)

	out := execute(t, NewCompatCommand(), "ionian")
	assert.Contains(t, out, "Ionian")
	assert.Contains(t, out, "Compatible")
	assert.Contains(t, out, "maj7")
}

func TestCompatCommandOverview(t *testing.T) {
	setupSession(t)

	out := execute(t, NewCompatCommand())
	assert.Contains(t, out, "Ionian")
	assert.Contains(t, out, "Whole Tone")
	assert.Contains(t, out, "maj7")
}

func TestCompatCommandRoots(t *testing.T) {
	setupSession(t)

	out := execute(t, NewCompatCommand(), "ionian", "--roots")
	assert.Contains(t, out, "Roots")
	assert.Contains(t, out, "0,5,7")
}

func TestCompareCommand(t *testing.T) {
	setupSession(t)

	out := execute(t, NewCompareCommand(), "maj7", "7")
	assert.Contains(t, out, "maj7 vs 7")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "10")
}

func TestBorrowCommand(t *testing.T) {
	setupSession(t)

	out := execute(t, NewBorrowCommand(), "0", "4", "7", "10", "--limit", "4")
	assert.Contains(t, out, "Mixolydian")
}

func TestRegisterPersistsAcrossCommands(t *testing.T) {
	setupSession(t)

	out := execute(t, NewRegisterCommand(), "scale", "0", "1", "4", "6", "9", "--name", "spiky")
	assert.Contains(t, out, "Registered")
	assert.Contains(t, out, "spiky")

	// A fresh command context reloads the registration from the store.
	listed := execute(t, NewListCommand(), "session")
	assert.Contains(t, listed, "spiky")
	assert.Contains(t, listed, "0,1,4,6,9")
}

func TestRegisterKnownSetResolvesToCatalog(t *testing.T) {
	setupSession(t)

	out := execute(t, NewRegisterCommand(), "scale", "C", "D", "E", "F", "G", "A", "B")
	assert.Contains(t, out, "Ionian")
	assert.Contains(t, out, "nothing to register")
}

func TestRegisterChordVisibleToChordCommand(t *testing.T) {
	setupSession(t)

	execute(t, NewRegisterCommand(), "chord", "0", "5", "10", "--name", "quartal")

	out := execute(t, NewChordCommand(), "quartal")
	assert.Contains(t, out, "0,5,10")
}
