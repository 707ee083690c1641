package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewSpellCommand creates the spell command.
func NewSpellCommand() *cobra.Command {
	var (
		tonicFlag string
		keySig    int
	)

	cmd := &cobra.Command{
		Use:   "spell <pitch>...",
		Short: "Spell pitch classes as note names",
		Long: `Spell pitch classes enharmonically. With --tonic the key signature
drives sharp/flat choice; --spelling forces one direction.`,
		Example: `  # Default sharp-biased spelling
  tonality spell 0 3 7

  # Flat keys spell flat
  tonality spell 10 2 5 --tonic Bb

  # Force flats regardless of key
  tonality spell 1 6 --spelling flats`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContextWithoutState(cmd)
			if err != nil {
				return err
			}

			pcs, err := cmdCtx.Engine.ParsePitchClasses(args)
			if err != nil {
				return err
			}
			tonic, err := parseTonic(tonicFlag)
			if err != nil {
				return err
			}

			var bias *int
			if cmd.Flags().Changed("key-sig") {
				bias = &keySig
			}

			names := cmdCtx.Engine.Spell(pcs, tonic, spellingFromConfig(cmdCtx.Cfg), bias)

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(names)
			}
			r.Println(strings.Join(names, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&tonicFlag, "tonic", "", "Tonic note whose key signature biases spelling")
	cmd.Flags().IntVar(&keySig, "key-sig", 0, "Key signature bias: sharps positive, flats negative")

	return cmd
}
