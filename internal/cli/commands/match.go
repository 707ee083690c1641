package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/catalog"
	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewMatchCommand creates the match command.
func NewMatchCommand() *cobra.Command {
	var (
		matchChords bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "match <pitch>...",
		Short: "Match a pitch-class set against the catalog",
		Long: `Rank catalog entries against a pitch-class set. Every entry is tried
at all twelve transpositions; a score of 1.0 is an exact match.

Pitches may be note names (C, Eb, F#) or numbers; numbers outside 0-11
wrap modulo 12.`,
		Example: `  # What scale is this?
  tonality match C D E F G A B

  # Match chord qualities instead
  tonality match 0 3 7 10 --chords

  # Only the top three candidates
  tonality match 0 2 4 6 8 10 --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			pcs, err := cmdCtx.Engine.ParsePitchClasses(args)
			if err != nil {
				return err
			}

			var matches []catalog.Match
			if matchChords {
				matches = cmdCtx.Engine.MatchChordQualities(pcs)
			} else {
				matches = cmdCtx.Engine.MatchScales(pcs)
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(matches)
			}

			if len(matches) == 0 {
				r.Println("No matches.")
				return nil
			}
			rows := make([]table.Row, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, table.Row{
					m.Entry.Name,
					m.Transposition,
					fmt.Sprintf("%.3f", m.Score),
					joinPCs(m.Entry.PitchClasses),
				})
			}
			r.Table(table.Row{"Name", "Transposition", "Score", "Intervals"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&matchChords, "chords", false, "Match chord qualities instead of scales")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of matches to show (0 = all)")

	return cmd
}
