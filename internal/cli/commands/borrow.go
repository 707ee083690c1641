package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewBorrowCommand creates the borrow command.
func NewBorrowCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "borrow <pitch>...",
		Short: "Suggest scales that could host a chord",
		Long: `Rank catalog scales by how little they must change to contain a
chord's pitch classes. Scales that already contain the chord come first;
the rest follow by ascending distance, where distance is the number of
chord tones the scale is missing.`,
		Example: `  # Which scales host a dominant seventh on C?
  tonality borrow 0 4 7 10

  # Top five candidates for an altered chord
  tonality borrow 0 4 10 1 8 --limit 5`,
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

			suggestions := cmdCtx.Engine.BorrowSuggestions(pcs)
			if limit > 0 && len(suggestions) > limit {
				suggestions = suggestions[:limit]
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(suggestions)
			}

			rows := make([]table.Row, 0, len(suggestions))
			for _, s := range suggestions {
				rows = append(rows, table.Row{
					s.Entry.Name,
					s.Distance(),
					joinPCs(s.Missing),
					fmt.Sprintf("%.3f", s.Score),
				})
			}
			r.Table(table.Row{"Scale", "Distance", "Missing", "Score"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of suggestions to show (0 = all)")

	return cmd
}
