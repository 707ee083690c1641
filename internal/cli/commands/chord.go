package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/analysis"
	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewChordCommand creates the chord analysis command.
func NewChordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chord <expression>",
		Short: "Parse and analyze a chord expression",
		Long: `Parse a chord expression and relate it to the quality catalog.

Expressions may be interval lists, classical interval names, scale degrees,
note names, MIDI pitch sets, or catalog qualities with an optional root:

  [0,3,7]     [P1,m3,P5]   (1,b3,5)
  [C,E,G]     [C3,E3,G3]   {60,63,67}
  min         C:min        C3[0,3,7]

Append =label to alias the expression for the report.`,
		Example: `  # A minor triad by intervals
  tonality chord "[0,3,7]"

  # Rooted quality with spelled tokens
  tonality chord C:min

  # Spread voicing from MIDI pitches
  tonality chord "{48,55,64}"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := cmdCtx.Engine.ParseChordSpec(strings.Join(args, " "))
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(result)
			}
			renderChordSpec(r, result)
			return nil
		},
	}
	return cmd
}

func renderChordSpec(r *output.Renderer, result analysis.ParseResult) {
	spec := result.Spec

	title := spec.Label
	if title == "" {
		title = spec.QualityName
	}
	if title == "" {
		title = "[" + joinPCs(spec.Intervals) + "]"
	}
	r.Header(1, title)

	r.Printf("Scope:     %s\n", spec.Scope)
	r.Printf("Intervals: %s\n", joinPCs(spec.Intervals))
	if len(spec.Tokens) > 0 {
		r.Printf("Notes:     %s\n", strings.Join(spec.Tokens, " "))
	}
	if len(spec.Voicing) > len(spec.Intervals) || spread(spec.Voicing) {
		r.Printf("Voicing:   %s\n", joinInts(spec.Voicing))
	}
	if len(spec.Tensions) > 0 {
		r.Printf("Tensions:  %s\n", joinPCs(spec.Tensions))
	}
	if spec.QualityName != "" {
		r.Printf("Quality:   %s\n", spec.QualityName)
	}
	if len(spec.Matches) > 0 {
		r.Printf("Matches:   %s\n", strings.Join(spec.Matches, ", "))
	}

	renderVariants(r, "Subsets", spec.Subsets)
	renderVariants(r, "Supersets", spec.Supersets)
	renderVariants(r, "Cousins", spec.Cousins)
}

func renderVariants(r *output.Renderer, title string, variants []analysis.QualityVariant) {
	if len(variants) == 0 {
		return
	}
	r.Println()
	r.Header(2, title)
	rows := make([]table.Row, 0, len(variants))
	for _, v := range variants {
		rows = append(rows, table.Row{v.Name, joinPCs(v.Missing), joinPCs(v.Extra), v.Distance})
	}
	r.Table(table.Row{"Quality", "Missing", "Extra", "Distance"}, rows)
}

// spread reports whether any voicing offset leaves the first octave.
func spread(voicing []int) bool {
	for _, v := range voicing {
		if v > 11 {
			return true
		}
	}
	return false
}
