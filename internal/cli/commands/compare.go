package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	var placements bool

	cmd := &cobra.Command{
		Use:   "compare <quality-a> <quality-b>",
		Short: "Compare two chord qualities across the scale catalog",
		Long: `Compare two chord qualities: interval fingerprints, tones exclusive
to each, the scales where both fit, and the scales only one fits. The
chromatic scale is skipped since it admits everything.`,
		Example: `  # Where do maj7 and 7 diverge?
  tonality compare maj7 7

  # Full per-scale root placements
  tonality compare maj min --placements`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmp, err := cmdCtx.Engine.CompareChordQualities(args[0], args[1])
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(cmp)
			}

			r.Header(1, cmp.QualityA+" vs "+cmp.QualityB)
			r.Printf("%-14s %s\n", cmp.QualityA+":", cmp.FingerprintA)
			r.Printf("%-14s %s\n", cmp.QualityB+":", cmp.FingerprintB)
			r.Printf("Only in %s: %s\n", cmp.QualityA, joinPCs(cmp.OnlyA))
			r.Printf("Only in %s: %s\n", cmp.QualityB, joinPCs(cmp.OnlyB))

			if len(cmp.Shared) > 0 {
				r.Println()
				r.Header(2, "Shared scales")
				rows := make([]table.Row, 0, len(cmp.Shared))
				for _, p := range cmp.Shared {
					rows = append(rows, table.Row{
						p.Scale.Name,
						joinPCs(p.RootsA),
						joinPCs(p.RootsB),
						joinPCs(p.SharedRoots),
					})
				}
				r.Table(table.Row{"Scale", cmp.QualityA + " roots", cmp.QualityB + " roots", "Shared roots"}, rows)

				if placements {
					for _, p := range cmp.Shared {
						r.Println()
						r.Header(3, p.Scale.Name)
						for _, root := range p.RootsA {
							r.Printf("%s @ %d: %s\n", cmp.QualityA, int(root), strings.Join(p.DegreesA[root], " "))
						}
						for _, root := range p.RootsB {
							r.Printf("%s @ %d: %s\n", cmp.QualityB, int(root), strings.Join(p.DegreesB[root], " "))
						}
					}
				}
			}

			if len(cmp.UniqueToA) > 0 {
				r.Printf("\nOnly %s fits: %s\n", cmp.QualityA, strings.Join(cmp.UniqueToA, ", "))
			}
			if len(cmp.UniqueToB) > 0 {
				r.Printf("Only %s fits: %s\n", cmp.QualityB, strings.Join(cmp.UniqueToB, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&placements, "placements", false, "Show degree labels at every usable root")

	return cmd
}
