package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/analysis"
	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewCompatCommand creates the compat command.
func NewCompatCommand() *cobra.Command {
	var roots bool

	cmd := &cobra.Command{
		Use:   "compat [scale]",
		Short: "Show chord-scale compatibility",
		Long: `Report which chord qualities fit inside which scales. Without
arguments, every catalog scale is summarized. With a scale name, each
compatible quality is listed with the scale degrees it can be built on.`,
		Example: `  # Catalog-wide overview
  tonality compat

  # Qualities that fit the Ionian scale
  tonality compat ionian

  # Include the valid roots per quality
  tonality compat dorian --roots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			r := cmdCtx.Renderer

			if len(args) == 0 {
				overview := cmdCtx.Engine.CompatibilityOverview()
				if r.EffectiveMode() == output.ModeJSON {
					return r.JSON(overview)
				}
				rows := make([]table.Row, 0, len(overview))
				for _, entry := range overview {
					rows = append(rows, table.Row{
						entry.Scale.Name,
						strings.Join(placementNames(entry.Compatible), ", "),
						strings.Join(entry.Incompatible, ", "),
					})
				}
				r.Table(table.Row{"Scale", "Compatible", "Incompatible"}, rows)
				return nil
			}

			scaleName := strings.Join(args, " ")
			compat, err := cmdCtx.Engine.ScaleCompatibility(scaleName)
			if err != nil {
				return err
			}
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(compat)
			}

			r.Header(1, compat.Scale.Name)
			if !roots {
				r.Printf("Compatible:   %s\n", strings.Join(placementNames(compat.Compatible), ", "))
				r.Printf("Incompatible: %s\n", strings.Join(compat.Incompatible, ", "))
				return nil
			}

			rows := make([]table.Row, 0, len(compat.Compatible))
			for _, placement := range compat.Compatible {
				rows = append(rows, table.Row{placement.Quality.Name, joinPCs(placement.Roots)})
			}
			r.Table(table.Row{"Quality", "Roots"}, rows)
			if len(compat.Incompatible) > 0 {
				r.Printf("\nIncompatible: %s\n", strings.Join(compat.Incompatible, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&roots, "roots", false, "List the valid roots for each compatible quality")

	return cmd
}

func placementNames(placements []analysis.QualityPlacement) []string {
	names := make([]string, len(placements))
	for i, p := range placements {
		names[i] = p.Quality.Name
	}
	return names
}
