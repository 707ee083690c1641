package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/cli/output"
	"github.com/tonality-labs/tonality/internal/harmony"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var (
		modeFlag  string
		reference string
		borrowed  bool
	)

	cmd := &cobra.Command{
		Use:   "validate <scale>",
		Short: "Check a functional mapping against a reference scale",
		Long: `Generate a scale's functional mapping and report every role whose
pitch classes leave the reference scale. The check is advisory: borrowed
chords are expected to flag, and a flagged mapping is not an error.

The reference defaults to Ionian for major mode and Aeolian for minor.`,
		Example: `  # Diatonic major functions validate cleanly
  tonality validate ionian

  # Borrowed minor dominants flag against Aeolian
  tonality validate aeolian --mode minor --borrowed

  # Validate against an explicit reference
  tonality validate dorian --reference ionian`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			mode, err := parseHarmonyMode(modeFlag)
			if err != nil {
				return err
			}
			ref := reference
			if ref == "" {
				ref = "ionian"
				if mode == harmony.ModeMinor {
					ref = "aeolian"
				}
			}

			report, err := cmdCtx.Engine.ValidateMapping(args[0], ref, mode, harmony.Options{IncludeBorrowed: borrowed})
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(report)
			}

			r.Header(1, report.Mapping)
			r.Printf("Reference: %s\n", report.Reference.Name)
			if report.Clean() {
				r.Println("Mapping is fully contained in the reference scale.")
				return nil
			}

			r.Println()
			rows := make([]table.Row, 0, len(report.Issues))
			for _, issue := range report.Issues {
				rows = append(rows, table.Row{
					int(issue.Degree),
					issue.ModalLabel,
					issue.Quality,
					joinPCs(issue.Missing),
				})
			}
			r.Table(table.Row{"Degree", "Label", "Quality", "Missing"}, rows)
			r.Printf("\n%d role(s) leave the reference scale.\n", len(report.Issues))
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "major", "Key mode (major|minor)")
	cmd.Flags().StringVar(&reference, "reference", "", "Reference scale (default: ionian or aeolian by mode)")
	cmd.Flags().BoolVar(&borrowed, "borrowed", false, "Include borrowed roles in the mapping")

	return cmd
}
