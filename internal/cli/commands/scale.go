package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tonality-labs/tonality/internal/analysis"
	"github.com/tonality-labs/tonality/internal/cli/output"
)

// NewScaleCommand creates the scale analysis command.
func NewScaleCommand() *cobra.Command {
	var (
		tonicFlag   string
		keySig      int
		skipModes   bool
		skipSym     bool
		skipSummary bool
	)

	cmd := &cobra.Command{
		Use:   "scale <name>",
		Short: "Analyze a scale's structure",
		Long: `Analyze a scale: step pattern, interval vector, modal rotations,
rotational and reflective symmetry, and an interval summary.

With --tonic, degrees are also spelled as note names.`,
		Example: `  # Analyze the Ionian scale
  tonality scale ionian

  # Spell degrees from a Bb tonic
  tonality scale ionian --tonic Bb

  # Structural sections only
  tonality scale "whole tone" --no-modes --no-summary

  # Machine-readable report
  tonality scale dorian --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tonic, err := parseTonic(tonicFlag)
			if err != nil {
				return err
			}

			opts := analysis.ScaleOptions{
				Tonic:        tonic,
				Spelling:     spellingFromConfig(cmdCtx.Cfg),
				SkipModes:    skipModes,
				SkipSymmetry: skipSym,
				SkipSummary:  skipSummary,
			}
			if cmd.Flags().Changed("key-sig") {
				opts.KeySignature = &keySig
			}

			report, err := cmdCtx.Engine.AnalyzeScale(strings.Join(args, " "), opts)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(report)
			}
			renderScaleReport(r, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&tonicFlag, "tonic", "", "Tonic note for spelling degrees (e.g. C, Bb, F#)")
	cmd.Flags().IntVar(&keySig, "key-sig", 0, "Key signature bias: sharps positive, flats negative")
	cmd.Flags().BoolVar(&skipModes, "no-modes", false, "Skip modal rotations")
	cmd.Flags().BoolVar(&skipSym, "no-symmetry", false, "Skip symmetry analysis")
	cmd.Flags().BoolVar(&skipSummary, "no-summary", false, "Skip the interval summary")

	return cmd
}

func renderScaleReport(r *output.Renderer, report analysis.ScaleReport) {
	r.Header(1, report.Name)
	r.Printf("Degrees:         %s\n", joinPCs(report.Degrees))
	if len(report.NoteNames) > 0 {
		r.Printf("Notes:           %s\n", strings.Join(report.NoteNames, " "))
	}
	r.Printf("Cardinality:     %d\n", report.Cardinality)
	r.Printf("Mask:            %s\n", report.Mask)
	r.Printf("Step pattern:    %s\n", joinInts(report.StepPattern))
	r.Printf("Interval vector: %s\n", joinInts(report.IntervalVector[:]))

	if len(report.Modes) > 0 {
		r.Println()
		r.Header(2, "Modes")
		rows := make([]table.Row, 0, len(report.Modes))
		for _, m := range report.Modes {
			rows = append(rows, table.Row{m.Index + 1, int(m.Root), joinPCs(m.Degrees), joinInts(m.StepPattern)})
		}
		r.Table(table.Row{"Mode", "Root", "Degrees", "Steps"}, rows)
	}

	if report.Symmetry != nil {
		r.Println()
		r.Header(2, "Symmetry")
		r.Printf("Rotational order: %d\n", report.Symmetry.RotationalOrder)
		r.Printf("Rotation steps:   %s\n", joinInts(report.Symmetry.RotationalSteps))
		r.Printf("Achiral:          %t\n", report.Symmetry.Achiral)
		if len(report.Symmetry.ReflectionAxes) > 0 {
			axes := make([]string, 0, len(report.Symmetry.ReflectionAxes))
			for _, axis := range report.Symmetry.ReflectionAxes {
				axes = append(axes, fmt.Sprintf("%s@%g", axis.Kind, axis.Center))
			}
			r.Printf("Reflection axes:  %s\n", strings.Join(axes, ", "))
		}
	}

	if report.Summary != nil {
		r.Println()
		r.Header(2, "Intervals")
		r.Table(
			table.Row{"Largest step", "Smallest step", "Semitones", "Tones", "Tritone pairs"},
			[]table.Row{{
				report.Summary.LargestStep,
				report.Summary.SmallestStep,
				report.Summary.SemitoneCount,
				report.Summary.ToneCount,
				report.Summary.TritonePairs,
			}},
		)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, "-")
}
